package tweet2html

import "github.com/alnah/go-tweet2html/internal/pipeline"

// toEntityBag converts the API entities of a post into the pipeline's
// category-agnostic form. Media come from the extended entities when the
// post carries any there. Index slices are copied so the pipeline never
// shares memory with the caller's post.
func toEntityBag(p *Post) pipeline.EntityBag {
	e := p.Entities
	bag := pipeline.EntityBag{
		pipeline.CategoryMedia:    toMediaEntities(e.Media),
		pipeline.CategoryHashtags: make([]pipeline.Entity, 0, len(e.Hashtags)),
		pipeline.CategoryMentions: make([]pipeline.Entity, 0, len(e.UserMentions)),
		pipeline.CategoryURLs:     make([]pipeline.Entity, 0, len(e.URLs)),
	}
	for _, h := range e.Hashtags {
		bag[pipeline.CategoryHashtags] = append(bag[pipeline.CategoryHashtags], pipeline.Entity{
			Indices: copyIndices(h.Indices),
			Text:    h.Text,
		})
	}
	for _, m := range e.UserMentions {
		bag[pipeline.CategoryMentions] = append(bag[pipeline.CategoryMentions], pipeline.Entity{
			Indices: copyIndices(m.Indices),
			Text:    m.ScreenName,
			UserID:  m.IDStr,
		})
	}
	for _, u := range e.URLs {
		bag[pipeline.CategoryURLs] = append(bag[pipeline.CategoryURLs], pipeline.Entity{
			Indices:     copyIndices(u.Indices),
			DisplayURL:  u.DisplayURL,
			ExpandedURL: u.ExpandedURL,
		})
	}

	if p.ExtendedEntities != nil && len(p.ExtendedEntities.Media) > 0 {
		return bag.WithMedia(toMediaEntities(p.ExtendedEntities.Media))
	}
	return bag
}

func toMediaEntities(media []Media) []pipeline.Entity {
	out := make([]pipeline.Entity, 0, len(media))
	for _, m := range media {
		out = append(out, pipeline.Entity{
			Indices:     copyIndices(m.Indices),
			ExpandedURL: m.ExpandedURL,
			MediaURL:    m.MediaURLHTTPS,
			MediaType:   pipeline.MediaType(m.Type),
		})
	}
	return out
}

func copyIndices(in []int) []int {
	if in == nil {
		return nil
	}
	return append([]int(nil), in...)
}

// toDropped converts adjustments refused by the splicer to the public type.
func toDropped(adjs []pipeline.Adjustment) []Adjustment {
	if len(adjs) == 0 {
		return nil
	}
	out := make([]Adjustment, len(adjs))
	for i, a := range adjs {
		out[i] = Adjustment{Start: a.Span.Start, End: a.Span.End, Replacement: a.Replacement}
	}
	return out
}

// toPhoto converts the pipeline photo to the public type.
func toPhoto(p *pipeline.Photo) *Photo {
	if p == nil {
		return nil
	}
	return &Photo{URL: p.URL, Src: p.Src}
}

// Fragment returns the post markup followed by its photo, ready to embed
// in a page that brings its own styles.
func (r *Result) Fragment() string {
	if r.Photo == nil {
		return r.Markup
	}
	return r.Markup + pipeline.PhotoMarkup(&pipeline.Photo{URL: r.Photo.URL, Src: r.Photo.Src})
}
