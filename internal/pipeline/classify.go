package pipeline

import "regexp"

// Provider recognizes links to a media host and rewrites them into an
// embeddable resource URL.
type Provider struct {
	Type     MediaType
	Pattern  *regexp.Regexp
	MediaURL func(match []string) string
}

// Providers is the ordered table used by Classify. The first provider whose
// pattern matches a link claims it.
var Providers = []Provider{
	{
		Type:    MediaPhoto,
		Pattern: regexp.MustCompile(`https?://(?:www\.)?instagram\.com/p/([^\s/]+)/?`),
		MediaURL: func(m []string) string {
			return "http://instagr.am/p/" + m[1] + "/media/?size=m"
		},
	},
	{
		Type:    MediaYouTube,
		Pattern: regexp.MustCompile(`https?://(?:youtu\.be/|(?:m|www)\.youtube\.com/watch\?v=)([^\s&]+)`),
		MediaURL: func(m []string) string {
			return "//www.youtube.com/embed/" + m[1] + "?autohide=1&modestbranding=1&rel=0&theme=light"
		},
	},
	{
		Type:    MediaVimeo,
		Pattern: regexp.MustCompile(`https?://vimeo\.com/(\S+)$`),
		MediaURL: func(m []string) string {
			return "//player.vimeo.com/video/" + m[1]
		},
	},
	{
		Type:    MediaVine,
		Pattern: regexp.MustCompile(`https?://vine\.co/v/(\S+)$`),
		MediaURL: func(m []string) string {
			return "//vine.co/v/" + m[1] + "/embed/simple"
		},
	},
}

// Classify promotes link entities that point at a known media provider
// into synthetic media entities, using the Providers table.
// The input bag is not modified.
func Classify(bag EntityBag) EntityBag {
	return ClassifyWith(bag, Providers)
}

// ClassifyWith is Classify with an explicit provider table.
//
// Providers are tried in order. A provider is skipped as soon as the bag
// holds any media entity, so a post never gains a synthetic media entity
// when it already carries one. Matching links are removed from the urls
// category and appended to media with their indices unchanged.
func ClassifyWith(bag EntityBag, providers []Provider) EntityBag {
	out := bag.Clone()
	for _, p := range providers {
		if len(out[CategoryMedia]) > 0 {
			break
		}
		urls := out[CategoryURLs]
		kept := make([]Entity, 0, len(urls))
		for _, u := range urls {
			m := p.Pattern.FindStringSubmatch(u.ExpandedURL)
			if m == nil {
				kept = append(kept, u)
				continue
			}
			out[CategoryMedia] = append(out[CategoryMedia], Entity{
				Indices:     u.Indices,
				ExpandedURL: u.ExpandedURL,
				MediaURL:    p.MediaURL(m),
				MediaType:   p.Type,
			})
		}
		out[CategoryURLs] = kept
	}
	return out
}
