package pipeline

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-tweet2html/internal/markup"
)

// Photo is a post photo: the page it links to and the image source.
type Photo struct {
	URL string
	Src string
}

// Embed is an embeddable video frame.
type Embed struct {
	Src     string
	Service string // "video <provider>", used as the frame class
}

// Media holds the single media item of a post.
// The first Set call wins; later calls are ignored.
type Media struct {
	photo *Photo
	embed *Embed
}

// SetPhoto stores p unless a media item is already set.
// Reports whether p was stored.
func (m *Media) SetPhoto(p Photo) bool {
	if m.IsSet() {
		return false
	}
	m.photo = &p
	return true
}

// SetEmbed stores e unless a media item is already set.
// Reports whether e was stored.
func (m *Media) SetEmbed(e Embed) bool {
	if m.IsSet() {
		return false
	}
	m.embed = &e
	return true
}

// IsSet reports whether a media item has been stored.
func (m *Media) IsSet() bool {
	return m.photo != nil || m.embed != nil
}

// Photo returns a copy of the stored photo, or nil.
func (m *Media) Photo() *Photo {
	if m.photo == nil {
		return nil
	}
	p := *m.photo
	return &p
}

// Embed returns a copy of the stored embed, or nil.
func (m *Media) Embed() *Embed {
	if m.embed == nil {
		return nil
	}
	e := *m.embed
	return &e
}

// Adjustment replaces a span of the post text with markup.
// An empty Replacement removes the span.
type Adjustment struct {
	Span        Span
	Replacement string
}

// newAdjustment builds the adjustment for a converted entity.
// The replacement is a link only when both text and href are known.
func newAdjustment(span Span, text, href string) Adjustment {
	adj := Adjustment{Span: span}
	if text != "" && href != "" {
		adj.Replacement = markup.Link(text, href)
	}
	return adj
}

// Extraction is the result of Extract.
type Extraction struct {
	Adjustments []Adjustment // in category priority order
	Media       Media
	Skipped     int // malformed entities: bad indices or a missing required field
}

// conversion is the uniform output of a category converter.
type conversion struct {
	text  string
	href  string
	photo *Photo
	embed *Embed
}

// errUnsupported marks an entity that is well formed but has no rendering,
// such as an animated GIF. It is ignored without being counted.
var errUnsupported = errors.New("unsupported entity")

// converterFunc converts one entity. source is the text the entity covers.
// It returns an error wrapping ErrMalformedEntity when a required field is
// missing, or errUnsupported when the entity has no rendering.
type converterFunc func(x *Extractor, e Entity, source string) (conversion, error)

// converters dispatches on the entity category.
var converters = [...]converterFunc{
	CategoryMedia:    (*Extractor).convertMedia,
	CategoryHashtags: (*Extractor).convertHashtag,
	CategoryMentions: (*Extractor).convertMention,
	CategoryURLs:     (*Extractor).convertURL,
}

// Extractor converts entities into text adjustments and side-channel media.
type Extractor struct {
	links Links
	log   logrus.FieldLogger
}

// NewExtractor creates an Extractor. A nil logger discards output.
func NewExtractor(links Links, log logrus.FieldLogger) *Extractor {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Extractor{links: links, log: log}
}

// Extract walks every category in Priority order and converts its entities.
// Entities whose indices do not fit text, or that miss a required field, are
// skipped and counted. Only the first media item is kept. Media entities
// sharing a span, as the photos of one post do, yield a single adjustment.
func (x *Extractor) Extract(bag EntityBag, text []rune) *Extraction {
	ex := &Extraction{}
	textLen := len(text)
	mediaSpans := make(map[Span]struct{})
	for _, c := range Priority {
		convert := converters[c]
		for i, e := range bag[c] {
			fields := logrus.Fields{"category": c.String(), "index": i}

			span, err := e.Span(textLen)
			if err != nil {
				ex.Skipped++
				x.log.WithFields(fields).WithError(err).Debug("skipping entity")
				continue
			}

			conv, err := convert(x, e, string(text[span.Start:span.End]))
			if errors.Is(err, errUnsupported) {
				continue
			}
			if err != nil {
				ex.Skipped++
				x.log.WithFields(fields).WithError(err).Debug("skipping entity")
				continue
			}
			if conv.photo != nil && !ex.Media.SetPhoto(*conv.photo) {
				x.log.WithField("index", i).Debug("ignoring photo: post already has media")
			}
			if conv.embed != nil && !ex.Media.SetEmbed(*conv.embed) {
				x.log.WithField("index", i).Debug("ignoring embed: post already has media")
			}
			if c == CategoryMedia {
				if _, seen := mediaSpans[span]; seen {
					continue
				}
				mediaSpans[span] = struct{}{}
			}
			ex.Adjustments = append(ex.Adjustments, newAdjustment(span, conv.text, conv.href))
		}
	}
	return ex
}

// convertMedia renders media out of line: the span is removed from the text.
func (x *Extractor) convertMedia(e Entity, _ string) (conversion, error) {
	switch {
	case e.MediaType == MediaPhoto:
		return conversion{photo: &Photo{URL: e.ExpandedURL, Src: e.MediaURL}}, nil
	case e.MediaType.IsVideo():
		return conversion{embed: &Embed{Src: e.MediaURL, Service: "video " + string(e.MediaType)}}, nil
	default:
		return conversion{}, fmt.Errorf("%w: media type %q", errUnsupported, e.MediaType)
	}
}

func (x *Extractor) convertHashtag(e Entity, _ string) (conversion, error) {
	if e.Text == "" {
		return conversion{}, fmt.Errorf("%w: hashtag without text", ErrMalformedEntity)
	}
	return conversion{text: "#" + e.Text, href: x.links.Hashtag(e.Text)}, nil
}

// convertMention links the screen name. Without a screen name the covered
// text is linked to the user id instead.
func (x *Extractor) convertMention(e Entity, source string) (conversion, error) {
	switch {
	case e.Text != "":
		return conversion{text: "@" + e.Text, href: x.links.Profile(e.Text)}, nil
	case e.UserID != "":
		return conversion{text: source, href: x.links.User(e.UserID)}, nil
	default:
		return conversion{}, fmt.Errorf("%w: mention without screen name or user id", ErrMalformedEntity)
	}
}

// convertURL links the display form of a link, falling back to the covered
// text when the record has no display form.
func (x *Extractor) convertURL(e Entity, source string) (conversion, error) {
	if e.ExpandedURL == "" {
		return conversion{}, fmt.Errorf("%w: url without expanded url", ErrMalformedEntity)
	}
	text := e.DisplayURL
	if text == "" {
		text = source
	}
	return conversion{text: text, href: e.ExpandedURL}, nil
}
