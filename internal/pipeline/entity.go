package pipeline

import (
	"errors"
	"fmt"
)

// ErrMalformedEntity indicates an entity record whose indices cannot be
// used as a span of the post text.
var ErrMalformedEntity = errors.New("malformed entity")

// Category identifies an entity category.
type Category int

// Recognized entity categories.
const (
	CategoryMedia Category = iota
	CategoryHashtags
	CategoryMentions
	CategoryURLs
)

var categoryNames = [...]string{
	CategoryMedia:    "media",
	CategoryHashtags: "hashtags",
	CategoryMentions: "mentions",
	CategoryURLs:     "urls",
}

// String returns the category name.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Priority is the order in which categories are extracted.
var Priority = []Category{CategoryMedia, CategoryHashtags, CategoryMentions, CategoryURLs}

// MediaType is the kind of a media entity.
type MediaType string

// Recognized media types.
const (
	MediaPhoto   MediaType = "photo"
	MediaYouTube MediaType = "youtube"
	MediaVimeo   MediaType = "vimeo"
	MediaVine    MediaType = "vine"
)

// IsVideo reports whether t is one of the embeddable video providers.
func (t MediaType) IsVideo() bool {
	switch t {
	case MediaYouTube, MediaVimeo, MediaVine:
		return true
	}
	return false
}

// Span is a half-open [Start, End) range of code point offsets.
type Span struct {
	Start int
	End   int
}

// Len returns the number of code points covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Overlaps reports whether s and o share at least one offset.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Entity is a category-agnostic entity record. Fields that do not apply
// to the entity's category are left empty.
type Entity struct {
	Indices     []int
	Text        string // hashtag text or mention screen name
	UserID      string // mention user id
	DisplayURL  string
	ExpandedURL string
	MediaURL    string
	MediaType   MediaType
}

// Span validates the entity indices against a text of textLen code points.
// Returns ErrMalformedEntity when indices are missing, not a pair,
// negative, empty, reversed, or past the end of the text.
func (e Entity) Span(textLen int) (Span, error) {
	if len(e.Indices) != 2 {
		return Span{}, fmt.Errorf("%w: want 2 indices, got %d", ErrMalformedEntity, len(e.Indices))
	}
	s := Span{Start: e.Indices[0], End: e.Indices[1]}
	if s.Start < 0 || s.Start >= s.End {
		return Span{}, fmt.Errorf("%w: invalid span [%d,%d)", ErrMalformedEntity, s.Start, s.End)
	}
	if s.End > textLen {
		return Span{}, fmt.Errorf("%w: span [%d,%d) exceeds text length %d", ErrMalformedEntity, s.Start, s.End, textLen)
	}
	return s, nil
}

// EntityBag maps categories to their ordered entity records.
type EntityBag map[Category][]Entity

// Clone returns a copy of b whose slices can be modified without affecting b.
// Index slices are shared; entities never modify them.
func (b EntityBag) Clone() EntityBag {
	out := make(EntityBag, len(b))
	for c, list := range b {
		out[c] = append([]Entity(nil), list...)
	}
	return out
}

// Len returns the total number of entities across all categories.
func (b EntityBag) Len() int {
	n := 0
	for _, list := range b {
		n += len(list)
	}
	return n
}

// WithMedia returns a copy of b whose media category is replaced by media.
// Used to read media from the extended entity set when the post has one.
func (b EntityBag) WithMedia(media []Entity) EntityBag {
	out := b.Clone()
	out[CategoryMedia] = append([]Entity(nil), media...)
	return out
}
