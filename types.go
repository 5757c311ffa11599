package tweet2html

// Post is a status update as delivered by the platform API.
// Field names follow the API so that raw JSON or YAML exports decode as is.
type Post struct {
	ID               string    `json:"id_str" yaml:"id_str"`
	CreatedAt        string    `json:"created_at" yaml:"created_at"`
	Text             string    `json:"text" yaml:"text"`
	FullText         string    `json:"full_text" yaml:"full_text"`
	User             *User     `json:"user,omitempty" yaml:"user,omitempty"`
	Entities         Entities  `json:"entities" yaml:"entities"`
	ExtendedEntities *Entities `json:"extended_entities,omitempty" yaml:"extended_entities,omitempty"`
}

// RawText returns the text entity indices refer to: FullText when set,
// Text otherwise.
func (p *Post) RawText() string {
	if p.FullText != "" {
		return p.FullText
	}
	return p.Text
}

// User is the author of a post.
type User struct {
	ScreenName string `json:"screen_name" yaml:"screen_name"`
	Name       string `json:"name" yaml:"name"`
}

// Entities groups the annotations of a post by kind.
type Entities struct {
	Hashtags     []Hashtag `json:"hashtags" yaml:"hashtags"`
	UserMentions []Mention `json:"user_mentions" yaml:"user_mentions"`
	URLs         []URL     `json:"urls" yaml:"urls"`
	Media        []Media   `json:"media" yaml:"media"`
}

// Hashtag annotates a #tag. Indices cover the tag including the '#'.
type Hashtag struct {
	Indices []int  `json:"indices" yaml:"indices"`
	Text    string `json:"text" yaml:"text"`
}

// Mention annotates an @handle.
type Mention struct {
	Indices    []int  `json:"indices" yaml:"indices"`
	ScreenName string `json:"screen_name" yaml:"screen_name"`
	IDStr      string `json:"id_str" yaml:"id_str"`
}

// URL annotates a shortened link.
type URL struct {
	Indices     []int  `json:"indices" yaml:"indices"`
	URL         string `json:"url" yaml:"url"`
	DisplayURL  string `json:"display_url" yaml:"display_url"`
	ExpandedURL string `json:"expanded_url" yaml:"expanded_url"`
}

// Media annotates an attached photo or video.
type Media struct {
	Indices       []int  `json:"indices" yaml:"indices"`
	Type          string `json:"type" yaml:"type"`
	ExpandedURL   string `json:"expanded_url" yaml:"expanded_url"`
	MediaURLHTTPS string `json:"media_url_https" yaml:"media_url_https"`
}

// Input contains conversion parameters.
type Input struct {
	Post       *Post  // required
	Handle     string // author screen name; empty = Post.User.ScreenName
	Title      string // page title; empty = derived from the handle
	Standalone bool   // also render a complete HTML page
	PDF        bool   // also render a PDF snapshot of the page; implies Standalone
}

// Photo is the photo attached to a post. It is returned apart from the
// markup so that callers choose where to lay it out.
type Photo struct {
	URL string // page the photo links to
	Src string // image source
}

// Adjustment is a text replacement that was not applied because its span
// overlapped another one or fell outside the text.
type Adjustment struct {
	Start       int
	End         int
	Replacement string
}

// Result contains the output of a conversion.
type Result struct {
	Markup  string       // post text block, followed by the embed frame if any
	Photo   *Photo       // nil when the post has no photo
	Href    string       // status permalink; empty without handle or id
	Date    string       // formatted creation date; empty when unknown
	HTML    []byte       // standalone page; nil unless requested
	PDF     []byte       // page snapshot; nil unless requested
	Dropped []Adjustment // replacements skipped because of overlapping spans
	Skipped int          // malformed entities ignored
}
