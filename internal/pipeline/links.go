package pipeline

import (
	"strings"

	"github.com/yuin/goldmark/util"
)

// DefaultLinkHost is the site that hashtag, mention and status links point to.
const DefaultLinkHost = "https://twitter.com"

// Links builds the site URLs that entities link to.
type Links struct {
	Host string // scheme and host without trailing slash; empty = DefaultLinkHost
}

func (l Links) host() string {
	if l.Host == "" {
		return DefaultLinkHost
	}
	return strings.TrimRight(l.Host, "/")
}

// Hashtag returns the search URL for a hashtag (without the leading #).
func (l Links) Hashtag(tag string) string {
	return l.host() + "/search/%23" + escapeSegment(tag)
}

// Profile returns the profile URL for a screen name.
func (l Links) Profile(handle string) string {
	return l.host() + "/" + escapeSegment(handle)
}

// User returns the profile URL for a numeric user id.
func (l Links) User(id string) string {
	return l.host() + "/intent/user?user_id=" + escapeSegment(id)
}

// Status returns the permalink of a post. Returns "" if handle or id is empty.
func (l Links) Status(handle, id string) string {
	if handle == "" || id == "" {
		return ""
	}
	return l.Profile(handle) + "/status/" + escapeSegment(id)
}

// reservedEscaper encodes the delimiters util.URLEscape leaves alone.
var reservedEscaper = strings.NewReplacer(
	"/", "%2F",
	"?", "%3F",
	"#", "%23",
	"&", "%26",
	"=", "%3D",
)

// escapeSegment percent-encodes s for use as a single path segment or
// query value. Path and query delimiters are encoded too.
func escapeSegment(s string) string {
	return reservedEscaper.Replace(string(util.URLEscape([]byte(s), false)))
}
