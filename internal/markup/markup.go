// Package markup builds single HTML elements as strings.
//
// Elements are assembled as golang.org/x/net/html nodes and serialized with
// html.Render, so attribute values are always escaped. Element content is
// written verbatim: it is either text taken from the post (which the
// platform already delivers entity-escaped) or markup produced by another
// Element call.
package markup

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attr is an element attribute. Attributes render in the order given.
type Attr struct {
	Key string
	Val string
}

// Element renders <tag attrs...>content</tag>.
// Content is ignored for void elements such as img.
func Element(tag, content string, attrs ...Attr) string {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, a := range attrs {
		n.Attr = append(n.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	if content != "" && !IsVoid(tag) {
		n.AppendChild(&html.Node{Type: html.RawNode, Data: content})
	}

	var b strings.Builder
	// strings.Builder never fails and void elements never get children,
	// so Render cannot return an error here.
	_ = html.Render(&b, n)
	return b.String()
}

// Link renders an anchor that opens in a new tab.
func Link(text, href string) string {
	return Element("a", text, Attr{"href", href}, Attr{"target", "_blank"})
}

// IsVoid reports whether tag is an HTML void element.
func IsVoid(tag string) bool {
	switch strings.ToLower(tag) {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"keygen", "link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}
