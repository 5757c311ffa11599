package markup

import "testing"

func TestElement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		tag     string
		content string
		attrs   []Attr
		want    string
	}{
		{
			name:    "element with content and no attributes",
			tag:     "div",
			content: "hello",
			want:    "<div>hello</div>",
		},
		{
			name:    "attributes keep their order",
			tag:     "div",
			content: "x",
			attrs:   []Attr{{"class", "text"}, {"id", "t1"}},
			want:    `<div class="text" id="t1">x</div>`,
		},
		{
			name:    "content is written verbatim",
			tag:     "div",
			content: `see <a href="u">#foo</a> &amp; more`,
			want:    `<div>see <a href="u">#foo</a> &amp; more</div>`,
		},
		{
			name:  "attribute values are escaped",
			tag:   "iframe",
			attrs: []Attr{{"src", `//host/embed?a=1&b="2"`}},
			want:  `<iframe src="//host/embed?a=1&amp;b=&#34;2&#34;"></iframe>`,
		},
		{
			name:    "void element drops content",
			tag:     "img",
			content: "ignored",
			attrs:   []Attr{{"src", "pic.jpg"}},
			want:    `<img src="pic.jpg"/>`,
		},
		{
			name: "empty element",
			tag:  "span",
			want: "<span></span>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Element(tt.tag, tt.content, tt.attrs...)
			if got != tt.want {
				t.Errorf("Element() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLink(t *testing.T) {
	t.Parallel()

	got := Link("#foo", "https://twitter.com/search/%23foo")
	want := `<a href="https://twitter.com/search/%23foo" target="_blank">#foo</a>`
	if got != want {
		t.Errorf("Link() = %q, want %q", got, want)
	}
}

func TestIsVoid(t *testing.T) {
	t.Parallel()

	for _, tag := range []string{"img", "br", "IMG", "source"} {
		if !IsVoid(tag) {
			t.Errorf("IsVoid(%q) = false, want true", tag)
		}
	}
	for _, tag := range []string{"a", "div", "iframe", ""} {
		if IsVoid(tag) {
			t.Errorf("IsVoid(%q) = true, want false", tag)
		}
	}
}
