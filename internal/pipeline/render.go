package pipeline

import "github.com/alnah/go-tweet2html/internal/markup"

// Rendered is the renderer output. Photo is returned as data so the caller
// decides where to lay it out; embeds are part of Markup.
type Rendered struct {
	Markup string
	Photo  *Photo
}

// Render assembles the post markup from the spliced text and its media.
func Render(text string, media Media) Rendered {
	out := Rendered{
		Markup: markup.Element("div", text, markup.Attr{Key: "class", Val: "text"}),
		Photo:  media.Photo(),
	}
	if e := media.Embed(); e != nil {
		out.Markup += EmbedMarkup(e)
	}
	return out
}

// EmbedMarkup renders a borderless frame for an embed.
func EmbedMarkup(e *Embed) string {
	if e == nil {
		return ""
	}
	return markup.Element("iframe", "",
		markup.Attr{Key: "src", Val: e.Src},
		markup.Attr{Key: "class", Val: e.Service},
		markup.Attr{Key: "frameborder", Val: "0"},
		markup.Attr{Key: "allowfullscreen", Val: ""},
	)
}

// PhotoMarkup renders a photo as an image linking to its page, for callers
// that lay the photo out inline.
func PhotoMarkup(p *Photo) string {
	if p == nil {
		return ""
	}
	img := markup.Element("img", "",
		markup.Attr{Key: "class", Val: "photo__img"},
		markup.Attr{Key: "src", Val: p.Src},
	)
	return markup.Element("a", img,
		markup.Attr{Key: "class", Val: "photo"},
		markup.Attr{Key: "href", Val: p.URL},
		markup.Attr{Key: "target", Val: "_blank"},
	)
}
