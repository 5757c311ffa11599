package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ErrPageRender indicates the page template could not be executed.
var ErrPageRender = errors.New("page template rendering failed")

// PageData holds everything a standalone page shows around the post markup.
type PageData struct {
	Title  string
	Handle string
	Href   string // status permalink, may be empty
	Date   string // formatted creation date, may be empty
	Body   template.HTML
	Photo  template.HTML
}

// NewPageData wraps rendered post output for the page template.
// The markup is trusted: it was built from escaped text and attributes.
func NewPageData(r Rendered, title, handle, href, date string) *PageData {
	data := &PageData{Title: title, Handle: handle, Href: href, Date: date}
	// #nosec G203 -- markup is built by markup.Element from escaped values
	data.Body = template.HTML(r.Markup)
	// #nosec G203 -- same as Body
	data.Photo = template.HTML(PhotoMarkup(r.Photo))
	return data
}

// Page renders a post into a complete HTML5 document.
type Page struct {
	tmpl *template.Template
	css  CSSInjection
}

// NewPage creates a Page from template content.
// Returns error if the template cannot be parsed.
func NewPage(tmplContent string) (*Page, error) {
	tmpl, err := template.New("page").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &Page{tmpl: tmpl}, nil
}

// Render executes the page template and injects cssContent into the head.
// Returns error if data is nil or template execution fails.
func (p *Page) Render(ctx context.Context, data *PageData, cssContent string) (string, error) {
	if data == nil {
		return "", fmt.Errorf("%w: no page data", ErrPageRender)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return p.css.InjectCSS(ctx, buf.String(), cssContent), nil
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}
	if ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		closeIdx := strings.Index(htmlContent[idx:], ">")
		if closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	return styleBlock + htmlContent
}

// sanitizeCSS escapes "</" so the stylesheet cannot close its <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
