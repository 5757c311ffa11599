package tweet2html

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-tweet2html/internal/assets"
	"github.com/alnah/go-tweet2html/internal/dateutil"
	"github.com/alnah/go-tweet2html/internal/fileutil"
	"github.com/alnah/go-tweet2html/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ assets.AssetLoader = (*assets.AssetResolver)(nil)
	_ pdfConverter       = (*rodConverter)(nil)
	_ pdfRenderer        = (*rodRenderer)(nil)
)

// Converter turns posts into markup, and optionally into a standalone page
// and a PDF snapshot of it.
// Create with NewConverter(), use Convert() for conversion, and Close() when done.
// Convert is safe for concurrent use.
type Converter struct {
	cfg          converterConfig
	log          logrus.FieldLogger
	links        pipeline.Links
	extractor    *pipeline.Extractor
	assetLoader  assets.AssetLoader
	page         *pipeline.Page
	pdfConverter pdfConverter
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithLinkHost, WithStyle, WithTimeout).
// Returns error if an option value is invalid or asset loading fails.
// No browser is started until a PDF is requested.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:    defaultTimeout,
			dateFormat: dateutil.Relative,
			now:        time.Now,
		},
		log: discardLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.linkHost != "" && !fileutil.IsURL(c.cfg.linkHost) {
		return nil, fmt.Errorf("%w: %q must start with http:// or https://", ErrInvalidLinkHost, c.cfg.linkHost)
	}
	if c.cfg.dateFormatter == nil {
		if err := dateutil.ValidateFormat(c.cfg.dateFormat); err != nil {
			return nil, err
		}
	}

	c.links = pipeline.Links{Host: c.cfg.linkHost}
	c.extractor = pipeline.NewExtractor(c.links, c.log)

	resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	c.assetLoader = resolver

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	tmpl, err := c.assetLoader.LoadTemplate(assets.PageTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading page template: %w", err)
	}
	c.page, err = pipeline.NewPage(tmpl)
	if err != nil {
		return nil, fmt.Errorf("initializing page: %w", err)
	}

	// Create PDF converter if not injected (e.g., by tests)
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// Convert runs the pipeline on input.Post and returns the rendered post.
// The post is never modified. The context is used for cancellation and
// bounds PDF rendering.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if input.Post == nil {
		return nil, ErrNilPost
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	post := input.Post
	text := []rune(post.RawText())
	bag := pipeline.Classify(toEntityBag(post))
	ex := c.extractor.Extract(bag, text)

	spliced, dropped := pipeline.Splice(string(text), ex.Adjustments)
	if len(dropped) > 0 {
		if c.cfg.strictSpans {
			return nil, fmt.Errorf("%w: post %q: %d replacement(s) not applied", ErrOverlappingSpans, post.ID, len(dropped))
		}
		for _, d := range dropped {
			c.log.WithFields(logrus.Fields{
				"post":  post.ID,
				"start": d.Span.Start,
				"end":   d.Span.End,
			}).Warn("dropping replacement: span overlaps another entity")
		}
	}

	rendered := pipeline.Render(spliced, ex.Media)
	handle := postHandle(input)
	res := &Result{
		Markup:  rendered.Markup,
		Photo:   toPhoto(rendered.Photo),
		Href:    c.links.Status(handle, post.ID),
		Date:    c.formatDate(post),
		Dropped: toDropped(dropped),
		Skipped: ex.Skipped,
	}

	if !input.Standalone && !input.PDF {
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := pipeline.NewPageData(rendered, pageTitle(input, handle), handle, res.Href, res.Date)
	htmlContent, err := c.page.Render(ctx, data, c.cfg.resolvedStyle)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	res.HTML = []byte(htmlContent)

	if !input.PDF {
		return res, nil
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, htmlContent)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdfBytes
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// resolveStyle resolves the style input (name or path) to CSS content.
// Called during NewConverter() after options are applied and the asset loader is configured.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		input = assets.DefaultStyleName
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) {
			return fmt.Errorf("%w: %q", ErrStyleNotFound, input)
		}
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	c.cfg.resolvedStyle = css
	return nil
}

// formatDate renders the post creation date, or "" when it is missing or
// cannot be parsed.
func (c *Converter) formatDate(post *Post) string {
	if post.CreatedAt == "" {
		return ""
	}
	t, err := dateutil.ParseCreatedAt(post.CreatedAt)
	if err != nil {
		c.log.WithField("post", post.ID).WithError(err).Debug("ignoring creation date")
		return ""
	}
	if c.cfg.dateFormatter != nil {
		return c.cfg.dateFormatter(t)
	}
	s, err := dateutil.Format(t, c.cfg.now(), c.cfg.dateFormat)
	if err != nil {
		c.log.WithError(err).Debug("formatting creation date")
		return ""
	}
	return s
}

// postHandle returns the author screen name from the input, falling back
// to the user embedded in the post.
func postHandle(input Input) string {
	if input.Handle != "" {
		return input.Handle
	}
	if input.Post.User != nil {
		return input.Post.User.ScreenName
	}
	return ""
}

func pageTitle(input Input, handle string) string {
	switch {
	case input.Title != "":
		return input.Title
	case handle != "":
		return "@" + handle
	case input.Post.ID != "":
		return "Post " + input.Post.ID
	default:
		return "Post"
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
