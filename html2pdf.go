package tweet2html

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-tweet2html/internal/fileutil"
	"github.com/alnah/go-tweet2html/internal/hints"
	"github.com/alnah/go-tweet2html/internal/process"
)

// pdfConverter turns a standalone page into PDF bytes.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string) ([]byte, error)
	Close() error
}

// pdfRenderer prints a local HTML file. Tests replace it to run without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string) ([]byte, error)
	Close() error
}

// Snapshot page dimensions in inches. A post is short, so the page is a
// narrow card rather than a letter sheet.
const (
	paperWidthInches  = 6
	paperHeightInches = 8
	marginInches      = 0.4
)

// browserSettings controls how Chrome is launched.
type browserSettings struct {
	bin       string // empty lets rod find or download a browser
	noSandbox bool
}

// browserSettingsFromEnv reads ROD_BROWSER_BIN and ROD_NO_SANDBOX. The
// sandbox is also dropped for a custom binary and inside CI or containers,
// where Chrome cannot create its namespaces.
func browserSettingsFromEnv() browserSettings {
	s := browserSettings{bin: os.Getenv("ROD_BROWSER_BIN")}
	s.noSandbox = os.Getenv("ROD_NO_SANDBOX") == "1" ||
		s.bin != "" ||
		hints.InCI() ||
		hints.IsInContainer()
	return s
}

// rodRenderer prints pages with a lazily started headless Chrome.
type rodRenderer struct {
	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

func (r *rodRenderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	settings := browserSettingsFromEnv()
	l := launcher.New().NoSandbox(settings.noSandbox)
	if settings.bin != "" {
		l = l.Bin(settings.bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.launcher, r.browser = l, browser
	return browser, nil
}

// Close shuts the browser down, then kills its process group so no
// renderer helpers outlive the converter.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.browser = nil

	if r.launcher != nil {
		_ = process.KillTree(r.launcher.PID()) // the group may already be gone
		r.launcher.Kill()
		r.launcher = nil
	}
	return err
}

// RenderFromFile loads a local HTML file and prints it to PDF.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	budget, err := remaining(ctx, r.timeout)
	if err != nil {
		return nil, err
	}
	page = page.Timeout(budget)

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stream, err := page.PDF(buildPDFOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	pdf, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

// remaining returns the time left before ctx's deadline, or fallback when
// ctx has none.
func remaining(ctx context.Context, fallback time.Duration) (time.Duration, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return fallback, nil
	}
	left := time.Until(deadline)
	if left <= 0 {
		return 0, context.DeadlineExceeded
	}
	return left, nil
}

// buildPDFOptions returns the print settings for a post snapshot.
func buildPDFOptions() *proto.PagePrintToPDF {
	margin := float64(marginInches)
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paperWidthInches),
		PaperHeight:     floatPtr(paperHeightInches),
		MarginTop:       &margin,
		MarginBottom:    &margin,
		MarginLeft:      &margin,
		MarginRight:     &margin,
		PrintBackground: true,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

// rodConverter prints standalone pages through a temp file.
type rodConverter struct {
	renderer pdfRenderer
}

func newRodConverter(timeout time.Duration) *rodConverter {
	return &rodConverter{renderer: newRodRenderer(timeout)}
}

// ToPDF writes htmlContent to a temporary .html file, renders it and
// removes the file.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string) ([]byte, error) {
	path, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()
	return c.renderer.RenderFromFile(ctx, path)
}

func (c *rodConverter) Close() error {
	if c.renderer == nil {
		return nil
	}
	return c.renderer.Close()
}
