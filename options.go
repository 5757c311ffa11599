package tweet2html

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout       time.Duration
	linkHost      string
	dateFormat    string
	dateFormatter DateFormatter
	now           func() time.Time
	strictSpans   bool
	styleInput    string // style name or CSS file path
	resolvedStyle string // CSS content after resolution
	assetPath     string
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("tweet2html: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithLogger sets the logger used for skipped entities and dropped
// replacements. The default logger discards everything.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Converter) {
		if log != nil {
			c.log = log
		}
	}
}

// WithLinkHost sets the site hashtag, mention and status links point to,
// e.g. "https://x.com". NewConverter returns ErrInvalidLinkHost if host is
// not an http(s) URL.
func WithLinkHost(host string) Option {
	return func(c *Converter) {
		c.cfg.linkHost = host
	}
}

// WithDateFormat sets how Result.Date is rendered: "relative" (default),
// a preset name, or a token format. See FormatDate.
// NewConverter returns ErrInvalidDateFormat if format is not accepted.
func WithDateFormat(format string) Option {
	return func(c *Converter) {
		c.cfg.dateFormat = format
	}
}

// WithDateFormatter replaces date formatting altogether.
// Takes precedence over WithDateFormat.
func WithDateFormatter(f DateFormatter) Option {
	return func(c *Converter) {
		c.cfg.dateFormatter = f
	}
}

// WithNow sets the clock relative dates are computed against.
func WithNow(now func() time.Time) Option {
	return func(c *Converter) {
		if now != nil {
			c.cfg.now = now
		}
	}
}

// WithStrictSpans makes Convert fail with ErrOverlappingSpans instead of
// dropping replacements whose spans overlap.
func WithStrictSpans() Option {
	return func(c *Converter) {
		c.cfg.strictSpans = true
	}
}

// WithStyle sets the page style: a built-in style name ("default", "dark")
// or a path to a CSS file.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath sets a directory of custom styles and templates that take
// precedence over the built-in ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}
