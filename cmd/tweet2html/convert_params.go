package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-tweet2html"
	"github.com/alnah/go-tweet2html/internal/config"
)

// ErrInvalidTimeout is returned for unparsable or out-of-range timeouts.
var ErrInvalidTimeout = errors.New("invalid timeout")

// conversionParams groups per-post parameters shared across a batch.
type conversionParams struct {
	handle string
	title  string
	page   bool // write a standalone page instead of a fragment
	pdf    bool // also write a PDF snapshot
}

// mergeFlags overrides config values with explicitly set CLI flags.
func mergeFlags(f *convertFlags, cfg *config.Config) {
	if f.output != "" {
		cfg.Output.DefaultDir = f.output
	}
	if f.workers > 0 {
		cfg.Output.Workers = f.workers
	}
	if f.pdf {
		cfg.PDF.Enabled = true
	}
	if f.page.enabled {
		cfg.Page.Enabled = true
	}
	if f.page.style != "" {
		cfg.Page.Style = f.page.style
	}
	if f.page.assetPath != "" {
		cfg.Assets.BasePath = f.page.assetPath
	}
	if f.post.linkHost != "" {
		cfg.Links.Host = f.post.linkHost
	}
	if f.post.dateFormat != "" {
		cfg.Date.Format = f.post.dateFormat
	}
}

// resolveTimeout parses the --timeout flag, falling back to the config value.
// Zero means the library default.
func resolveTimeout(flagValue string, cfg *config.Config) (time.Duration, error) {
	if flagValue == "" {
		return cfg.PDF.Timeout, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
	}
	if d <= 0 || d > config.MaxPDFTimeout {
		return 0, fmt.Errorf("%w: %s (must be > 0 and <= %s)", ErrInvalidTimeout, d, config.MaxPDFTimeout)
	}
	return d, nil
}

// buildConverterOptions translates the merged config into converter options.
func buildConverterOptions(cfg *config.Config, timeout time.Duration, strict bool, env *Environment, log logrus.FieldLogger) []tweet2html.Option {
	opts := []tweet2html.Option{
		tweet2html.WithLogger(log),
		tweet2html.WithNow(env.Now),
	}
	if timeout > 0 {
		opts = append(opts, tweet2html.WithTimeout(timeout))
	}
	if cfg.Links.Host != "" {
		opts = append(opts, tweet2html.WithLinkHost(cfg.Links.Host))
	}
	if cfg.Date.Format != "" {
		opts = append(opts, tweet2html.WithDateFormat(cfg.Date.Format))
	}
	if cfg.Page.Style != "" {
		opts = append(opts, tweet2html.WithStyle(cfg.Page.Style))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, tweet2html.WithAssetPath(cfg.Assets.BasePath))
	}
	if strict {
		opts = append(opts, tweet2html.WithStrictSpans())
	}
	return opts
}

// buildConversionParams derives per-post parameters from flags and config.
func buildConversionParams(f *convertFlags, cfg *config.Config) *conversionParams {
	return &conversionParams{
		handle: f.post.handle,
		title:  f.page.title,
		page:   cfg.Page.Enabled || cfg.PDF.Enabled,
		pdf:    cfg.PDF.Enabled,
	}
}
