package main

import (
	"context"
	"errors"

	"github.com/alnah/go-tweet2html"
	"github.com/alnah/go-tweet2html/internal/assets"
	"github.com/alnah/go-tweet2html/internal/config"
	"github.com/alnah/go-tweet2html/internal/fileutil"
	"github.com/alnah/go-tweet2html/internal/hints"
)

// ErrUnknownCommand is returned for an unrecognized subcommand.
var ErrUnknownCommand = errors.New("unknown command")

// configError carries the requested config name so hints can list the
// paths that were searched.
type configError struct {
	name string
	err  error
}

func (e *configError) Error() string { return "loading config: " + e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// formatError renders err followed by an actionable hint when one applies.
func formatError(err error) string {
	msg := err.Error()

	var cfgErr *configError
	switch {
	case errors.Is(err, tweet2html.ErrBrowserConnect):
		return msg + hints.ForBrowserConnect()
	case errors.Is(err, tweet2html.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return msg + hints.ForTimeout()
	case errors.As(err, &cfgErr) && errors.Is(err, config.ErrConfigNotFound):
		var searched []string
		if !fileutil.IsFilePath(cfgErr.name) {
			searched = config.SearchPaths(cfgErr.name)
		}
		return msg + hints.ForConfigNotFound(searched)
	case errors.Is(err, tweet2html.ErrStyleNotFound):
		return msg + hints.ForStyleNotFound(assets.Styles())
	case errors.Is(err, ErrParseInput):
		return msg + hints.ForInputFormat()
	case errors.Is(err, ErrWriteOutput):
		return msg + hints.ForOutputDirectory()
	}
	return msg
}
