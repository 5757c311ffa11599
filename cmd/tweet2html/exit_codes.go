package main

import (
	"errors"
	"os"

	"github.com/alnah/go-tweet2html"
	"github.com/alnah/go-tweet2html/internal/config"
	"github.com/alnah/go-tweet2html/internal/yamlutil"
)

// Exit codes for the tweet2html CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, unreadable post
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, tweet2html.ErrBrowserConnect) ||
		errors.Is(err, tweet2html.ErrPageCreate) ||
		errors.Is(err, tweet2html.ErrPageLoad) ||
		errors.Is(err, tweet2html.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrParseInput) ||
		errors.Is(err, tweet2html.ErrOverlappingSpans) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, yamlutil.ErrInputTooLarge) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, tweet2html.ErrInvalidLinkHost) ||
		errors.Is(err, tweet2html.ErrInvalidDateFormat) ||
		errors.Is(err, tweet2html.ErrStyleNotFound) ||
		errors.Is(err, tweet2html.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrWatchStdin) ||
		errors.Is(err, ErrEnvFile) ||
		errors.Is(err, ErrUnknownCommand) {
		return ExitUsage
	}

	return ExitGeneral
}
