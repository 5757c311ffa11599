package tweet2html

import (
	"errors"

	"github.com/alnah/go-tweet2html/internal/dateutil"
)

// Sentinel errors for library operations.
var (
	ErrNilPost          = errors.New("post cannot be nil")
	ErrOverlappingSpans = errors.New("post entities overlap")
	ErrPDFGeneration    = errors.New("PDF generation failed")
	ErrBrowserConnect   = errors.New("failed to connect to browser")
	ErrPageCreate       = errors.New("failed to create browser page")
	ErrPageLoad         = errors.New("failed to load page")
	ErrPageRender       = errors.New("page rendering failed")

	// Option validation errors.
	ErrInvalidLinkHost   = errors.New("invalid link host")
	ErrInvalidDateFormat = dateutil.ErrInvalidDateFormat

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
