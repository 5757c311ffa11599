package assets

import "errors"

// Sentinel errors for asset lookups.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetName = errors.New("invalid asset name") // separators, dots or NUL in the name
	ErrInvalidBasePath  = errors.New("invalid base path")
	ErrAssetRead        = errors.New("failed to read asset") // I/O failure or a path leaving the base directory
)
