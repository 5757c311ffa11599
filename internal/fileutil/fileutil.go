// Package fileutil provides file and path helpers shared by the library
// and the CLI.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// WriteTempFile creates a temporary file with the given content and extension.
// Returns the file path and a cleanup function to remove the file.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	tmpFile, err := os.CreateTemp("", "tweet2html-*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", writeErr)
	}
	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	return path, cleanup, nil
}

// ValidateExtension checks that the extension is safe for use in file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than
// a name: it contains a path separator.
//
//	"dark"           -> false
//	"./dark.css"     -> true
//	"C:\styles\x.css" -> true
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like an http(s) URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// PostFileExtensions lists the input file extensions the CLI discovers.
var PostFileExtensions = []string{".json", ".yaml", ".yml"}

// IsPostFile reports whether path has one of PostFileExtensions.
func IsPostFile(path string) bool {
	return slices.Contains(PostFileExtensions, strings.ToLower(filepath.Ext(path)))
}

// OutputName derives an output file name from an input path.
// The input extension is replaced by ext. When suffix is non-empty it is
// appended to the base name with a dash, so one file holding several posts
// yields one output per post.
//
//	OutputName("in/post.json", "", ".html")      -> "post.html"
//	OutputName("in/posts.yaml", "123", ".pdf")   -> "posts-123.pdf"
func OutputName(inputPath, suffix, ext string) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "post"
	}
	if suffix != "" {
		base += "-" + suffix
	}
	return base + ext
}
