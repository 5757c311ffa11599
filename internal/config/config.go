// Package config loads and validates YAML configuration for tweet2html.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-tweet2html/internal/dateutil"
	"github.com/alnah/go-tweet2html/internal/fileutil"
	"github.com/alnah/go-tweet2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDir is the directory name under the user config dir searched by LoadConfig.
const AppDir = "go-tweet2html"

// Field length limits.
const (
	MaxURLLength   = 2048
	MaxStyleLength = 100
	MaxPathLength  = 4096
)

// Limits on numeric fields.
const (
	MaxPDFTimeout = 5 * time.Minute
	MaxWorkers    = 64
)

// Config holds all configuration for post conversion.
type Config struct {
	Links  LinksConfig  `yaml:"links"`
	Date   DateConfig   `yaml:"date"`
	Page   PageConfig   `yaml:"page"`
	Output OutputConfig `yaml:"output"`
	PDF    PDFConfig    `yaml:"pdf"`
	Assets AssetsConfig `yaml:"assets"`
}

// LinksConfig defines where hashtag, mention and status links point.
type LinksConfig struct {
	Host string `yaml:"host"` // empty = https://twitter.com
}

// DateConfig defines how the post date is shown.
type DateConfig struct {
	Format string `yaml:"format"` // "relative", a preset, or a token format (empty = relative)
}

// PageConfig defines standalone page output.
type PageConfig struct {
	Enabled bool   `yaml:"enabled"`
	Style   string `yaml:"style"` // name or path of a CSS style (empty = default)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the input
	Workers    int    `yaml:"workers"`    // 0 = automatic
}

// PDFConfig defines PDF snapshot options.
type PDFConfig struct {
	Enabled bool          `yaml:"enabled"`
	Timeout time.Duration `yaml:"timeout"` // 0 = library default
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets only
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for library users who
// construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("links.host", c.Links.Host, MaxURLLength); err != nil {
		return err
	}
	if c.Links.Host != "" && !fileutil.IsURL(c.Links.Host) {
		return fmt.Errorf("%w: links.host must start with http:// or https://, got %q", ErrInvalidValue, c.Links.Host)
	}

	if c.Date.Format != "" {
		if err := dateutil.ValidateFormat(c.Date.Format); err != nil {
			return fmt.Errorf("date.format: %w", err)
		}
	}

	if err := validateFieldLength("page.style", c.Page.Style, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	if c.Output.Workers < 0 || c.Output.Workers > MaxWorkers {
		return fmt.Errorf("%w: output.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Output.Workers)
	}
	if c.PDF.Timeout < 0 || c.PDF.Timeout > MaxPDFTimeout {
		return fmt.Errorf("%w: pdf.timeout must be between 0 and %s, got %s", ErrInvalidValue, MaxPDFTimeout, c.PDF.Timeout)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given:
// fragment output only, relative dates, embedded assets.
func DefaultConfig() *Config {
	return &Config{
		Date: DateConfig{Format: dateutil.Relative},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the files LoadConfig tries for a config name, in order:
// the current directory, then the user config directory, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
