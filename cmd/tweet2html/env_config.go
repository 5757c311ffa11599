package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/alnah/go-tweet2html/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // TWEET2HTML_CONFIG: config file name or path
	Style      string        // TWEET2HTML_STYLE: CSS style name or path
	LinkHost   string        // TWEET2HTML_LINK_HOST: site for entity links
	DateFormat string        // TWEET2HTML_DATE_FORMAT: date format
	OutputDir  string        // TWEET2HTML_OUTPUT_DIR: default output directory
	Timeout    time.Duration // TWEET2HTML_TIMEOUT: PDF generation timeout
	Workers    int           // TWEET2HTML_WORKERS: parallel workers
}

// knownEnvVars lists valid TWEET2HTML_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"TWEET2HTML_CONFIG":      true,
	"TWEET2HTML_STYLE":       true,
	"TWEET2HTML_LINK_HOST":   true,
	"TWEET2HTML_DATE_FORMAT": true,
	"TWEET2HTML_OUTPUT_DIR":  true,
	"TWEET2HTML_TIMEOUT":     true,
	"TWEET2HTML_WORKERS":     true,
	"TWEET2HTML_CONTAINER":   true,
}

// ErrEnvFile is returned when the --env-file file cannot be loaded.
var ErrEnvFile = errors.New("failed to load env file")

// loadEnvFile adds the variables of a dotenv file to the process
// environment. Variables already set keep their value, so the shell wins
// over the file.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEnvFile, path, err)
	}
	return nil
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable numeric values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("TWEET2HTML_CONFIG"),
		Style:      os.Getenv("TWEET2HTML_STYLE"),
		LinkHost:   os.Getenv("TWEET2HTML_LINK_HOST"),
		DateFormat: os.Getenv("TWEET2HTML_DATE_FORMAT"),
		OutputDir:  os.Getenv("TWEET2HTML_OUTPUT_DIR"),
	}

	if timeout := os.Getenv("TWEET2HTML_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("TWEET2HTML_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs a warning for each unrecognized TWEET2HTML_* variable.
// Helps catch typos like TWEET2HTML_STLYE.
func warnUnknownEnvVars(log logrus.FieldLogger) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, "TWEET2HTML_") {
			continue
		}
		name := strings.SplitN(env, "=", 2)[0]
		if !knownEnvVars[name] {
			log.WithField("variable", name).Warn("unknown environment variable (typo?)")
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// A value is applied only when the config leaves the field at its default,
// so that CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" && cfg.Page.Style == "" {
		cfg.Page.Style = env.Style
	}
	if env.LinkHost != "" && cfg.Links.Host == "" {
		cfg.Links.Host = env.LinkHost
	}
	if env.DateFormat != "" && (cfg.Date.Format == "" || cfg.Date.Format == config.DefaultConfig().Date.Format) {
		cfg.Date.Format = env.DateFormat
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Timeout > 0 && cfg.PDF.Timeout == 0 {
		cfg.PDF.Timeout = env.Timeout
	}
	if env.Workers > 0 && cfg.Output.Workers == 0 {
		cfg.Output.Workers = env.Workers
	}
}
