// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-tweet2html/internal/fileutil"
)

// ciVars are set by the CI providers we recognize.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// InCI reports whether a known CI variable is set.
func InCI() bool {
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// SandboxUnsafe reports whether Chrome will likely fail to start because it
// runs sandboxed inside a container or CI job.
func SandboxUnsafe() bool {
	return (InCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1"
}

// ForBrowserConnect returns hints for browser connection errors.
func ForBrowserConnect() string {
	var parts []string
	if SandboxUnsafe() {
		parts = append(parts, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		parts = append(parts, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	return format(append(parts, "or drop --pdf to write HTML only")...)
}

// ForTimeout returns a hint about increasing the PDF timeout.
func ForTimeout() string {
	return format("for slow media hosts, raise --timeout")
}

// ForConfigNotFound suggests --config, plus the user config location when
// it is among searchedPaths.
func ForConfigNotFound(searchedPaths []string) string {
	userDir := filepath.Join(".config", "go-tweet2html")
	for _, p := range searchedPaths {
		if strings.Contains(p, userDir) {
			return format("use --config /path/to/file.yaml or create " + p)
		}
	}
	return format("use --config /path/to/file.yaml")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the available styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForInputFormat explains the accepted post file layout.
func ForInputFormat() string {
	return format("expected a JSON or YAML post object (id_str, text, entities) or a list of them")
}

// format joins hints into a single "hint:" line. No hints yields "".
func format(hints ...string) string {
	if len(hints) == 0 {
		return ""
	}
	return "\n  hint: " + strings.Join(hints, "; ")
}
