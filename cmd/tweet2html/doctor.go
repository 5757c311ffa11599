package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-tweet2html/internal/assets"
	"github.com/alnah/go-tweet2html/internal/config"
	"github.com/alnah/go-tweet2html/internal/hints"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult is the doctor report, also emitted as JSON.
type doctorResult struct {
	Status   string     `json:"status"`
	Chrome   chromeInfo `json:"chrome"`
	Config   configInfo `json:"config"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// chromeInfo describes the browser used by --pdf.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

type configInfo struct {
	Name   string   `json:"name,omitempty"`
	Loaded bool     `json:"loaded"`
	Styles []string `json:"styles"`
}

type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

func (r *doctorResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *doctorResult) fail(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// runDoctorCmd executes the doctor command and returns an exit code:
// 0 when conversion can run (warnings included), 1 on errors, 2 on bad flags.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printDoctorUsage(env.Stderr) }
	jsonOutput := fs.Bool("json", false, "output results as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return ExitSuccess
		}
		return ExitUsage
	}

	result := runDoctor()

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor runs every check and derives the overall status.
func runDoctor() *doctorResult {
	result := &doctorResult{
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(result)
	checkConfig(result, os.Getenv("TWEET2HTML_CONFIG"))
	checkEnvironment(result)
	checkSystem(result)

	switch {
	case len(result.Errors) > 0:
		result.Status = statusErrors
	case len(result.Warnings) > 0:
		result.Status = statusWarnings
	default:
		result.Status = statusReady
	}
	return result
}

// checkChrome locates the browser. HTML output does not need one, so a
// missing browser only warns.
func checkChrome(result *doctorResult) {
	path := result.Env.BrowserBin
	if path == "" {
		found, ok := launcher.LookPath()
		if !ok {
			result.warn("Chrome/Chromium not found: --pdf is unavailable. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
		path = found
	}
	if _, err := os.Stat(path); err != nil {
		result.warn("Chrome not found at %s: --pdf is unavailable", path)
		return
	}

	result.Chrome = chromeInfo{
		Found:   true,
		Path:    path,
		Sandbox: result.Env.NoSandbox != "1",
	}

	out, err := exec.Command(path, "--version").Output() // #nosec G204 -- browser path from env or rod lookup
	if err != nil {
		result.warn("Could not get Chrome version: %v", err)
		return
	}
	result.Chrome.Version = strings.TrimSpace(string(out))
}

// checkConfig loads the config named by TWEET2HTML_CONFIG, if any, and
// lists the styles a page can use.
func checkConfig(result *doctorResult, name string) {
	result.Config.Styles = assets.Styles()
	if name == "" {
		return
	}
	result.Config.Name = name

	cfg, err := config.LoadConfig(name)
	if err != nil {
		result.fail("TWEET2HTML_CONFIG: %v", err)
		return
	}
	result.Config.Loaded = true

	if cfg.Assets.BasePath == "" {
		return
	}
	resolver, err := assets.NewAssetResolver(cfg.Assets.BasePath)
	if err != nil {
		result.fail("assets.basePath: %v", err)
		return
	}
	result.Config.Styles = resolver.ListStyles()
}

func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()
	result.Env.CI = hints.InCI()

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.warn("Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer reports whether we run in a container, and which signal said so.
func isContainer() (bool, string) {
	switch {
	case os.Getenv("TWEET2HTML_CONTAINER") == "1":
		return true, "TWEET2HTML_CONTAINER=1"
	case hints.IsInContainer():
		return true, "/.dockerenv"
	case os.Getenv("container") != "": // podman, systemd-nspawn
		return true, "container=" + os.Getenv("container")
	case os.Getenv("KUBERNETES_SERVICE_HOST") != "":
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory Chrome renders PDFs through.
func checkSystem(result *doctorResult) {
	tmpFile := filepath.Join(os.TempDir(), "tweet2html-doctor-test")
	if err := os.WriteFile(tmpFile, []byte("test"), 0o600); err != nil {
		result.warn("Temp directory not writable: %s (--pdf is unavailable)", os.TempDir())
		return
	}
	_ = os.Remove(tmpFile)
	result.System.TempWritable = true
}

// Report line markers.
const (
	markOK    = "[OK]"
	markWarn  = "[WARN]"
	markError = "[ERROR]"
)

type reportLine struct {
	mark string
	text string
}

type reportSection struct {
	title string
	lines []reportLine
}

// sections lays the result out for printDoctorResult.
func (r *doctorResult) sections() []reportSection {
	chrome := reportSection{title: "Chrome/Chromium (for --pdf)"}
	if r.Chrome.Found {
		chrome.lines = append(chrome.lines, reportLine{markOK, "Found at " + r.Chrome.Path})
		if r.Chrome.Version != "" {
			chrome.lines = append(chrome.lines, reportLine{markOK, "Version: " + r.Chrome.Version})
		}
		sandbox := "Sandbox: enabled"
		if !r.Chrome.Sandbox {
			sandbox = "Sandbox: disabled (ROD_NO_SANDBOX=1)"
		}
		chrome.lines = append(chrome.lines, reportLine{markOK, sandbox})
	} else {
		chrome.lines = append(chrome.lines, reportLine{markWarn, "Not found"})
	}

	cfg := reportSection{title: "Configuration"}
	switch {
	case r.Config.Name == "":
		cfg.lines = append(cfg.lines, reportLine{markOK, "Config: defaults (TWEET2HTML_CONFIG not set)"})
	case r.Config.Loaded:
		cfg.lines = append(cfg.lines, reportLine{markOK, "Config: " + r.Config.Name})
	default:
		cfg.lines = append(cfg.lines, reportLine{markError, "Config: " + r.Config.Name})
	}
	cfg.lines = append(cfg.lines, reportLine{markOK, "Styles: " + strings.Join(r.Config.Styles, ", ")})

	env := reportSection{title: "Environment", lines: []reportLine{
		{markOK, "Platform: " + r.Env.OS + "/" + r.Env.Arch},
	}}
	if r.Env.Container {
		env.lines = append(env.lines, reportLine{markOK, "Container: detected (" + r.Env.ContainerHint + ")"})
	}
	if r.Env.CI {
		env.lines = append(env.lines, reportLine{markOK, "CI: detected"})
	}

	system := reportSection{title: "System", lines: []reportLine{{markOK, "Temp directory: writable"}}}
	if !r.System.TempWritable {
		system.lines = []reportLine{{markWarn, "Temp directory: not writable"}}
	}

	out := []reportSection{chrome, cfg, env, system}
	if len(r.Warnings) > 0 {
		out = append(out, listSection("Warnings:", markWarn, r.Warnings))
	}
	if len(r.Errors) > 0 {
		out = append(out, listSection("Errors:", markError, r.Errors))
	}
	return out
}

func listSection(title, mark string, items []string) reportSection {
	s := reportSection{title: title}
	for _, item := range items {
		s.lines = append(s.lines, reportLine{mark, item})
	}
	return s
}

var statusLines = map[string]string{
	statusReady:    "Status: Ready to convert",
	statusWarnings: "Status: Ready with warnings",
	statusErrors:   "Status: Not ready (see errors above)",
}

// printDoctorResult writes the human-readable report.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintf(w, "tweet2html doctor\n\n")
	for _, s := range r.sections() {
		fmt.Fprintln(w, s.title)
		for _, l := range s.lines {
			fmt.Fprintf(w, "  %s %s\n", l.mark, l.text)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, statusLines[r.Status])
}
