package main

// Notes:
// - runMain: we test exit codes and stream routing for each command. Convert
//   runs end to end on temp files without --pdf, so no browser is needed.
// - converterPool: we test Size and the panic on a foreign converter type.
// - newLogger: we test level selection for quiet/verbose.
// - notifyContext: we test context creation and cancellation, not OS signal
//   delivery, which is non-deterministic.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-tweet2html"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

const testPostJSON = `{
  "id_str": "42",
  "created_at": "Wed Oct 10 20:19:24 +0000 2018",
  "full_text": "#go by @gopher https://t.co/x",
  "user": {"screen_name": "golang", "name": "Go"},
  "entities": {
    "hashtags": [{"indices": [0, 3], "text": "go"}],
    "user_mentions": [{"indices": [7, 14], "screen_name": "gopher", "id_str": "7"}],
    "urls": [{"indices": [15, 29], "url": "https://t.co/x", "display_url": "go.dev", "expanded_url": "https://go.dev"}]
  }
}`

const testPostListYAML = `- id_str: "1"
  text: "first #go"
  entities:
    hashtags: [{indices: [6, 9], text: go}]
- id_str: "2"
  text: second post
`

const testOverlapJSON = `{
  "id_str": "9",
  "text": "#gopher",
  "entities": {
    "hashtags": [{"indices": [0, 7], "text": "gopher"}],
    "urls": [{"indices": [3, 7], "url": "https://t.co/y", "display_url": "y", "expanded_url": "https://y"}]
  }
}`

// testEnv returns an environment with captured output and a fixed clock.
func testEnv(stdin string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &Environment{
		Now:    func() time.Time { return time.Date(2018, 10, 10, 21, 19, 24, 0, time.UTC) },
		Stdin:  strings.NewReader(stdin),
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}

// writeFile creates a file under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 -- test path
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// TestRunMain - Command dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no command", []string{"tweet2html"}, ExitUsage, "", "Usage: tweet2html"},
		{"unknown command", []string{"tweet2html", "nope"}, ExitUsage, "", "unknown command: nope"},
		{"version", []string{"tweet2html", "version"}, ExitSuccess, "tweet2html dev", ""},
		{"help", []string{"tweet2html", "help"}, ExitSuccess, "Commands:", ""},
		{"help convert", []string{"tweet2html", "help", "convert"}, ExitSuccess, "--link-host", ""},
		{"convert help flag", []string{"tweet2html", "convert", "--help"}, ExitSuccess, "", "Usage: tweet2html convert"},
		{"convert bad flag", []string{"tweet2html", "convert", "--nope"}, ExitUsage, "", "unknown flag"},
		{"convert without input", []string{"tweet2html", "convert"}, ExitIO, "", "no input specified"},
		{"convert missing file", []string{"tweet2html", "convert", "does-not-exist.json"}, ExitIO, "", "does-not-exist.json"},
		{"convert bad workers", []string{"tweet2html", "convert", "-w", "-1", "x.json"}, ExitUsage, "", "invalid worker count"},
		{"convert bad timeout", []string{"tweet2html", "convert", "-t", "soon", "x.json"}, ExitUsage, "", "invalid timeout"},
		{"convert bad date format", []string{"tweet2html", "convert", "--date-format", "[oops", "x.json"}, ExitUsage, "", "date"},
		{"convert bad link host", []string{"tweet2html", "convert", "--link-host", "ftp://x", "x.json"}, ExitUsage, "", "links.host"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv("")
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d (stderr: %s)", code, tt.wantCode, stderr)
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want to contain %q", stdout, tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want to contain %q", stderr, tt.wantStderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Convert - End-to-end HTML conversion
// ---------------------------------------------------------------------------

func TestRunMain_Convert(t *testing.T) {
	t.Parallel()

	t.Run("single post writes a fragment", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "post.json", testPostJSON)

		env, stdout, stderr := testEnv("")
		if code := runMain([]string{"tweet2html", "convert", input}, env); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, stderr)
		}

		out := readFile(t, filepath.Join(dir, "post.html"))
		if !strings.Contains(out, "/search/%23go") {
			t.Errorf("fragment should link the hashtag, got %q", out)
		}
		if strings.Contains(out, "<!DOCTYPE") {
			t.Error("fragment should not be a full page")
		}
		if !strings.Contains(stdout.String(), "Created "+filepath.Join(dir, "post.html")) {
			t.Errorf("stdout = %q, want Created line", stdout)
		}
	})

	t.Run("page flag writes a standalone page", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "post.json", testPostJSON)
		outDir := filepath.Join(dir, "out")

		env, _, stderr := testEnv("")
		args := []string{"tweet2html", "convert", "--page", "--style", "dark", "-o", outDir, input}
		if code := runMain(args, env); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, stderr)
		}

		out := readFile(t, filepath.Join(outDir, "post.html"))
		if !strings.HasPrefix(out, "<!DOCTYPE html>") {
			t.Errorf("page should start with doctype, got %.40q", out)
		}
		if !strings.Contains(out, "@golang") {
			t.Error("page title should default to the post author")
		}
	})

	t.Run("list file writes one output per post", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "thread.yaml", testPostListYAML)

		env, stdout, stderr := testEnv("")
		if code := runMain([]string{"tweet2html", "convert", input}, env); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, stderr)
		}

		for _, name := range []string{"thread-1.html", "thread-2.html"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
				t.Errorf("expected %s: %v", name, err)
			}
		}
		if !strings.Contains(stdout.String(), "2 succeeded, 0 failed") {
			t.Errorf("stdout = %q, want summary", stdout)
		}
	})

	t.Run("stdin input", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		env, _, stderr := testEnv(testPostJSON)
		if code := runMain([]string{"tweet2html", "convert", "-o", dir, "-"}, env); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, stderr)
		}
		if _, err := os.Stat(filepath.Join(dir, "post.html")); err != nil {
			t.Errorf("expected post.html: %v", err)
		}
	})

	t.Run("directory keeps layout and reports bad files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "a.json", testPostJSON)
		writeFile(t, dir, "nested/b.json", testPostJSON)
		writeFile(t, dir, "broken.json", "{not json")
		writeFile(t, dir, "notes.txt", "ignored")
		outDir := filepath.Join(t.TempDir(), "out")

		env, _, stderr := testEnv("")
		code := runMain([]string{"tweet2html", "convert", "-o", outDir, dir}, env)
		if code != ExitIO {
			t.Errorf("exit = %d, want %d", code, ExitIO)
		}
		if !strings.Contains(stderr.String(), "FAILED "+filepath.Join(dir, "broken.json")) {
			t.Errorf("stderr = %q, want FAILED line for broken.json", stderr)
		}
		if !strings.Contains(stderr.String(), "hint:") {
			t.Errorf("stderr = %q, want an input format hint", stderr)
		}
		for _, name := range []string{"a.html", filepath.Join("nested", "b.html")} {
			if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
				t.Errorf("expected %s: %v", name, err)
			}
		}
	})

	t.Run("overlapping entities warn by default", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "overlap.json", testOverlapJSON)

		env, _, stderr := testEnv("")
		if code := runMain([]string{"tweet2html", "convert", input}, env); code != ExitSuccess {
			t.Fatalf("exit = %d, stderr: %s", code, stderr)
		}
		if !strings.Contains(stderr.String(), "level=warning") {
			t.Errorf("stderr = %q, want a warning", stderr)
		}
	})

	t.Run("overlapping entities fail under strict", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "overlap.json", testOverlapJSON)

		env, _, stderr := testEnv("")
		code := runMain([]string{"tweet2html", "convert", "--strict", input}, env)
		if code != ExitIO {
			t.Errorf("exit = %d, want %d (stderr: %s)", code, ExitIO, stderr)
		}
		if _, err := os.Stat(filepath.Join(dir, "overlap.html")); err == nil {
			t.Error("strict failure should not write output")
		}
	})

	t.Run("unknown style is a usage error with hint", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "post.json", testPostJSON)

		env, _, stderr := testEnv("")
		code := runMain([]string{"tweet2html", "convert", "--page", "--style", "neon", input}, env)
		if code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(stderr.String(), "available: ") {
			t.Errorf("stderr = %q, want available styles hint", stderr)
		}
	})

	t.Run("wrong extension", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		input := writeFile(t, dir, "post.txt", testPostJSON)

		env, _, stderr := testEnv("")
		code := runMain([]string{"tweet2html", "convert", input}, env)
		if code != ExitUsage {
			t.Errorf("exit = %d, want %d", code, ExitUsage)
		}
		if !strings.Contains(stderr.String(), ".json") {
			t.Errorf("stderr = %q, want extension message", stderr)
		}
	})
}

// ---------------------------------------------------------------------------
// TestConverterPool - Adapter over tweet2html.ConverterPool
// ---------------------------------------------------------------------------

// foreignConverter is a CLIConverter that is NOT *tweet2html.Converter.
type foreignConverter struct{}

func (foreignConverter) Convert(_ context.Context, _ tweet2html.Input) (*tweet2html.Result, error) {
	return &tweet2html.Result{}, nil
}

func TestConverterPool(t *testing.T) {
	t.Parallel()

	t.Run("size", func(t *testing.T) {
		t.Parallel()

		pool := newConverterPool(3)
		defer pool.Close()

		if pool.Size() != 3 {
			t.Errorf("Size() = %d, want 3", pool.Size())
		}
	})

	t.Run("acquire and release", func(t *testing.T) {
		t.Parallel()

		pool := newConverterPool(1)
		defer pool.Close()

		conv, err := pool.Acquire()
		if err != nil {
			t.Fatalf("Acquire() error: %v", err)
		}
		pool.Release(conv)

		again, err := pool.Acquire()
		if err != nil {
			t.Fatalf("second Acquire() error: %v", err)
		}
		if again != conv {
			t.Error("expected the released converter to be reused")
		}
		pool.Release(again)
	})

	t.Run("release wrong type panics", func(t *testing.T) {
		t.Parallel()

		pool := newConverterPool(1)
		defer pool.Close()

		defer func() {
			r := recover()
			if r == nil {
				t.Fatal("expected panic for wrong type, got none")
			}
			msg, ok := r.(string)
			if !ok || !strings.Contains(msg, "unexpected converter type") {
				t.Errorf("panic = %v, want unexpected converter type", r)
			}
		}()
		pool.Release(foreignConverter{})
	})
}

// ---------------------------------------------------------------------------
// TestNewLogger - Level selection
// ---------------------------------------------------------------------------

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		verbose bool
		quiet   bool
		want    logrus.Level
	}{
		{"default", false, false, logrus.WarnLevel},
		{"verbose", true, false, logrus.DebugLevel},
		{"quiet", false, true, logrus.ErrorLevel},
		{"quiet wins", true, true, logrus.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log := newLogger(&buf, tt.verbose, tt.quiet)
			if log.GetLevel() != tt.want {
				t.Errorf("level = %v, want %v", log.GetLevel(), tt.want)
			}

			log.Error("boom")
			if !strings.Contains(buf.String(), "boom") {
				t.Errorf("logger should write to the given writer, got %q", buf.String())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestNotifyContext - Context creation and cancellation behavior
// ---------------------------------------------------------------------------

func TestNotifyContext(t *testing.T) {
	t.Parallel()

	t.Run("starts not cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, stop := notifyContext(context.Background())
		defer stop()

		select {
		case <-ctx.Done():
			t.Fatal("context should not be cancelled initially")
		default:
		}
	})

	t.Run("stop cancels", func(t *testing.T) {
		t.Parallel()

		ctx, stop := notifyContext(context.Background())
		stop()

		select {
		case <-ctx.Done():
		default:
			t.Fatal("context should be cancelled after stop()")
		}
	})

	t.Run("inherits parent cancellation", func(t *testing.T) {
		t.Parallel()

		parent, cancel := context.WithCancel(context.Background())
		ctx, stop := notifyContext(parent)
		defer stop()

		cancel()

		select {
		case <-ctx.Done():
		default:
			t.Fatal("context should be cancelled when parent is cancelled")
		}
	})
}
