package main

// Notes:
// - parseConvertFlags: we test that each flag group binds to its field and
//   that positional arguments survive interleaving with flags.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"testing"
)

// ---------------------------------------------------------------------------
// TestParseConvertFlags - Flag binding
// ---------------------------------------------------------------------------

func TestParseConvertFlags(t *testing.T) {
	t.Parallel()

	args := []string{
		"-o", "out", "-w", "2", "-t", "45s", "--pdf",
		"-c", "work", "--env-file", "ci.env", "-v", "--watch",
		"--page", "--style", "dark", "--asset-path", "assets", "--title", "T",
		"post.json",
		"--handle", "gopher", "--link-host", "https://x.example", "--date-format", "iso", "--strict",
	}

	var stderr bytes.Buffer
	f, positional, err := parseConvertFlags(args, &stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v (stderr: %s)", err, stderr.String())
	}

	if len(positional) != 1 || positional[0] != "post.json" {
		t.Errorf("positional = %v, want [post.json]", positional)
	}
	if f.output != "out" || f.workers != 2 || f.timeout != "45s" || !f.pdf || !f.watch {
		t.Errorf("io flags = %+v", f)
	}
	if f.common != (commonFlags{config: "work", envFile: "ci.env", verbose: true}) {
		t.Errorf("common = %+v", f.common)
	}
	if f.page != (pageFlags{enabled: true, style: "dark", assetPath: "assets", title: "T"}) {
		t.Errorf("page = %+v", f.page)
	}
	if f.post != (postFlags{handle: "gopher", linkHost: "https://x.example", dateFormat: "iso", strict: true}) {
		t.Errorf("post = %+v", f.post)
	}
}

func TestParseConvertFlags_Defaults(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	f, positional, err := parseConvertFlags(nil, &stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(positional) != 0 {
		t.Errorf("positional = %v, want none", positional)
	}
	if f.workers != 0 || f.pdf || f.watch || f.page.enabled || f.post.strict {
		t.Errorf("defaults = %+v, want zero values", f)
	}
}
