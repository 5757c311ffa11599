package main

// Notes:
// - runHelp: we test routing of each topic to stdout and unknown topics to
//   stderr. Usage text content is checked only for key markers.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunHelp - Help topics
// ---------------------------------------------------------------------------

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantStdout string
		wantStderr string
	}{
		{"no topic", nil, "Commands:", ""},
		{"convert", []string{"convert"}, "--strict", ""},
		{"convert lists styles", []string{"convert"}, "default", ""},
		{"doctor", []string{"doctor"}, "--json", ""},
		{"version", []string{"version"}, "Usage: tweet2html version", ""},
		{"help", []string{"help"}, "Usage: tweet2html help", ""},
		{"unknown", []string{"bogus"}, "", "Unknown command: bogus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv("")
			runHelp(tt.args, env)

			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want to contain %q", stdout, tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want to contain %q", stderr, tt.wantStderr)
			}
		})
	}
}
