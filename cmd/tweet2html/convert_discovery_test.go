package main

// Notes:
// - discoverFiles: we test stdin, single files, extension checks and
//   recursive directory walks with output layout preservation.
// - loadJobs: we test single posts, lists named by id or position, stdin
//   naming and decode errors.
// - validateWorkers: we test bounds.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/alnah/go-tweet2html/internal/config"
)

// ---------------------------------------------------------------------------
// TestDiscoverFiles - Input discovery
// ---------------------------------------------------------------------------

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	t.Run("stdin", func(t *testing.T) {
		t.Parallel()

		files, err := discoverFiles("-", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 1 || files[0].InputPath != "-" || files[0].OutputDir != "." {
			t.Errorf("files = %+v, want stdin into current dir", files)
		}
	})

	t.Run("single file next to input", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "post.yaml", "id_str: '1'")

		files, err := discoverFiles(path, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(files) != 1 || files[0].OutputDir != dir {
			t.Errorf("files = %+v, want output dir %s", files, dir)
		}
	})

	t.Run("single file into output dir", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "post.json", "{}")

		files, err := discoverFiles(path, "out")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if files[0].OutputDir != "out" {
			t.Errorf("OutputDir = %q, want out", files[0].OutputDir)
		}
	})

	t.Run("wrong extension", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "post.md", "")
		if _, err := discoverFiles(path, ""); !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("err = %v, want ErrInvalidExtension", err)
		}
	})

	t.Run("missing input", func(t *testing.T) {
		t.Parallel()

		_, err := discoverFiles(filepath.Join(t.TempDir(), "nope.json"), "")
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("err = %v, want os.ErrNotExist", err)
		}
	})

	t.Run("directory walk", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "a.json", "{}")
		writeFile(t, dir, "sub/b.yml", "{}")
		writeFile(t, dir, "sub/readme.txt", "")

		files, err := discoverFiles(dir, "out")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := make([]string, 0, len(files))
		for _, f := range files {
			rel, _ := filepath.Rel(dir, f.InputPath)
			got = append(got, rel+" -> "+f.OutputDir)
		}
		sort.Strings(got)

		want := []string{
			"a.json -> out",
			filepath.Join("sub", "b.yml") + " -> " + filepath.Join("out", "sub"),
		}
		if strings.Join(got, "|") != strings.Join(want, "|") {
			t.Errorf("files = %v, want %v", got, want)
		}
	})
}

// ---------------------------------------------------------------------------
// TestLoadJobs - Decoding post files into jobs
// ---------------------------------------------------------------------------

func TestLoadJobs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		wantBases []string
	}{
		{"single object", testPostJSON, []string{"feed"}},
		{"list named by id", testPostListYAML, []string{"feed-1", "feed-2"}},
		{"list without ids", "- text: a\n- text: b\n", []string{"feed-1", "feed-2"}},
		{"unsafe id falls back to position", "- id_str: ../x\n  text: a\n- text: b\n", []string{"feed-1", "feed-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := writeFile(t, dir, "feed.yaml", tt.content)

			jobs, err := loadJobs(FileToConvert{InputPath: path, OutputDir: "out"}, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(jobs) != len(tt.wantBases) {
				t.Fatalf("got %d jobs, want %d", len(jobs), len(tt.wantBases))
			}
			for i, job := range jobs {
				want := filepath.Join("out", tt.wantBases[i])
				if job.OutputBase != want {
					t.Errorf("job %d OutputBase = %q, want %q", i, job.OutputBase, want)
				}
				if job.Post == nil {
					t.Errorf("job %d has nil post", i)
				}
			}
		})
	}

	t.Run("stdin", func(t *testing.T) {
		t.Parallel()

		jobs, err := loadJobs(FileToConvert{InputPath: "-", OutputDir: "."}, strings.NewReader(testPostJSON))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if jobs[0].OutputBase != "post" || jobs[0].Post.ID != "42" {
			t.Errorf("job = %+v, want post named after stdin", jobs[0])
		}
	})

	t.Run("parse error", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "bad.json", "{not json")
		if _, err := loadJobs(FileToConvert{InputPath: path}, nil); !errors.Is(err, ErrParseInput) {
			t.Errorf("err = %v, want ErrParseInput", err)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "empty.json", "")
		if _, err := loadJobs(FileToConvert{InputPath: path}, nil); !errors.Is(err, ErrParseInput) {
			t.Errorf("err = %v, want ErrParseInput", err)
		}
	})

	t.Run("read error", func(t *testing.T) {
		t.Parallel()

		_, err := loadJobs(FileToConvert{InputPath: filepath.Join(t.TempDir(), "gone.json")}, nil)
		if !errors.Is(err, ErrReadInput) {
			t.Errorf("err = %v, want ErrReadInput", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestValidateWorkers - Worker count bounds
// ---------------------------------------------------------------------------

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n       int
		wantErr bool
	}{
		{0, false},
		{1, false},
		{config.MaxWorkers, false},
		{-1, true},
		{config.MaxWorkers + 1, true},
	}

	for _, tt := range tests {
		err := validateWorkers(tt.n)
		if tt.wantErr != errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
	}
}
