package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alnah/go-tweet2html"
	"github.com/alnah/go-tweet2html/internal/config"
	"github.com/alnah/go-tweet2html/internal/fileutil"
	"github.com/alnah/go-tweet2html/internal/yamlutil"
)

// Sentinel errors for input discovery and loading.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrInvalidExtension   = errors.New("file must have .json, .yaml or .yml extension")
	ErrReadInput          = errors.New("failed to read post file")
	ErrParseInput         = errors.New("failed to parse post file")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// stdinPath is the input argument that reads posts from standard input.
const stdinPath = "-"

// stdinName names outputs of posts read from standard input.
const stdinName = "post.json"

// FileToConvert is a discovered post file and the directory its outputs go to.
type FileToConvert struct {
	InputPath string
	OutputDir string
}

// postJob is a single post to convert.
type postJob struct {
	InputPath  string
	Post       *tweet2html.Post
	OutputBase string // output path without extension
}

// discoverFiles finds all post files to convert.
// inputPath is a file, a directory (walked recursively) or "-" for stdin.
// An empty outputDir writes outputs next to their input.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	if inputPath == stdinPath {
		dir := outputDir
		if dir == "" {
			dir = "."
		}
		return []FileToConvert{{InputPath: stdinPath, OutputDir: dir}}, nil
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !fileutil.IsPostFile(inputPath) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(inputPath))
		}
		return []FileToConvert{{InputPath: inputPath, OutputDir: resolveOutputDir(inputPath, outputDir, "")}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.IsPostFile(path) {
			return nil
		}
		files = append(files, FileToConvert{
			InputPath: path,
			OutputDir: resolveOutputDir(path, outputDir, inputPath),
		})
		return nil
	})

	return files, err
}

// resolveOutputDir determines where outputs of inputPath are written.
// Inside a walked directory the relative layout is kept under outputDir.
func resolveOutputDir(inputPath, outputDir, baseInputDir string) string {
	if outputDir == "" {
		return filepath.Dir(inputPath)
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath))
		}
	}

	return outputDir
}

// loadJobs reads and decodes a post file. A file holding a list of posts
// yields one job per post, named after the post ID (or its position when
// the post has none).
func loadJobs(f FileToConvert, stdin io.Reader) ([]postJob, error) {
	data, err := readInput(f.InputPath, stdin)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	posts, err := yamlutil.UnmarshalList[tweet2html.Post](data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParseInput, f.InputPath, err)
	}

	name := f.InputPath
	if name == stdinPath {
		name = stdinName
	}

	jobs := make([]postJob, len(posts))
	for i := range posts {
		suffix := ""
		if len(posts) > 1 {
			suffix = posts[i].ID
			if suffix == "" || strings.ContainsAny(suffix, `/\`) {
				suffix = strconv.Itoa(i + 1)
			}
		}
		jobs[i] = postJob{
			InputPath:  f.InputPath,
			Post:       &posts[i],
			OutputBase: filepath.Join(f.OutputDir, fileutil.OutputName(name, suffix, "")),
		}
	}
	return jobs, nil
}

// readInput reads a post file, or stdin for "-". Reads are capped at
// yamlutil.MaxInputSize plus one byte so oversized input is reported by
// the decoder instead of being loaded whole.
func readInput(path string, stdin io.Reader) ([]byte, error) {
	var r io.Reader
	if path == stdinPath {
		r = stdin
	} else {
		file, err := os.Open(path) // #nosec G304 -- discovered path
		if err != nil {
			return nil, err
		}
		defer file.Close()
		r = file
	}
	return io.ReadAll(io.LimitReader(r, int64(yamlutil.MaxInputSize)+1))
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}
