package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/alnah/go-tweet2html/internal/fileutil"
)

// ErrWatchStdin is returned when --watch is combined with stdin input.
var ErrWatchStdin = errors.New("--watch needs a file or directory, not stdin")

// watchDebounce is how long the watcher waits for writes to settle before
// converting. Editors often save a file in several writes.
var watchDebounce = 250 * time.Millisecond

// watchPosts reports post files created or written under inputPath until
// ctx is done, then closes the channel. inputPath is a post file or a
// directory; directories created later are watched too.
func watchPosts(ctx context.Context, inputPath string, log logrus.FieldLogger) (<-chan string, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("starting watcher: %w", err)
	}

	// A single file is watched through its directory so that editors
	// replacing the file on save keep being seen.
	only := ""
	root := inputPath
	if !info.IsDir() {
		only = filepath.Clean(inputPath)
		root = filepath.Dir(inputPath)
	}

	if err := addTree(watcher, root, only == ""); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	out := make(chan string)
	go func() {
		defer close(out)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("watcher error")
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				path, ok := postChange(watcher, ev, only, log)
				if !ok {
					continue
				}
				select {
				case out <- path:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// postChange filters watcher events down to written post files. New
// directories are added to the watch when the whole tree is watched.
func postChange(watcher *fsnotify.Watcher, ev fsnotify.Event, only string, log logrus.FieldLogger) (string, bool) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return "", false
	}

	if only == "" && ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := addTree(watcher, ev.Name, true); err != nil {
				log.WithError(err).WithField("dir", ev.Name).Warn("cannot watch new directory")
			}
			return "", false
		}
	}

	if only != "" && filepath.Clean(ev.Name) != only {
		return "", false
	}
	if !fileutil.IsPostFile(ev.Name) {
		return "", false
	}
	return ev.Name, true
}

// addTree watches dir, and its subdirectories when recursive is set.
func addTree(watcher *fsnotify.Watcher, dir string, recursive bool) error {
	if !recursive {
		return watcher.Add(dir)
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if !d.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// watchSession converts post files again whenever they change.
type watchSession struct {
	inputPath string
	outputDir string
	pool      Pool
	params    *conversionParams
	flags     *convertFlags
	env       *Environment
	log       logrus.FieldLogger
}

// run blocks until ctx is done. Changes arriving within watchDebounce of
// each other are converted as one batch.
func (s *watchSession) run(ctx context.Context) error {
	events, err := watchPosts(ctx, s.inputPath, s.log)
	if err != nil {
		return err
	}

	baseDir := ""
	if info, err := os.Stat(s.inputPath); err == nil && info.IsDir() {
		baseDir = s.inputPath
	}

	if !s.flags.common.quiet {
		fmt.Fprintf(s.env.Stdout, "Watching %s (Ctrl+C to stop)\n", s.inputPath)
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case path, ok := <-events:
			if !ok {
				return nil
			}
			pending[path] = struct{}{}
			timer.Reset(watchDebounce)

		case <-timer.C:
			files := make([]FileToConvert, 0, len(pending))
			for _, path := range slices.Sorted(maps.Keys(pending)) {
				files = append(files, FileToConvert{
					InputPath: path,
					OutputDir: resolveOutputDir(path, s.outputDir, baseDir),
				})
			}
			clear(pending)
			s.convert(ctx, files)
		}
	}
}

func (s *watchSession) convert(ctx context.Context, files []FileToConvert) {
	s.log.WithField("files", len(files)).Debug("change detected")

	jobs, failures := loadAllJobs(files, s.env, s.log)
	results := append(failures, convertBatch(ctx, s.pool, jobs, s.params)...)
	printResultsWithWriter(results, s.flags.common.quiet, s.flags.common.verbose, s.env, s.log)
}
