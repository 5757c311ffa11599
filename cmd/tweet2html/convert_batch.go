package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-tweet2html"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// ErrWriteOutput is returned when an output file cannot be written.
var ErrWriteOutput = errors.New("failed to write output file")

// CLIConverter is the interface for the conversion engine.
type CLIConverter interface {
	Convert(ctx context.Context, input tweet2html.Input) (*tweet2html.Result, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*tweet2html.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (CLIConverter, error)
	Release(CLIConverter)
	Size() int
}

// ConversionResult holds the outcome of a single post conversion.
type ConversionResult struct {
	InputPath   string
	OutputPaths []string
	Dropped     int
	Skipped     int
	Err         error
	Duration    time.Duration
}

// convertBatch converts posts concurrently using the converter pool.
func convertBatch(ctx context.Context, pool Pool, jobs []postJob, params *conversionParams) []ConversionResult {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(jobs))

	results := make([]ConversionResult, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				// Converter creation failed, mark the jobs this worker takes as failed
				for idx := range queue {
					results[idx] = ConversionResult{InputPath: jobs[idx].InputPath, Err: err}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range queue {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{InputPath: jobs[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = convertPost(ctx, conv, jobs[idx], params)
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// convertPost converts a single post and writes its outputs.
func convertPost(ctx context.Context, conv CLIConverter, job postJob, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{InputPath: job.InputPath}
	finish := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	res, err := conv.Convert(ctx, tweet2html.Input{
		Post:       job.Post,
		Handle:     params.handle,
		Title:      params.title,
		Standalone: params.page,
		PDF:        params.pdf,
	})
	if err != nil {
		return finish(err)
	}
	result.Dropped = len(res.Dropped)
	result.Skipped = res.Skipped

	if err := os.MkdirAll(filepath.Dir(job.OutputBase), dirPermissions); err != nil {
		return finish(fmt.Errorf("%w: creating output directory: %v", ErrWriteOutput, err))
	}

	html := []byte(res.Fragment())
	if params.page || params.pdf {
		html = res.HTML
	}
	htmlPath := job.OutputBase + ".html"
	// #nosec G306 -- HTML files are meant to be readable
	if err := os.WriteFile(htmlPath, html, filePermissions); err != nil {
		return finish(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}
	result.OutputPaths = append(result.OutputPaths, htmlPath)

	if params.pdf {
		pdfPath := job.OutputBase + ".pdf"
		// #nosec G306 -- PDFs are meant to be readable
		if err := os.WriteFile(pdfPath, res.PDF, filePermissions); err != nil {
			return finish(fmt.Errorf("%w: %v", ErrWriteOutput, err))
		}
		result.OutputPaths = append(result.OutputPaths, pdfPath)
	}

	return finish(nil)
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResultsWithWriter outputs conversion results using the provided writers.
// Posts converted with dropped or skipped entities are logged as warnings.
// Returns the number of failed conversions.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment, log logrus.FieldLogger) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if r.Dropped > 0 || r.Skipped > 0 {
			log.WithFields(logrus.Fields{
				"input":   r.InputPath,
				"dropped": r.Dropped,
				"skipped": r.Skipped,
			}).Warn("some entities were not linked")
		}

		if quiet {
			continue
		}

		for _, out := range r.OutputPaths {
			if verbose {
				fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, out, r.Duration.Round(time.Millisecond))
			} else {
				fmt.Fprintf(env.Stdout, "Created %s\n", out)
			}
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}

// firstError returns the first failed conversion's error, or nil.
func firstError(results []ConversionResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
