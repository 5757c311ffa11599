package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	envFile string
	quiet   bool
	verbose bool
}

// pageFlags holds standalone page flags.
type pageFlags struct {
	enabled   bool   // write a complete HTML page instead of a fragment
	style     string // CSS style name or path
	assetPath string // override asset directory
	title     string // page title
}

// postFlags holds flags that shape the rendered post.
type postFlags struct {
	handle     string
	linkHost   string
	dateFormat string
	strict     bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	output  string
	workers int
	timeout string
	pdf     bool
	watch   bool
	page    pageFlags
	post    postFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.envFile, "env-file", "", "load TWEET2HTML_* variables from a .env file")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addPageFlags adds standalone page flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.BoolVar(&f.enabled, "page", false, "write a standalone HTML page")
	fs.StringVar(&f.style, "style", "", "page CSS style name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.title, "title", "", "page title (\"\" = @handle)")
}

// addPostFlags adds rendering flags to a FlagSet.
func addPostFlags(fs *flag.FlagSet, f *postFlags) {
	fs.StringVar(&f.handle, "handle", "", "author screen name (\"\" = from post user)")
	fs.StringVar(&f.linkHost, "link-host", "", "site for hashtag, mention and status links")
	fs.StringVar(&f.dateFormat, "date-format", "", "date: relative, a preset, or tokens")
	fs.BoolVar(&f.strict, "strict", false, "fail on overlapping entities instead of dropping them")
}

// buildConvertFlagSet creates a FlagSet with all convert command flags bound to f.
func buildConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.pdf, "pdf", false, "also write a PDF snapshot (implies --page)")
	fs.BoolVar(&f.watch, "watch", false, "convert again when post files change")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addPostFlags(fs, &f.post)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
// Parse errors and usage go to stderr.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := buildConvertFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printConvertUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
