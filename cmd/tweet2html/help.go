package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-tweet2html/internal/assets"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tweet2html <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert post files to HTML (and PDF)")
	fmt.Fprintln(w, "  doctor     Check system configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'tweet2html help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tweet2html convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert posts to HTML with linked hashtags, mentions, URLs and media.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Post file (.json, .yaml, .yml), directory, or - for stdin")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: next to input)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --watch               Convert again when post files change")
	fmt.Fprintln(w, "      --env-file <path>     Load TWEET2HTML_* variables from a .env file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Post:")
	fmt.Fprintln(w, "      --handle <s>          Author screen name (\"\" = from post user)")
	fmt.Fprintln(w, "      --link-host <url>     Site for hashtag, mention and status links")
	fmt.Fprintln(w, "      --date-format <s>     Date: \"relative\", a preset, or tokens")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w, "      --strict              Fail on overlapping entities instead of dropping them")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "      --page                Write a standalone HTML page instead of a fragment")
	fmt.Fprintln(w, "      --title <s>           Page title (\"\" = @handle)")
	fmt.Fprintf(w, "      --style <s>           Style name or CSS file (%s)\n", strings.Join(assets.Styles(), ", "))
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --pdf                 Also write a PDF snapshot (implies --page)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  TWEET2HTML_CONFIG, TWEET2HTML_STYLE, TWEET2HTML_LINK_HOST,")
	fmt.Fprintln(w, "  TWEET2HTML_DATE_FORMAT, TWEET2HTML_OUTPUT_DIR, TWEET2HTML_TIMEOUT,")
	fmt.Fprintln(w, "  TWEET2HTML_WORKERS, TWEET2HTML_CONTAINER")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tweet2html doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check system configuration for PDF generation.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Output results as JSON")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: tweet2html version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: tweet2html help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
