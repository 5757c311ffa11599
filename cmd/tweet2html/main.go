package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the subcommand in args[1] and returns the exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch cmd := args[1]; cmd {
	case "convert":
		return runConvertCmd(args[2:], env)
	case "doctor":
		return runDoctorCmd(args[2:], env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "tweet2html %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(args[2:], env)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "%v: %s\n\n", ErrUnknownCommand, cmd)
		printUsage(env.Stderr)
		return exitCodeFor(ErrUnknownCommand)
	}
}

// runConvertCmd parses convert flags, runs the batch and maps the outcome
// to an exit code.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return ExitSuccess
		}
		return ExitUsage
	}

	log := newLogger(env.Stderr, flags.common.verbose, flags.common.quiet)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env, log); err != nil {
		fmt.Fprintln(env.Stderr, formatError(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// newLogger creates the CLI logger. Warnings show by default so dropped
// entities are visible; verbose adds debug logs, quiet keeps errors only.
func newLogger(w io.Writer, verbose, quiet bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	switch {
	case quiet:
		log.SetLevel(logrus.ErrorLevel)
	case verbose:
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// notifyContext returns a context that is canceled when a shutdown signal
// is received. Call stop() to release resources.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}
