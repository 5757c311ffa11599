package main

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-tweet2html"
	"github.com/alnah/go-tweet2html/internal/config"
)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment, log logrus.FieldLogger) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	if err := loadEnvFile(flags.common.envFile); err != nil {
		return err
	}
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(log)

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}

	// CLI flags > env vars > config file > defaults
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, cfg)
	if err != nil {
		return err
	}

	if len(positionalArgs) == 0 {
		return fmt.Errorf("%w: pass a post file, a directory, or - for stdin", ErrNoInput)
	}
	inputPath := positionalArgs[0]
	if flags.watch && inputPath == stdinPath {
		return ErrWatchStdin
	}

	files, err := discoverFiles(inputPath, cfg.Output.DefaultDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 && !flags.watch {
		return fmt.Errorf("%w: no post files found in %s", ErrNoInput, inputPath)
	}

	jobs, loadFailures := loadAllJobs(files, env, log)

	opts := buildConverterOptions(cfg, timeout, flags.post.strict, env, log)

	// Surface option errors (bad style, link host) once instead of per post
	check, err := tweet2html.NewConverter(opts...)
	if err != nil {
		return err
	}
	_ = check.Close()

	poolSize := tweet2html.ResolvePoolSize(cfg.Output.Workers)
	log.WithFields(logrus.Fields{
		"posts":      len(jobs),
		"workers":    poolSize,
		"gomaxprocs": runtime.GOMAXPROCS(0),
		"pdf":        cfg.PDF.Enabled,
	}).Debug("starting conversion")

	pool := newConverterPool(poolSize, opts...)
	defer func() {
		if err := pool.Close(); err != nil {
			log.WithError(err).Warn("closing converters")
		}
	}()

	params := buildConversionParams(flags, cfg)
	results := append(loadFailures, convertBatch(ctx, pool, jobs, params)...)

	failedCount := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env, log)
	if flags.watch {
		session := &watchSession{
			inputPath: inputPath,
			outputDir: cfg.Output.DefaultDir,
			pool:      pool,
			params:    params,
			flags:     flags,
			env:       env,
			log:       log,
		}
		return session.run(ctx)
	}
	if failedCount > 0 {
		return fmt.Errorf("%d conversion(s) failed: %w", failedCount, firstError(results))
	}

	return nil
}

// loadConfig loads the config named by the --config flag, then by
// TWEET2HTML_CONFIG. Without either, defaults are used.
func loadConfig(flagValue string, env *envConfig) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = env.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, &configError{name: name, err: err}
	}
	return cfg, nil
}

// loadAllJobs decodes every discovered file. Files that cannot be read or
// parsed become failed results so the rest of the batch still runs.
func loadAllJobs(files []FileToConvert, env *Environment, log logrus.FieldLogger) ([]postJob, []ConversionResult) {
	var jobs []postJob
	var failures []ConversionResult
	for _, f := range files {
		fileJobs, err := loadJobs(f, env.Stdin)
		if err != nil {
			failures = append(failures, ConversionResult{InputPath: f.InputPath, Err: err})
			continue
		}
		log.WithFields(logrus.Fields{"input": f.InputPath, "posts": len(fileJobs)}).Debug("loaded post file")
		jobs = append(jobs, fileJobs...)
	}
	return jobs, failures
}
