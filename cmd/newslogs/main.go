// Newslogs - News Site Access Log Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newslogs

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/tomtom215/newslogs/internal/config"
	"github.com/tomtom215/newslogs/internal/database"
	"github.com/tomtom215/newslogs/internal/logging"
	"github.com/tomtom215/newslogs/internal/metrics"
	"github.com/tomtom215/newslogs/internal/report"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// flags holds the parsed command line.
type flags struct {
	createViews bool
	configPath  string
	topArticles int
	topAuthors  int
	threshold   float64
	format      string
	showVersion bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one newslogs invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("newslogs", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	var f flags
	fs.BoolVarP(&f.createViews, "create_views", "c", false, "drop and recreate the aggregate views before reporting")
	fs.StringVar(&f.configPath, "config", "", "path to a YAML config file (default: $CONFIG_PATH or newslogs.yaml)")
	fs.IntVar(&f.topArticles, "top-articles", 3, "number of articles to report, 0 for all")
	fs.IntVar(&f.topAuthors, "top-authors", 0, "number of authors to report, 0 for all")
	fs.Float64Var(&f.threshold, "error-threshold", 0.01, "daily error fraction at which a day is reported")
	fs.StringVar(&f.format, "format", report.FormatText, "output format: text or json")
	fs.BoolVar(&f.showVersion, "version", false, "print the version and exit")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: newslogs [flags]")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Prints the most popular articles, the most popular authors and the")
		fmt.Fprintln(stderr, "days with a high error rate from a news site access log database.")
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if f.showVersion {
		fmt.Fprintf(stdout, "newslogs %s\n", version)
		return exitOK
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "newslogs: %v\n", err)
		return exitUsage
	}

	applyFlagOverrides(fs, &f, cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "newslogs: invalid flags: %v\n", err)
		return exitUsage
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
		Output: stderr,
	})

	ctx = logging.ContextWithRunID(ctx, logging.GenerateRunID())
	log := logging.Ctx(ctx)

	log.Info().
		Str("version", version).
		Str("database", cfg.Database.Path).
		Bool("create_views", f.createViews).
		Msg("Log analysis starting")

	defer writeMetrics(ctx, cfg)

	if f.createViews && !cfg.CanRebuildAggregates() {
		log.Error().Msg("Cannot rebuild aggregate views on a read-only database")
		return exitFailure
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		log.Error().Err(err).Msg("Failed to open database")
		return exitFailure
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database")
		}
	}()

	if f.createViews {
		if err := db.RebuildAggregates(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to create aggregate views")
			return exitFailure
		}
	} else if exists, err := db.AggregatesExist(ctx); err == nil && !exists {
		log.Warn().Msg("Aggregate views not found; reports will fail until --create_views is used")
	}

	runner := report.NewRunner(db, report.Options{
		TopArticles:    cfg.Report.TopArticles,
		TopAuthors:     cfg.Report.TopAuthors,
		ErrorThreshold: cfg.Report.ErrorThreshold,
	})
	summary := runner.Run(ctx)

	if err := report.Write(stdout, cfg.Report.Format, summary); err != nil {
		log.Error().Err(err).Msg("Failed to write report")
		return exitFailure
	}

	if summary.Failed() {
		if cfg.Report.Format == report.FormatJSON {
			report.WriteBanner(stderr)
		}
		log.Error().Err(summary.Err()).Msg("One or more reports failed")
		return exitFailure
	}

	entry := log.Info()
	if count, seconds, err := metrics.QueryStats(); err == nil {
		entry = entry.Uint64("queries", count).Float64("query_seconds", seconds)
	}
	entry.Msg("Log analysis complete")
	return exitOK
}

// applyFlagOverrides copies explicitly set flags over the loaded config.
func applyFlagOverrides(fs *pflag.FlagSet, f *flags, cfg *config.Config) {
	if fs.Changed("top-articles") {
		cfg.Report.TopArticles = f.topArticles
	}
	if fs.Changed("top-authors") {
		cfg.Report.TopAuthors = f.topAuthors
	}
	if fs.Changed("error-threshold") {
		cfg.Report.ErrorThreshold = f.threshold
	}
	if fs.Changed("format") {
		cfg.Report.Format = f.format
	}
}

// writeMetrics stamps the run and writes the textfile when one is configured.
func writeMetrics(ctx context.Context, cfg *config.Config) {
	metrics.MarkRunFinished(time.Now())
	if cfg.Metrics.TextfilePath == "" {
		return
	}
	if err := metrics.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Failed to write metrics textfile")
	}
}
