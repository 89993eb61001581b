package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/okian/jamstats/internal/showgen"
	"github.com/okian/jamstats/pkg/logger"
)

// Default run shape.
const (
	defaultShows     = 500
	defaultBatchSize = 100
	defaultTopN      = 25
	defaultTimeout   = 30 * time.Second
	runDeadline      = 10 * time.Minute
)

func main() {
	cfg := parseFlags()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("show-gen: init logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if cfg.Verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), runDeadline)
	defer cancel()

	if err := showgen.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("show-gen: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func parseFlags() *showgen.Config {
	cfg := &showgen.Config{}

	flag.StringVar(&cfg.BaseURL, "url", "http://localhost:9080", "base URL of the jamstats service")
	flag.IntVar(&cfg.NumShows, "shows", defaultShows, "number of shows to generate and submit")
	flag.IntVar(&cfg.BatchSize, "batch", defaultBatchSize, "tracks per ingestion batch")
	flag.IntVar(&cfg.TopN, "top", defaultTopN, "leaderboard entries to fetch")
	flag.IntVar(&cfg.Workers, "workers", runtime.NumCPU()*2, "concurrent submission workers")
	flag.DurationVar(&cfg.Timeout, "timeout", defaultTimeout, "per-request HTTP timeout")
	flag.StringVar(&cfg.OutputFile, "output", "", "corpus output file (default generated_corpus_TIMESTAMP.json)")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "debug-level logging")

	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `show-gen generates a synthetic concert corpus, submits it to a running
jamstats service, and renders the resulting leaderboard.

The saved corpus doubles as a seed file for the service's seed_path.

Usage:
  show-gen [options]

Options:
`)
		flag.PrintDefaults()
	}

	flag.Parse()
	return cfg
}
