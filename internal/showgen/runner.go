// Package showgen generates a synthetic concert corpus, feeds it to a
// running jamstats service over HTTP, and sanity-checks the resulting
// leaderboard. It doubles as a load driver and a seed-file producer.
package showgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/jamstats/pkg/logger"
)

// drainDeadline bounds how long the run waits for the service to chew
// through the submitted backlog.
const drainDeadline = 30 * time.Second

// Run drives a full corpus cycle: generate, submit, wait for ingestion
// to settle, then read the leaderboard back and verify it.
func Run(ctx context.Context, cfg *Config) error {
	log := logger.Get()
	stats := &Stats{StartTime: time.Now()}
	cl := newClient(cfg.BaseURL, cfg.Timeout)

	log.Info(ctx, "starting corpus run",
		logger.String("url", cfg.BaseURL),
		logger.Int("shows", cfg.NumShows),
		logger.Int("batchSize", cfg.BatchSize),
		logger.Int("workers", cfg.Workers),
		logger.Int("topN", cfg.TopN))

	if err := cl.health(ctx); err != nil {
		return fmt.Errorf("service not reachable: %w", err)
	}

	tracks, err := generateCorpus(ctx, cfg, stats)
	if err != nil {
		return fmt.Errorf("generate corpus: %w", err)
	}

	if err := submitBatches(ctx, cfg, cl, tracks, stats); err != nil {
		return fmt.Errorf("submit corpus: %w", err)
	}

	log.Info(ctx, "waiting for ingestion to settle")
	if err := cl.waitForDrain(ctx, drainDeadline); err != nil {
		return fmt.Errorf("wait for ingestion: %w", err)
	}

	entries, err := cl.leaderboard(ctx, cfg.TopN)
	if err != nil {
		return fmt.Errorf("fetch leaderboard: %w", err)
	}
	stats.LeaderboardEntries = len(entries)
	log.Info(ctx, "fetched leaderboard", logger.Int("entries", len(entries)))

	if err := crossCheckSongs(ctx, cl, entries, stats); err != nil {
		return fmt.Errorf("cross-check songs: %w", err)
	}
	if err := verifyLeaderboard(entries); err != nil {
		return fmt.Errorf("verify leaderboard: %w", err)
	}
	renderLeaderboard(os.Stdout, entries)

	if path, err := saveCorpus(cfg.OutputFile, tracks); err != nil {
		log.Warn(ctx, "corpus not saved", logger.Error(err))
	} else {
		log.Info(ctx, "corpus saved", logger.String("path", path))
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	logRunSummary(ctx, stats)

	return nil
}

// saveCorpus writes the generated records as a JSON seed file the
// service can load at startup. It returns the resolved path.
func saveCorpus(path string, tracks []TrackRecord) (string, error) {
	if len(tracks) == 0 {
		return "", errors.New("empty corpus")
	}

	if path == "" {
		path = "generated_corpus_" + time.Now().Format("20060102_150405") + ".json"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return "", err
		}
	}

	data, err := json.MarshalIndent(tracks, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// logRunSummary logs the end-of-run statistics.
func logRunSummary(ctx context.Context, stats *Stats) {
	var successRate float64
	if stats.BatchesSubmitted > 0 {
		successRate = 100 * float64(stats.BatchesAccepted) / float64(stats.BatchesSubmitted)
	}
	var tracksPerSecond float64
	if stats.Duration > 0 {
		tracksPerSecond = float64(stats.TracksGenerated) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "corpus run complete",
		logger.Int("showsGenerated", stats.ShowsGenerated),
		logger.Int("tracksGenerated", stats.TracksGenerated),
		logger.Int("batchesSubmitted", stats.BatchesSubmitted),
		logger.Int("batchesAccepted", stats.BatchesAccepted),
		logger.Int("batchesThrottled", stats.BatchesThrottled),
		logger.Int("batchesFailed", stats.BatchesFailed),
		logger.Int("tracksAccepted", stats.TracksAccepted),
		logger.Int("leaderboardEntries", stats.LeaderboardEntries),
		logger.Int("songsChecked", stats.SongsChecked),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("tracksPerSecond", tracksPerSecond))
}
