package showgen

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/jamstats/pkg/logger"
)

// progressInterval paces the submission progress log lines.
const progressInterval = time.Second

// chunkTracks splits the corpus into submission batches.
func chunkTracks(tracks []TrackRecord, size int) [][]TrackRecord {
	if size <= 0 {
		size = len(tracks)
	}
	var batches [][]TrackRecord
	for start := 0; start < len(tracks); start += size {
		end := min(start+size, len(tracks))
		batches = append(batches, tracks[start:end])
	}
	return batches
}

// submitBatches drives POST /tracks with a small worker pool and folds
// the outcomes into stats.
func submitBatches(ctx context.Context, cfg *Config, cl *client, tracks []TrackRecord, stats *Stats) error {
	batches := chunkTracks(tracks, cfg.BatchSize)
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	log := logger.Get()
	log.Info(ctx, "submitting corpus",
		logger.Int("tracks", len(tracks)),
		logger.Int("batches", len(batches)),
		logger.Int("workers", workers))

	var accepted, throttled, failed, ackedTracks atomic.Int64

	work := make(chan []TrackRecord)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for batch := range work {
				switch res := cl.submit(ctx, batch); res.outcome {
				case outcomeAccepted:
					accepted.Add(1)
					ackedTracks.Add(int64(res.tracks))
				case outcomeThrottled:
					throttled.Add(1)
				default:
					failed.Add(1)
				}
			}
		}()
	}

	// One reporter owns the progress lines so the counter reads stay
	// consistent.
	reportStop := make(chan struct{})
	var reportWG sync.WaitGroup
	reportWG.Add(1)
	go func() {
		defer reportWG.Done()
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()
		for {
			select {
			case <-reportStop:
				return
			case <-ticker.C:
				done := accepted.Load() + throttled.Load() + failed.Load()
				log.Info(ctx, "submission progress",
					logger.Int("submitted", int(done)),
					logger.Int("total", len(batches)),
					logger.Int("throttled", int(throttled.Load())),
					logger.Int("failed", int(failed.Load())))
			}
		}
	}()

feed:
	for _, batch := range batches {
		select {
		case <-ctx.Done():
			break feed
		case work <- batch:
		}
	}
	close(work)
	wg.Wait()
	close(reportStop)
	reportWG.Wait()

	stats.BatchesSubmitted = int(accepted.Load() + throttled.Load() + failed.Load())
	stats.BatchesAccepted = int(accepted.Load())
	stats.BatchesThrottled = int(throttled.Load())
	stats.BatchesFailed = int(failed.Load())
	stats.TracksAccepted = int(ackedTracks.Load())

	log.Info(ctx, "submission complete",
		logger.Int("accepted", stats.BatchesAccepted),
		logger.Int("throttled", stats.BatchesThrottled),
		logger.Int("failed", stats.BatchesFailed),
		logger.Int("tracksAccepted", stats.TracksAccepted))

	return ctx.Err()
}
