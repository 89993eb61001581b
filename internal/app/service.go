// Package service wires ingestion, storage and the statistics pipeline
// together behind the surface the HTTP API consumes.
package service

import (
	"context"
	"errors"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/jamstats/internal/adapters/dataset"
	batchqueue "github.com/okian/jamstats/internal/adapters/mq/queue"
	workerpool "github.com/okian/jamstats/internal/adapters/mq/worker"
	"github.com/okian/jamstats/internal/domain/leaderboard"
	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/internal/domain/types"
	"github.com/okian/jamstats/pkg/logger"
	"github.com/okian/jamstats/pkg/metrics"
)

const (
	defaultQueueSize = 10000
	defaultCacheSize = 64
)

// Service owns the dataset store, the ingestion queue and worker pool,
// and the memoized leaderboard cache.
type Service struct {
	mu sync.RWMutex

	store      dataset.Store
	cache      dataset.ResultCache
	batchQueue batchqueue.Queue
	workerPool *workerpool.Pool

	workerCount int
	queueSize   int
	cacheSize   int
	tourGapDays int
	seed        []model.Track

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of ingestion worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the batch queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithCacheSize sets the number of memoized leaderboards.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.cacheSize = size
		}
	}
}

// WithTourGapDays sets the tour segmentation gap applied to requests
// that do not pick their own.
func WithTourGapDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.tourGapDays = days
		}
	}
}

// WithSeedTracks preloads the dataset with an existing corpus at start.
func WithSeedTracks(tracks []model.Track) Option {
	return func(s *Service) {
		s.seed = tracks
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs an unstarted Service.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU() * 2,
		queueSize:   defaultQueueSize,
		cacheSize:   defaultCacheSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the store, cache, queue and worker pool. It is a no-op
// on an already started service.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting jamstats service...")

	s.store = dataset.NewInMemoryStore(
		dataset.WithInitialCapacity(len(s.seed)),
	)
	if len(s.seed) > 0 {
		s.store.Append(ctx, s.seed)
	}
	s.cache = dataset.NewResultCache(
		dataset.WithMaxEntries(s.cacheSize),
	)
	s.batchQueue = batchqueue.NewBuffered(
		batchqueue.WithCapacity(s.queueSize),
	)

	s.workerPool = workerpool.NewPool(s.workerCount, s.batchQueue, s.store)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "jamstats service started",
		logger.Int("workers", s.workerPool.Size()),
		logger.Int("queueSize", s.queueSize),
		logger.Int("cacheSize", s.cacheSize),
		logger.Int("seedTracks", len(s.seed)),
	)

	return nil
}

// Stop closes the queue so workers drain the backlog, then waits for
// the pool within ctx's deadline.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}

	s.logger.Info(ctx, "stopping jamstats service...")

	var err error
	if s.batchQueue != nil {
		err = s.batchQueue.Close()
	}
	if s.workerPool != nil {
		if perr := s.workerPool.Stop(ctx); perr != nil {
			err = errors.Join(err, perr)
		}
	}

	s.started = false
	if err != nil {
		s.logger.Warn(ctx, "jamstats service stopped with pending work", logger.Error(err))
		return err
	}
	s.logger.Info(ctx, "jamstats service stopped")
	return nil
}

// Enqueue submits a batch for asynchronous ingestion. It surfaces the
// queue's sentinel errors so callers can map backpressure.
func (s *Service) Enqueue(ctx context.Context, b model.Batch) error {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return ErrNotStarted
	}

	s.logger.Debug(ctx, "enqueueing batch",
		logger.String("batchID", b.ID),
		logger.Int("tracks", len(b.Tracks)),
	)

	if err := s.batchQueue.Enqueue(ctx, b); err != nil {
		metrics.RecordBatchRejected()
		s.logger.Warn(ctx, "batch rejected",
			logger.String("batchID", b.ID),
			logger.Error(err),
		)
		return err
	}
	return nil
}

// Leaderboard computes the ranked leaderboard for the given filter,
// reusing a memoized result when the dataset has not changed since it
// was computed.
func (s *Service) Leaderboard(ctx context.Context, f model.Filter) ([]types.Entry, error) {
	s.mu.RLock()
	started := s.started
	gap := s.tourGapDays
	s.mu.RUnlock()
	if !started {
		return nil, ErrNotStarted
	}

	if f.TourGapDays == 0 {
		f.TourGapDays = gap
	}

	key := cacheKey(f, s.store.Version())
	if entries, ok := s.cache.Get(ctx, key); ok {
		metrics.RecordCacheHit()
		return entries, nil
	}
	metrics.RecordCacheMiss()

	start := time.Now()
	tracks := s.store.Snapshot(ctx)
	entries := leaderboard.ComputeAggregated(tracks, f)
	latency := time.Since(start).Milliseconds()

	metrics.RecordLeaderboardRun(float64(latency))

	s.cache.Put(ctx, key, entries)

	s.logger.Debug(ctx, "leaderboard computed",
		logger.Int("tracks", len(tracks)),
		logger.Int("entries", len(entries)),
		logger.Int("latencyMs", int(latency)),
	)

	return entries, nil
}

// Song returns the single leaderboard entry for the named song under the
// given filter, or ErrSongNotFound when the song is filtered out,
// unqualified, or absent from the corpus.
func (s *Service) Song(ctx context.Context, name string, f model.Filter) (types.Entry, error) {
	// A song lookup is always a career-mode question.
	f.Aggregation = model.AggregationCareer

	entries, err := s.Leaderboard(ctx, f)
	if err != nil {
		return types.Entry{}, err
	}
	for _, e := range entries {
		if e.Song == name {
			return e, nil
		}
	}
	return types.Entry{}, ErrSongNotFound
}

// GetStats returns an operational snapshot for the /stats endpoint and
// refreshes the shape gauges along the way.
func (s *Service) GetStats() types.ServiceStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := types.ServiceStats{
		Started:     s.started,
		WorkerCount: s.workerCount,
		QueueSize:   s.queueSize,
		CacheSize:   s.cacheSize,
	}

	if s.started {
		stats.QueueLength = s.batchQueue.Len()
		stats.DatasetTracks = s.store.Len(ctx)
		stats.DatasetShows = s.store.Shows(ctx)
		stats.DatasetSongs = s.store.Songs(ctx)
		stats.CachedLeaderboards = s.cache.Size()

		metrics.UpdateQueueDepth(stats.QueueLength, s.batchQueue.Cap())
		metrics.UpdateDatasetShape(stats.DatasetTracks, stats.DatasetShows, stats.DatasetSongs)
	}

	return stats
}

// DatasetLen returns the current number of records in the dataset.
func (s *Service) DatasetLen(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return 0
	}
	return s.store.Len(ctx)
}

// cacheKey binds a filter fingerprint to a dataset version so stale
// results can never be served after an append.
func cacheKey(f model.Filter, version uint64) string {
	return f.Fingerprint() + "#" + strconv.FormatUint(version, 10)
}
