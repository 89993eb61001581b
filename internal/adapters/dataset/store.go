// Package dataset holds the ingested performance corpus in memory and a
// bounded cache of computed leaderboard results keyed by filter and
// dataset version.
package dataset

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/jamstats/internal/domain/model"
	"github.com/okian/jamstats/pkg/metrics"
)

// Store is the append-only corpus the batch pipeline reads from.
type Store interface {
	// Append adds records to the corpus and returns the new total count.
	Append(ctx context.Context, tracks []model.Track) int

	// Snapshot returns a copy of the full corpus safe for concurrent use.
	Snapshot(ctx context.Context) []model.Track

	// Len returns the current number of records.
	Len(ctx context.Context) int

	// Shows returns the number of distinct show dates.
	Shows(ctx context.Context) int

	// Songs returns the number of distinct songs.
	Songs(ctx context.Context) int

	// Version increments on every append; readers use it to detect staleness.
	Version() uint64
}

// InMemoryStore implements Store with a mutex-guarded slice plus distinct
// show and song sets for cheap counting.
type InMemoryStore struct {
	mu      sync.RWMutex
	tracks  []model.Track
	shows   map[string]struct{}
	songs   map[string]struct{}
	version atomic.Uint64
}

// NewInMemoryStore creates an empty store.
func NewInMemoryStore(opts ...StoreOption) *InMemoryStore {
	s := &InMemoryStore{
		shows: make(map[string]struct{}),
		songs: make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Append adds records to the corpus and returns the new total count.
func (s *InMemoryStore) Append(ctx context.Context, tracks []model.Track) int {
	start := time.Now()
	defer func() {
		metrics.RecordAppendLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tracks = append(s.tracks, tracks...)
	for _, t := range tracks {
		s.shows[t.ShowDate] = struct{}{}
		s.songs[t.Song] = struct{}{}
	}
	s.version.Add(1)

	total := len(s.tracks)
	metrics.RecordTracksIngested(len(tracks))
	metrics.UpdateDatasetShape(total, len(s.shows), len(s.songs))

	return total
}

// Snapshot returns a copy of the full corpus safe for concurrent use.
func (s *InMemoryStore) Snapshot(ctx context.Context) []model.Track {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Track, len(s.tracks))
	copy(out, s.tracks)
	return out
}

// Len returns the current number of records.
func (s *InMemoryStore) Len(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tracks)
}

// Shows returns the number of distinct show dates.
func (s *InMemoryStore) Shows(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.shows)
}

// Songs returns the number of distinct songs.
func (s *InMemoryStore) Songs(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.songs)
}

// Version increments on every append; readers use it to detect staleness.
func (s *InMemoryStore) Version() uint64 {
	return s.version.Load()
}
