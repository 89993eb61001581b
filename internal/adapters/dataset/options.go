package dataset

import (
	"github.com/okian/jamstats/internal/domain/model"
)

// Default configuration constants.
const (
	defaultCacheEntries = 64
)

// StoreOption applies a configuration option to the InMemoryStore.
type StoreOption func(*InMemoryStore)

// WithInitialCapacity preallocates the backing slice for the expected
// corpus size.
func WithInitialCapacity(n int) StoreOption {
	return func(s *InMemoryStore) {
		if n > 0 {
			s.tracks = make([]model.Track, 0, n)
		}
	}
}

// CacheOption applies a configuration option to the result cache.
type CacheOption func(*inMemoryCache)

// WithMaxEntries sets the maximum number of cached leaderboards.
// Zero or negative means unbounded.
func WithMaxEntries(n int) CacheOption {
	return func(c *inMemoryCache) {
		c.maxEntries = n
	}
}
