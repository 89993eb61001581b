package dataset

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/okian/jamstats/internal/domain/types"
)

// ResultCache memoizes computed leaderboards. Keys embed the dataset
// version, so entries written against an older corpus are never returned;
// they simply age out through eviction.
type ResultCache interface {
	// Get returns the cached entries for key, if present.
	Get(ctx context.Context, key string) ([]types.Entry, bool)

	// Put stores entries under key, evicting the oldest entry when full.
	Put(ctx context.Context, key string, entries []types.Entry)

	Size() int64
}

// node is a single entry in the eviction list.
type node struct {
	key     string
	entries []types.Entry
	next    *node
}

// reset clears the node state for reuse.
func (n *node) reset() {
	n.key = ""
	n.entries = nil
	n.next = nil
}

// inMemoryCache implements ResultCache with a map plus a linked list for
// LIFO eviction. For bounded mode (maxEntries > 0) nodes come from a
// sync.Pool; unbounded mode (maxEntries <= 0) is a plain map.
type inMemoryCache struct {
	mu         sync.RWMutex
	results    map[string]*node
	unbounded  map[string][]types.Entry
	head       *node
	maxEntries int
	size       atomic.Int64
	nodePool   sync.Pool
}

// NewResultCache creates a result cache with configuration options.
func NewResultCache(opts ...CacheOption) ResultCache {
	c := &inMemoryCache{
		maxEntries: defaultCacheEntries,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.maxEntries > 0 {
		c.results = make(map[string]*node)
		c.nodePool = sync.Pool{
			New: func() interface{} {
				return &node{}
			},
		}
	} else {
		c.unbounded = make(map[string][]types.Entry)
	}

	return c
}

// Get returns the cached entries for key, if present.
func (c *inMemoryCache) Get(ctx context.Context, key string) ([]types.Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.maxEntries > 0 {
		if n, ok := c.results[key]; ok {
			return n.entries, true
		}
		return nil, false
	}
	entries, ok := c.unbounded[key]
	return entries, ok
}

// Put stores entries under key, evicting the oldest entry when full.
func (c *inMemoryCache) Put(ctx context.Context, key string, entries []types.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxEntries <= 0 {
		if _, exists := c.unbounded[key]; !exists {
			c.size.Add(1)
		}
		c.unbounded[key] = entries
		return
	}

	if existing, ok := c.results[key]; ok {
		existing.entries = entries
		return
	}

	if len(c.results) >= c.maxEntries {
		c.evictOldest()
	}

	n := c.nodePool.Get().(*node)
	n.key = key
	n.entries = entries
	n.next = c.head

	c.head = n
	c.results[key] = n
	c.size.Add(1)
}

// evictOldest removes the tail of the list, the least recently inserted
// entry. Must be called with c.mu held.
func (c *inMemoryCache) evictOldest() {
	if len(c.results) == 0 || c.head == nil {
		return
	}

	var prev *node
	current := c.head

	if current.next == nil {
		delete(c.results, current.key)
		current.reset()
		c.nodePool.Put(current)
		c.head = nil
		c.size.Add(-1)
		return
	}

	for current.next != nil {
		prev = current
		current = current.next
	}

	if prev != nil {
		prev.next = nil
		delete(c.results, current.key)
		current.reset()
		c.nodePool.Put(current)
		c.size.Add(-1)
	}
}

// Size returns the current number of cached leaderboards.
func (c *inMemoryCache) Size() int64 {
	return c.size.Load()
}
