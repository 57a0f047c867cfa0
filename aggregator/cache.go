package aggregator

import (
	"sync"
	"time"

	"github.com/cassiohm/mediafeed/schema"
)

// DefaultFreshnessWindow is how long a stored entry is served without a
// fresh search.
const DefaultFreshnessWindow = 30 * time.Minute

type entry struct {
	results    []schema.Result
	insertedAt time.Time
}

// Cache stores grouped results per content key. Entries are overwritten by
// later searches under the same key and never actively evicted; stale
// entries simply stop being served. Safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	window  time.Duration
	now     func() time.Time
}

// NewCache creates a cache with the given freshness window. A non-positive
// window falls back to the default.
func NewCache(window time.Duration) *Cache {
	return NewCacheWithClock(window, time.Now)
}

// NewCacheWithClock is NewCache with an injectable clock for tests.
func NewCacheWithClock(window time.Duration, now func() time.Time) *Cache {
	if window <= 0 {
		window = DefaultFreshnessWindow
	}
	return &Cache{
		entries: make(map[string]entry),
		window:  window,
		now:     now,
	}
}

// Store records the results for a key, unconditionally replacing any prior
// entry. The slice is copied so later mutation by the caller cannot tear a
// stored entry.
func (c *Cache) Store(key string, results []schema.Result) {
	copied := make([]schema.Result, len(results))
	copy(copied, results)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{results: copied, insertedAt: c.now()}
}

// StoreContents records every grouped entry under its own key.
func (c *Cache) StoreContents(contents []schema.Content) {
	for _, content := range contents {
		c.Store(content.Key, content.Results)
	}
}

// Lookup returns the cached results for a key. Misses and entries older
// than the freshness window return false.
func (c *Cache) Lookup(key string) ([]schema.Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.insertedAt) >= c.window {
		return nil, false
	}

	results := make([]schema.Result, len(e.results))
	copy(results, e.results)
	return results, true
}

// Len reports the number of stored entries, fresh or stale.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
