package aggregator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cassiohm/mediafeed/schema"
)

// fakeClock advances only when told to.
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func TestCacheFreshnessWindow(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	cache := NewCacheWithClock(30*time.Minute, clock.Now)

	cache.Store("movie name (2009)", []schema.Result{{Filename: "a.mkv"}})

	clock.Advance(29 * time.Minute)
	_, ok := cache.Lookup("movie name (2009)")
	assert.True(t, ok, "entry should be fresh at T+29m")

	clock.Advance(2 * time.Minute)
	_, ok = cache.Lookup("movie name (2009)")
	assert.False(t, ok, "entry should be stale at T+31m")

	// stale entries persist in the map, they are just not served
	assert.Equal(t, 1, cache.Len())
}

func TestCacheMiss(t *testing.T) {
	cache := NewCache(30 * time.Minute)
	_, ok := cache.Lookup("never stored")
	assert.False(t, ok)
}

func TestCacheOverwrite(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	cache := NewCacheWithClock(30*time.Minute, clock.Now)

	cache.Store("key", []schema.Result{{Filename: "old.mkv"}})
	clock.Advance(29 * time.Minute)
	cache.Store("key", []schema.Result{{Filename: "new.mkv"}})
	clock.Advance(2 * time.Minute)

	results, ok := cache.Lookup("key")
	require.True(t, ok, "overwrite should reset the freshness window")
	require.Len(t, results, 1)
	assert.Equal(t, "new.mkv", results[0].Filename)
}

func TestCacheCopiesResults(t *testing.T) {
	cache := NewCache(30 * time.Minute)

	stored := []schema.Result{{Filename: "a.mkv"}}
	cache.Store("key", stored)
	stored[0].Filename = "mutated.mkv"

	results, ok := cache.Lookup("key")
	require.True(t, ok)
	assert.Equal(t, "a.mkv", results[0].Filename, "stored entry must not alias the caller's slice")
}

func TestStoreContents(t *testing.T) {
	cache := NewCache(30 * time.Minute)

	contents := Group([]schema.Result{
		{Title: "Movie One", Year: 2020, Quality: schema.Quality1080p},
		{Title: "Movie Two", Year: 2021, Quality: schema.Quality720p},
	}, schema.KindMovie)
	cache.StoreContents(contents)

	_, ok := cache.Lookup("movie one (2020)")
	assert.True(t, ok)
	_, ok = cache.Lookup("movie two (2021)")
	assert.True(t, ok)
}
