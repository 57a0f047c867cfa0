// Package aggregator groups classified results into logical content entries
// and caches them per derived key with a bounded freshness window.
package aggregator

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/cassiohm/mediafeed/schema"
)

// extensionSuffixRe matches extension-like tokens left at the end of a
// derived title. They are stripped before key derivation so that titles
// ending in something resembling a file extension do not split groups.
var extensionSuffixRe = regexp.MustCompile(`(?i)[ .]+(mkv|mp4|avi|ts)$`)

// KindOf derives the content kind of a result. Episodic identity requires
// both season and episode.
func KindOf(r schema.Result) schema.ContentKind {
	if r.IsSeries() {
		return schema.KindSeries
	}
	return schema.KindMovie
}

// Key derives the deterministic grouping key of a result: title plus
// zero-padded season/episode for series, title plus year for movies.
func Key(r schema.Result) string {
	title := strings.ToLower(strings.TrimSpace(extensionSuffixRe.ReplaceAllString(r.Title, "")))
	if r.IsSeries() {
		return fmt.Sprintf("%s s%02de%02d", title, r.Season, r.Episode)
	}
	if r.Year > 0 {
		return fmt.Sprintf("%s (%d)", title, r.Year)
	}
	return title
}

// Group partitions results of the requested kind into content entries, one
// per derived key. Results keep discovery order inside each entry; entries
// are never merged across separate Group calls.
func Group(results []schema.Result, kind schema.ContentKind) []schema.Content {
	var contents []schema.Content
	index := make(map[string]int)

	for _, r := range results {
		if KindOf(r) != kind {
			continue
		}
		key := Key(r)
		i, ok := index[key]
		if !ok {
			i = len(contents)
			index[key] = i
			contents = append(contents, schema.Content{
				Key:     key,
				Kind:    kind,
				Title:   r.Title,
				Year:    r.Year,
				Season:  r.Season,
				Episode: r.Episode,
			})
		}
		c := &contents[i]
		c.Results = append(c.Results, r)
		if !c.HasQuality(r.Quality) {
			c.Qualities = append(c.Qualities, r.Quality)
		}
	}

	return contents
}

// SortByQuality orders results strictly descending by quality rank. Ties
// keep their prior relative order.
func SortByQuality(results []schema.Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Quality.Rank() > results[j].Quality.Rank()
	})
}

// SortContentsByYear orders content entries descending by year. Entries
// without a year sort last.
func SortContentsByYear(contents []schema.Content) {
	sort.SliceStable(contents, func(i, j int) bool {
		return contents[i].Year > contents[j].Year
	})
}

// Streams flattens results into presentation records, sorted by quality
// rank. The input slice is not modified.
func Streams(results []schema.Result) []schema.Stream {
	sorted := make([]schema.Result, len(results))
	copy(sorted, results)
	SortByQuality(sorted)

	streams := make([]schema.Stream, 0, len(sorted))
	for _, r := range sorted {
		streams = append(streams, schema.StreamFromResult(r))
	}
	return streams
}
