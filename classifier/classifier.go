// Package classifier infers structured metadata (quality tier, spoken
// languages, clean title, year, season/episode) from release filenames.
// All inference is pure pattern matching over ordered rule tables; there is
// no I/O and no state.
package classifier

import "github.com/cassiohm/mediafeed/schema"

// Classification is the full set of attributes inferred from one filename.
// Season and Episode are both set or both zero; Year is zero when no
// plausible year token was found.
type Classification struct {
	Quality   schema.Quality
	Languages []string
	Title     string
	Year      int
	Season    int
	Episode   int
}

// Classify runs every inference rule set against a filename.
func Classify(filename string) Classification {
	title, year := CleanTitle(filename)
	season, episode, _ := ParseSeasonEpisode(filename)

	return Classification{
		Quality:   InferQuality(filename),
		Languages: InferLanguages(filename),
		Title:     title,
		Year:      year,
		Season:    season,
		Episode:   episode,
	}
}
