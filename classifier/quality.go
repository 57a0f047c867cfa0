package classifier

import (
	"regexp"

	"github.com/cassiohm/mediafeed/schema"
)

// qualityRule maps a filename pattern group to a quality tier. Rules are
// tested in order, highest resolution first, so an explicit high-resolution
// tag always beats a lower-resolution substring in the same name.
type qualityRule struct {
	quality schema.Quality
	pattern *regexp.Regexp
}

var qualityRules = []qualityRule{
	{schema.Quality4K, regexp.MustCompile(`(?i)2160p|\b4k\b|\buhd\b|ultra[ ._-]?hd`)},
	{schema.Quality1080p, regexp.MustCompile(`(?i)1080[pi]|\bfhd\b|full[ ._-]?hd`)},
	// \b keeps HDTV and HDRip from matching as plain HD.
	{schema.Quality720p, regexp.MustCompile(`(?i)720p|\bhd\b`)},
	{schema.Quality480p, regexp.MustCompile(`(?i)480[pi]|\bsd\b`)},
}

// InferQuality returns the quality tier of a filename. The first matching
// rule wins; no match defaults to SD.
func InferQuality(filename string) schema.Quality {
	for _, rule := range qualityRules {
		if rule.pattern.MatchString(filename) {
			return rule.quality
		}
	}
	return schema.QualitySD
}
