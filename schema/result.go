package schema

// Quality is the coarse resolution tier inferred from a filename.
type Quality string

const (
	Quality4K    Quality = "4K"
	Quality1080p Quality = "1080p"
	Quality720p  Quality = "720p"
	Quality480p  Quality = "480p"
	QualitySD    Quality = "SD"
)

// Rank returns the sort weight of a quality tier. Higher is better.
func (q Quality) Rank() int {
	switch q {
	case Quality4K:
		return 5
	case Quality1080p:
		return 4
	case Quality720p:
		return 3
	case Quality480p:
		return 2
	default:
		return 1
	}
}

// Result is one parsed and classified candidate file from the feed.
// Season and Episode are either both set or both zero.
type Result struct {
	Filename   string   `json:"filename"`
	Locator    string   `json:"locator"`
	Size       string   `json:"size"`
	SizeGB     float64  `json:"size_gb"`
	Quality    Quality  `json:"quality"`
	Languages  []string `json:"languages,omitempty"`
	Title      string   `json:"title"`
	Year       int      `json:"year,omitempty"`
	Season     int      `json:"season,omitempty"`
	Episode    int      `json:"episode,omitempty"`
	Similarity float32  `json:"similarity,omitempty"`
}

// IsSeries reports whether the result carries episodic identity.
func (r Result) IsSeries() bool {
	return r.Season > 0 && r.Episode > 0
}
