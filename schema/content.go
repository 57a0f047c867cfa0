package schema

// ContentKind distinguishes grouped movie entries from episodic ones.
type ContentKind string

const (
	KindMovie  ContentKind = "movie"
	KindSeries ContentKind = "series"
)

// Content groups the results believed to represent the same movie or
// episode. Results keep discovery order; Qualities keeps first-seen order
// with duplicates collapsed.
type Content struct {
	Key       string      `json:"key"`
	Kind      ContentKind `json:"kind"`
	Title     string      `json:"title"`
	Year      int         `json:"year,omitempty"`
	Season    int         `json:"season,omitempty"`
	Episode   int         `json:"episode,omitempty"`
	Results   []Result    `json:"results"`
	Qualities []Quality   `json:"qualities"`
}

// HasQuality reports whether the given tier was already recorded.
func (c *Content) HasQuality(q Quality) bool {
	for _, seen := range c.Qualities {
		if seen == q {
			return true
		}
	}
	return false
}
