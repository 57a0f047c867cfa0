package schema

import (
	"fmt"
	"strings"
)

// Stream is the presentation record served for one Result.
type Stream struct {
	Name    string  `json:"name"`
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Quality Quality `json:"quality"`
}

// StreamFromResult flattens a result into a display record. The title line
// carries the filename plus size and language tags when known.
func StreamFromResult(r Result) Stream {
	title := r.Filename
	if r.Size != "" {
		title = fmt.Sprintf("%s\n%s", title, r.Size)
	}
	if len(r.Languages) > 0 {
		title = fmt.Sprintf("%s\n%s", title, strings.Join(r.Languages, " / "))
	}
	return Stream{
		Name:    fmt.Sprintf("Mediafeed %s", r.Quality),
		Title:   title,
		URL:     r.Locator,
		Quality: r.Quality,
	}
}
