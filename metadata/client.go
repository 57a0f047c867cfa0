// Package metadata resolves an external title identifier into a title and
// year through the TMDB find endpoint. It is consumed only to build search
// terms; every failure here is recoverable by falling back to an
// identifier-derived term.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.themoviedb.org/3"

// Metadata is the narrow record this pipeline needs from the collaborator.
type Metadata struct {
	Title string
	Year  int
	Type  string
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a metadata client. An empty baseURL selects the TMDB
// production API.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type findResponse struct {
	MovieResults []struct {
		Title       string `json:"title"`
		ReleaseDate string `json:"release_date"`
	} `json:"movie_results"`
	TVResults []struct {
		Name         string `json:"name"`
		FirstAirDate string `json:"first_air_date"`
	} `json:"tv_results"`
}

// GetMetadata looks up a title/year for an external id. A nil Metadata with
// nil error means the id is unknown to the collaborator.
func (c *Client) GetMetadata(ctx context.Context, id, mediaType string) (*Metadata, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("external_source", "imdb_id")
	findURL := fmt.Sprintf("%s/find/%s?%s", c.baseURL, url.PathEscape(id), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, findURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("metadata request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var found findResponse
	if err := json.NewDecoder(resp.Body).Decode(&found); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if mediaType == "series" {
		if len(found.TVResults) > 0 {
			tv := found.TVResults[0]
			return &Metadata{Title: tv.Name, Year: yearOf(tv.FirstAirDate), Type: "series"}, nil
		}
		return nil, nil
	}
	if len(found.MovieResults) > 0 {
		movie := found.MovieResults[0]
		return &Metadata{Title: movie.Title, Year: yearOf(movie.ReleaseDate), Type: "movie"}, nil
	}
	return nil, nil
}

// SearchTerm builds the feed query for a title. When the collaborator gave
// nothing, the raw identifier is used instead so resolution still proceeds.
func SearchTerm(meta *Metadata, id string, season, episode int) string {
	term := id
	if meta != nil && meta.Title != "" {
		term = meta.Title
	}
	if season > 0 && episode > 0 {
		term = fmt.Sprintf("%s S%02dE%02d", term, season, episode)
	}
	return term
}

func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, _ := strconv.Atoi(date[:4])
	return year
}
