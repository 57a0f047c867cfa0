// Package search queries the remote file index and turns its feed response
// into classified results.
package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/hbollon/go-edlib"

	"github.com/cassiohm/mediafeed/feed"
	"github.com/cassiohm/mediafeed/logging"
	"github.com/cassiohm/mediafeed/monitoring"
	"github.com/cassiohm/mediafeed/schema"
	"github.com/cassiohm/mediafeed/utils"
)

const (
	DefaultAttempts   = 3
	DefaultRetryDelay = time.Second

	sourceLabel = "feed"
)

// Config carries the construction parameters of a Client. URL and
// credentials are mandatory; the pipeline cannot run without them.
type Config struct {
	BaseURL       string
	Username      string
	Password      string
	Attempts      int
	RetryDelay    time.Duration
	MaxFileSizeGB float64
	Timeout       time.Duration
}

// Client performs authenticated searches against the remote index.
type Client struct {
	baseURL       string
	username      string
	password      string
	httpClient    *http.Client
	attempts      uint
	retryDelay    time.Duration
	maxFileSizeGB float64
	metrics       *monitoring.Metrics
}

// NewClient validates the configuration and builds a search client.
func NewClient(cfg Config, metrics *monitoring.Metrics) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("search: feed URL is required")
	}
	if cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("search: feed credentials are required")
	}
	if cfg.Attempts <= 0 {
		cfg.Attempts = DefaultAttempts
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.MaxFileSizeGB <= 0 {
		cfg.MaxFileSizeGB = feed.DefaultMaxFileSizeGB
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		username: cfg.Username,
		password: cfg.Password,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				ForceAttemptHTTP2:   true,
			},
		},
		attempts:      uint(cfg.Attempts),
		retryDelay:    cfg.RetryDelay,
		maxFileSizeGB: cfg.MaxFileSizeGB,
		metrics:       metrics,
	}, nil
}

// Search returns every parseable result for a term. It never fails to its
// caller: any error degrades to an empty list and a logged warning.
func (c *Client) Search(ctx context.Context, term string) []schema.Result {
	results, err := c.search(ctx, term)
	if err != nil {
		logging.Warn().Err(err).Str("term", term).Msg("Search degraded to empty result list")
		if c.metrics != nil {
			c.metrics.SearchErrors.WithLabelValues(sourceLabel).Inc()
		}
		return []schema.Result{}
	}
	return results
}

func (c *Client) search(ctx context.Context, term string) ([]schema.Result, error) {
	start := time.Now()
	if c.metrics != nil {
		defer func() {
			c.metrics.SearchDuration.WithLabelValues(sourceLabel).Observe(time.Since(start).Seconds())
		}()
		c.metrics.SearchRequests.WithLabelValues(sourceLabel).Inc()
	}

	body, err := c.fetch(ctx, term)
	if err != nil {
		return nil, err
	}

	results := make([]schema.Result, 0)
	for _, fragment := range feed.SplitItems(body) {
		if result, ok := feed.ParseItem(fragment, c.maxFileSizeGB); ok {
			results = append(results, *result)
		}
	}
	if c.metrics != nil {
		c.metrics.ResultsParsed.WithLabelValues(sourceLabel).Add(float64(len(results)))
	}

	results = scoreSimilarity(results, term)

	logging.Debug().Str("term", term).Int("results", len(results)).Msg("Feed search parsed")
	return results, nil
}

// fetch runs the feed GET with a bounded, fixed-delay retry. Each attempt
// is independent; cancelling the context stops the delay promptly.
func (c *Client) fetch(ctx context.Context, term string) (string, error) {
	searchURL := c.buildURL(term)

	var body string
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
			if err != nil {
				return fmt.Errorf("failed to create request for term %q: %w", term, err)
			}
			req.SetBasicAuth(c.username, c.password)

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return fmt.Errorf("request failed: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
			}

			b, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("failed to read response body: %w", err)
			}
			body = string(b)
			return nil
		},
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return "", fmt.Errorf("feed search for %q: %w", term, err)
	}
	return body, nil
}

// buildURL encodes the term plus the fixed service filters: video-only
// category, newest-first ordering, one full page.
func (c *Client) buildURL(term string) string {
	params := url.Values{}
	params.Set("search", term)
	params.Set("category", "video")
	params.Set("sort", "created_at")
	params.Set("order", "desc")
	params.Set("limit", "100")
	return fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())
}

// scoreSimilarity attaches a query similarity score to each result and, on
// large noisy sets, drops the ones with no overlap at all. Discovery order
// is preserved.
func scoreSimilarity(results []schema.Result, term string) []schema.Result {
	termLower := strings.ToLower(term)
	for i, r := range results {
		titleLower := strings.ReplaceAll(strings.ToLower(r.Title), ".", " ")
		results[i].Similarity = edlib.JaccardSimilarity(titleLower, termLower, 2)
	}

	if len(results) > 20 && term != "" {
		results = utils.Filter(results, func(r schema.Result) bool {
			return r.Similarity > 0
		})
	}
	return results
}
