// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	str2duration "github.com/xhit/go-str2duration/v2"

	"github.com/cassiohm/mediafeed/aggregator"
	"github.com/cassiohm/mediafeed/feed"
	"github.com/cassiohm/mediafeed/search"
)

type Config struct {
	FeedURL      string
	FeedUsername string
	FeedPassword string

	TMDBBaseURL string
	TMDBAPIKey  string

	ListenAddr  string
	MetricsAddr string

	MaxFileSizeGB    float64
	FreshnessWindow  time.Duration
	SearchAttempts   int
	SearchRetryDelay time.Duration
}

// Load reads the environment (plus an optional .env file) into a Config.
// Feed URL and credentials are mandatory: the pipeline cannot run without
// them, so their absence is a hard setup failure.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		FeedURL:          os.Getenv("FEED_URL"),
		FeedUsername:     os.Getenv("FEED_USERNAME"),
		FeedPassword:     os.Getenv("FEED_PASSWORD"),
		TMDBBaseURL:      os.Getenv("TMDB_URL"),
		TMDBAPIKey:       os.Getenv("TMDB_API_KEY"),
		ListenAddr:       envOr("LISTEN_ADDR", ":7006"),
		MetricsAddr:      envOr("METRICS_ADDR", ":8081"),
		MaxFileSizeGB:    feed.DefaultMaxFileSizeGB,
		FreshnessWindow:  aggregator.DefaultFreshnessWindow,
		SearchAttempts:   search.DefaultAttempts,
		SearchRetryDelay: search.DefaultRetryDelay,
	}

	if cfg.FeedURL == "" {
		return nil, fmt.Errorf("config: FEED_URL is required")
	}
	if cfg.FeedUsername == "" || cfg.FeedPassword == "" {
		return nil, fmt.Errorf("config: FEED_USERNAME and FEED_PASSWORD are required")
	}

	if v := os.Getenv("MAX_FILE_SIZE_GB"); v != "" {
		size, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("config: invalid MAX_FILE_SIZE_GB %q: %w", v, err)
		}
		cfg.MaxFileSizeGB = size
	}

	if v := os.Getenv("CACHE_FRESHNESS"); v != "" {
		window, err := str2duration.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("config: invalid CACHE_FRESHNESS %q: %w", v, err)
		}
		cfg.FreshnessWindow = window
	}

	if v := os.Getenv("SEARCH_ATTEMPTS"); v != "" {
		attempts, err := strconv.Atoi(v)
		if err != nil || attempts <= 0 {
			return nil, fmt.Errorf("config: invalid SEARCH_ATTEMPTS %q", v)
		}
		cfg.SearchAttempts = attempts
	}

	if v := os.Getenv("SEARCH_RETRY_DELAY"); v != "" {
		delay, err := str2duration.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("config: invalid SEARCH_RETRY_DELAY %q: %w", v, err)
		}
		cfg.SearchRetryDelay = delay
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
