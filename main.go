package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	handler "github.com/cassiohm/mediafeed/api"
	"github.com/cassiohm/mediafeed/aggregator"
	"github.com/cassiohm/mediafeed/config"
	"github.com/cassiohm/mediafeed/logging"
	"github.com/cassiohm/mediafeed/metadata"
	"github.com/cassiohm/mediafeed/monitoring"
	"github.com/cassiohm/mediafeed/search"
)

func main() {
	logging.InitLogger()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid configuration")
	}

	metrics := monitoring.NewMetrics()
	metrics.Register()

	searcher, err := search.NewClient(search.Config{
		BaseURL:       cfg.FeedURL,
		Username:      cfg.FeedUsername,
		Password:      cfg.FeedPassword,
		Attempts:      cfg.SearchAttempts,
		RetryDelay:    cfg.SearchRetryDelay,
		MaxFileSizeGB: cfg.MaxFileSizeGB,
	}, metrics)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build search client")
	}

	meta := metadata.NewClient(cfg.TMDBBaseURL, cfg.TMDBAPIKey)
	cache := aggregator.NewCache(cfg.FreshnessWindow)
	h := handler.NewHandler(searcher, meta, cache, metrics)

	serviceMux := http.NewServeMux()
	serviceMux.HandleFunc("/", handler.HandlerIndex)
	serviceMux.HandleFunc("/healthz", handler.HandlerHealthz)
	serviceMux.HandleFunc("/streams", h.HandlerStreams)

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())

	go func() {
		logging.Info().Str("addr", cfg.MetricsAddr).Msg("Metrics listening")
		if err := http.ListenAndServe(cfg.MetricsAddr, metricsMux); err != nil {
			logging.Fatal().Err(err).Msg("Metrics server failed")
		}
	}()

	logging.Info().Str("addr", cfg.ListenAddr).Msg("Service listening")
	if err := http.ListenAndServe(cfg.ListenAddr, logging.HTTPLoggingMiddleware(serviceMux)); err != nil {
		logging.Fatal().Err(err).Msg("Service failed")
	}
}
