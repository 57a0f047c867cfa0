package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	SearchDuration *prometheus.HistogramVec
	SearchErrors   *prometheus.CounterVec
	SearchRequests *prometheus.CounterVec
	ResultsParsed  *prometheus.CounterVec
	CacheHits      *prometheus.CounterVec
	CacheMisses    *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		SearchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "search_duration_seconds",
			Help:    "Duration of feed search requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 30},
		}, []string{"source"}),
		SearchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "search_errors_total",
			Help: "Number of feed searches that exhausted their retries",
		}, []string{"source"}),
		SearchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "search_requests_total",
			Help: "Number of feed search requests",
		}, []string{"source"}),
		ResultsParsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "results_parsed_total",
			Help: "Number of feed items parsed into results",
		}, []string{"source"}),
		CacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Number of cache hits",
		}, []string{"cache"}),
		CacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Number of cache misses",
		}, []string{"cache"}),
	}
}

func (m *Metrics) Register() {
	prometheus.MustRegister(m.SearchDuration)
	prometheus.MustRegister(m.SearchErrors)
	prometheus.MustRegister(m.SearchRequests)
	prometheus.MustRegister(m.ResultsParsed)
	prometheus.MustRegister(m.CacheHits)
	prometheus.MustRegister(m.CacheMisses)
}
