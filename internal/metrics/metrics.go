// Package metrics defines the Prometheus collectors for attrio.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "attrio_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attrio_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HistoryCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "attrio_history_cache_hits_total",
			Help: "History page cache hits",
		},
	)

	HistoryCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "attrio_history_cache_misses_total",
			Help: "History page cache misses",
		},
	)

	ValidationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "attrio_validation_failures_total",
			Help: "Default-value and item validation failures by attribute type",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal,
		HistoryCacheHits, HistoryCacheMisses,
		ValidationFailures,
	)
}
