// Package metrics exposes the application's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FetchPages counts pages retrieved from the FiscalData API
	FetchPages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ustpanel_fetch_pages_total",
		Help: "Number of auction data pages fetched from the FiscalData API.",
	})

	// FetchDuration observes full auction fetch latency
	FetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ustpanel_fetch_duration_seconds",
		Help:    "Duration of complete auction data fetches.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
	})

	// BuildDuration observes panel pipeline latency
	BuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ustpanel_build_duration_seconds",
		Help:    "Duration of panel builds.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
	})

	// RowsBuilt records the size of the most recent panel
	RowsBuilt = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ustpanel_rows_built",
		Help: "Row count of the most recently built panel.",
	})

	// CacheHits counts cache hits on panel requests
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ustpanel_cache_hits_total",
		Help: "Number of runs served from the auction cache.",
	})

	// CacheMisses counts cache misses on panel requests
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ustpanel_cache_misses_total",
		Help: "Number of runs that required a fresh auction fetch.",
	})

	// HTTPRequests counts served API requests by route and status
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ustpanel_http_requests_total",
		Help: "HTTP requests served, by route and status code.",
	}, []string{"route", "status"})
)
