package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReportsComputedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reports_computed_total",
		Help: "Total number of completed aggregation runs",
	})

	ReportsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reports_failed_total",
		Help: "Total number of failed aggregation runs",
	}, []string{"reason"})

	ReportWarningsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "report_warnings_total",
		Help: "Total number of records and line items skipped during normalization",
	})

	ReportComputeLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "report_compute_latency_seconds",
		Help:    "Latency of full aggregation runs",
		Buckets: prometheus.DefBuckets,
	})

	ReportCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "report_cache_hits_total",
		Help: "Total number of seller reports served from the cache",
	})

	ReportCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "report_cache_misses_total",
		Help: "Total number of seller reports recomputed on cache miss",
	})

	ReportEventsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "report_events_published_total",
		Help: "Total number of report events published to the broker",
	}, []string{"type"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
