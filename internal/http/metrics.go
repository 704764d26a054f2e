package http

import (
	"log-stats/internal/shared/metrics"
)

// Labels use the chi route pattern, so /years/{year} is one series whatever the year.
var (
	metricRequestsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubHTTP,
			Name:      "requests_total",
		},
		[]string{"method", "route", "status", metrics.FieldErrorCode},
	)

	metricRequestDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubHTTP,
			Name:      "request_duration_seconds",
			Buckets:   metrics.LatencyBuckets,
		},
		[]string{"method", "route", "status"},
	)
)
