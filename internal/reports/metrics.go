package reports

import (
	"log-stats/internal/shared/metrics"
)

var (
	metricReportsBuiltTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "reports_built_total",
		},
		nil,
	)

	// metricReportBuildDuration includes host name and geolocation lookups of the samples.
	metricReportBuildDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "report_build_duration_seconds",
			Buckets:   metrics.LatencyBuckets,
		},
		nil,
	)
)
