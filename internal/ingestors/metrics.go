package ingestors

import (
	"log-stats/internal/shared/metrics"
)

const (
	outcomeAccepted     = "accepted"
	outcomeMalformed    = "malformed"
	outcomeBadTimestamp = "bad_timestamp"
	outcomeSkipped      = "skipped_resumed"
)

var (
	metricLinesIngestedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "lines_ingested_total",
		},
		[]string{metrics.FieldOutcome},
	)

	metricBatchesReadTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "batches_read_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	// metricLastEntryTimestamp is the high-water mark after the latest run, in unix seconds.
	metricLastEntryTimestamp = metrics.NewGaugeVec(
		metrics.GaugeOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "last_entry_timestamp_seconds",
		},
		nil,
	)
)
