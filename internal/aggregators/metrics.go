package aggregators

import (
	"log-stats/internal/shared/metrics"
)

const outcomeOK = "ok"

var (
	// metricResolutionPassTotal counts resolution passes by outcome: "ok" or an error code.
	metricResolutionPassTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "resolution_pass_total",
		},
		[]string{metrics.FieldOutcome},
	)

	// metricMergedRecordsTotal counts records folded into another record with the same resolved key.
	metricMergedRecordsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "merged_records_total",
		},
		[]string{},
	)
)
