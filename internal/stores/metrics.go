package stores

import (
	"log-stats/internal/shared/metrics"
)

const (
	operationRead  = "read"
	operationWrite = "write"

	outcomeOK        = "ok"
	outcomeEmpty     = "empty"
	outcomeCorrupted = "corrupted"
	outcomeError     = "error"
	outcomeHit       = "hit"
	outcomeMiss      = "miss"
)

var (
	metricCacheOperationsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStore,
			Name:      "cache_operations_total",
		},
		[]string{"operation", metrics.FieldOutcome},
	)

	metricGeolocationQueriesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStore,
			Name:      "geolocation_queries_total",
		},
		[]string{metrics.FieldOutcome},
	)
)
