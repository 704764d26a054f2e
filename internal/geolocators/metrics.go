package geolocators

import (
	"log-stats/internal/shared/metrics"
)

const (
	outcomeAPIOK    = "ok"
	outcomeAPIError = "error"

	sourceDB      = "db"
	sourceAPI     = "api"
	sourceInvalid = "invalid_ip"
)

var (
	metricAPICallsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubGeolocation,
			Name:      "api_calls_total",
		},
		[]string{metrics.FieldOutcome},
	)

	metricLookupsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubGeolocation,
			Name:      "lookups_total",
		},
		[]string{"source"},
	)
)
