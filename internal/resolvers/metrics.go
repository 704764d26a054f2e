package resolvers

import (
	"log-stats/internal/shared/metrics"
)

const (
	lookupForward = "forward"
	lookupReverse = "reverse"

	outcomeResolved = "resolved"
	outcomeFailed   = "failed"
	outcomeMemo     = "memo"
)

var (
	metricDNSLookupsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubResolution,
			Name:      "dns_lookups_total",
		},
		[]string{"lookup", metrics.FieldOutcome},
	)
)
