package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	FieldErrorCode = "error_code"
	FieldOutcome   = "outcome"

	ValueNoError = ""

	Namespace      = "log_stats"
	SubIngestion   = "ingestion"
	SubResolution  = "resolution"
	SubGeolocation = "geolocation"
	SubAggregation = "aggregation"
	SubStore       = "store"
	SubHTTP        = "http"
)

type (
	CounterOpts   = prometheus.CounterOpts
	GaugeOpts     = prometheus.GaugeOpts
	HistogramOpts = prometheus.HistogramOpts
)

// LatencyBuckets spans 1ms to about 16s. Report requests that geolocate a sample
// wait on the API throttle, so the tail is longer than the prometheus defaults.
var LatencyBuckets = prometheus.ExponentialBuckets(0.001, 4, 8)

// Collectors built here are registered with the default registry, which Handler serves.
var (
	NewCounterVec   = promauto.NewCounterVec
	NewGaugeVec     = promauto.NewGaugeVec
	NewHistogramVec = promauto.NewHistogramVec
)

// Handler exposes the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
