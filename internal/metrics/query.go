package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Query compilation and find outcomes.
const (
	OutcomeOK           = "ok"
	OutcomeEmpty        = "empty"
	OutcomeInvalid      = "invalid"
	OutcomeFilterError  = "filter_error"
	OutcomeBackendError = "backend_error"
	OutcomeError        = "error"
)

// Find Prometheus metrics.
var (
	QueryCompileTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_compile_total",
			Help:      "Total number of query compilations",
		},
		[]string{"outcome"},
	)

	QueryCompileDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_compile_duration_seconds",
			Help:      "Query compilation duration in seconds",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)

	FindTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "find_total",
			Help:      "Total number of find requests",
		},
		[]string{"outcome"},
	)

	FindDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "find_duration_seconds",
			Help:      "Find request duration in seconds, by free-text search mode",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"search_mode"}, // "none" / "simple" / "prefix"
	)
)

var registerQueryOnce sync.Once

// RegisterQueryMetrics registers the find metrics. Safe to call more than once.
func RegisterQueryMetrics() {
	registerQueryOnce.Do(func() {
		prometheus.MustRegister(QueryCompileTotal)
		prometheus.MustRegister(QueryCompileDuration)
		prometheus.MustRegister(FindTotal)
		prometheus.MustRegister(FindDuration)
	})
}
