package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Process-wide metrics, registered through promauto so no explicit
// initialization is needed.

var (
	// HttpRequestsTotal counts processed HTTP requests by method, path and
	// status code.
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starmap_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	// HttpRequestDuration measures server response time. Queries are pure
	// in-memory computation, so the buckets skew small; the tail covers
	// dataset reloads.
	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "starmap_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 15},
		},
		[]string{"method", "path"},
	)

	// QueriesTotal counts engine queries by kind (nearest, path, sweep,
	// resolve) and outcome (ok, invalid, not_found, unreachable, error).
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "starmap_queries_total",
			Help: "Total number of engine queries by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	// SystemsTotal tracks the size of the active dataset generation.
	SystemsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "starmap_systems_total",
			Help: "Number of systems in the active dataset",
		},
	)

	// GatesTotal tracks the directed gate count of the active generation.
	GatesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "starmap_gates_total",
			Help: "Number of directed gates in the active dataset",
		},
	)
)
