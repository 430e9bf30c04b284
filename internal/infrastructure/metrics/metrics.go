package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namestorm service metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "namestorm",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "namestorm",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)

	// Availability lookup counters
	LookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "namestorm",
			Subsystem: "api",
			Name:      "domain_lookups_total",
			Help:      "Total domain availability lookups by resulting status",
		},
		[]string{"status"},
	)

	// Availability lookup duration
	LookupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "namestorm",
			Subsystem: "api",
			Name:      "domain_lookup_duration_seconds",
			Help:      "Domain availability lookup duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 3, 5},
		},
		[]string{"status"},
	)

	// Brainstorm loop counters
	BrainstormRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "namestorm",
			Subsystem: "api",
			Name:      "brainstorm_runs_total",
			Help:      "Total brainstorm loop invocations",
		},
	)

	// Rounds spent per brainstorm run
	BrainstormRounds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "namestorm",
			Subsystem: "api",
			Name:      "brainstorm_rounds",
			Help:      "Model round-trips used per brainstorm run",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21, 34, 55, 90},
		},
	)

	// Domains found per brainstorm run
	BrainstormDomainsFound = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "namestorm",
			Subsystem: "api",
			Name:      "brainstorm_domains_found",
			Help:      "Available domains collected per brainstorm run",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 20, 50},
		},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordLookup records one domain availability lookup
func RecordLookup(status string, durationSec float64) {
	LookupsTotal.WithLabelValues(status).Inc()
	LookupDuration.WithLabelValues(status).Observe(durationSec)
}

// RecordBrainstormRun records one completed brainstorm loop invocation
func RecordBrainstormRun(rounds, found int) {
	BrainstormRunsTotal.Inc()
	BrainstormRounds.Observe(float64(rounds))
	BrainstormDomainsFound.Observe(float64(found))
}
