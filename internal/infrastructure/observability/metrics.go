package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks HTTP latency by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// SearchRequestsTotal counts venue searches by outcome (results, empty, error).
	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "venue_search_requests_total",
			Help: "Total number of venue searches by outcome",
		},
		[]string{"outcome"},
	)

	// SearchCacheTotal counts search cache lookups and writes by result.
	SearchCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "venue_search_cache_operations_total",
			Help: "Search cache operations by operation and result",
		},
		[]string{"operation", "result"},
	)

	// DBQueryDuration tracks datastore query latency by operation.
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation"},
	)

	// CircuitBreakerState reports breaker state (0 closed, 1 open, 2 half-open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"name"},
	)
)

// RecordRequest records one served HTTP request.
func RecordRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordSearch records a search outcome.
func RecordSearch(outcome string) {
	SearchRequestsTotal.WithLabelValues(outcome).Inc()
}

// RecordCacheHit records a search cache hit
func RecordCacheHit() {
	SearchCacheTotal.WithLabelValues("get", "hit").Inc()
}

// RecordCacheMiss records a search cache miss
func RecordCacheMiss() {
	SearchCacheTotal.WithLabelValues("get", "miss").Inc()
}

// RecordCacheError records a failed cache operation ("get", "set", "decode").
func RecordCacheError(operation string) {
	SearchCacheTotal.WithLabelValues(operation, "error").Inc()
}

// RecordCacheWrite records a successful cache write
func RecordCacheWrite() {
	SearchCacheTotal.WithLabelValues("set", "ok").Inc()
}

// RecordDBQuery records a database operation's duration
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
