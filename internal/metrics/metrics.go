package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Values of the outcome label on DBQueriesTotal.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// PathUnmatched labels requests that no route pattern matched.
const PathUnmatched = "unmatched"

var (
	// HTTPRequestsTotal counts requests by method, route pattern and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookquery_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration observes request latency by route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bookquery_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})

	// DBQueriesTotal counts executed queries by outcome.
	DBQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookquery_db_queries_total",
		Help: "Total number of database queries by outcome",
	}, []string{"outcome"})

	// DBQueryDuration observes the time until a query returned rows or failed.
	DBQueryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bookquery_db_query_duration_seconds",
		Help:    "Time until the database returned the first result for a query",
		Buckets: prometheus.DefBuckets,
	})
)
