// Package metrics holds the service's Prometheus collectors.
//
// Every collector is registered with the default registry through promauto
// and exposed on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests being served",
		},
	)

	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter",
		},
		[]string{"path"},
	)
)

// Summarization metrics
var (
	// SummariesProducedTotal counts summaries by the method that produced them.
	SummariesProducedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summaries_produced_total",
			Help: "Summaries produced, by method (neural, centrality, frequency, head, verbatim)",
		},
		[]string{"method"},
	)

	// SummarizerFallbacksTotal counts failed steps of the fallback chain.
	SummarizerFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summarizer_fallbacks_total",
			Help: "Fallback chain steps that failed, by method and reason",
		},
		[]string{"method", "reason"},
	)

	SummarizationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "summarization_duration_seconds",
			Help:    "Time spent producing a summary, cache hits excluded",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
	)

	DocumentWords = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "summarization_document_words",
			Help:    "Word count of documents submitted for summarization",
			Buckets: prometheus.ExponentialBuckets(50, 2, 10),
		},
	)

	SummaryCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summary_cache_lookups_total",
			Help: "Summary cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)
)

// Content fetch metrics
var (
	ContentFetchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_fetch_attempts_total",
			Help: "Article fetches for URL submissions, by result",
		},
		[]string{"result"},
	)

	ContentFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "content_fetch_duration_seconds",
			Help:    "Time spent fetching and extracting article content",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
	)
)

// Persistence metrics
var (
	SummariesPersistedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summaries_persisted_total",
			Help: "Summary records written to the store, by result",
		},
		[]string{"result"},
	)

	SummariesStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "summaries_stored",
			Help: "Summary records currently in the store",
		},
	)

	SummariesPurgedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "summaries_purged_total",
			Help: "Summary records removed by the retention job",
		},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation"},
	)
)

// Resilience metrics
var (
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Circuit breaker state changes, by target state",
		},
		[]string{"name", "to"},
	)
)

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}
