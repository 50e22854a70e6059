// Package observability groups the service's logging, metrics and tracing
// helpers.
//
// Subpackages:
//   - logging: slog construction and context propagation
//   - metrics: Prometheus collectors and recorders for HTTP, summarization,
//     content fetching, persistence and retention
//   - tracing: OpenTelemetry provider setup and the HTTP span middleware
//
//	logger := logging.NewLogger()
//	shutdown, err := tracing.Setup(tracing.Config{ServiceName: "summary-api", SampleRatio: 0.1}, logger)
//	...
//	metrics.RecordSummary(res, words, time.Since(start))
package observability
