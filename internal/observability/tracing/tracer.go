// Package tracing wires OpenTelemetry into the service: a tracer for
// application spans, an HTTP middleware and an SDK provider that reports
// finished spans through slog.
package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "summary-service"

var tracer = otel.Tracer(instrumentationName)

// GetTracer returns the service tracer.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}
