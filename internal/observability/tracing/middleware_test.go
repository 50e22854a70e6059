package tracing

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"summary-service/internal/handler/http/requestid"
)

// useRecorder installs an in-memory provider and rebinds the package tracer
// to it.
func useRecorder(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := tracer
	tracer = tp.Tracer(instrumentationName)
	t.Cleanup(func() {
		tracer = prev
		_ = tp.Shutdown(context.Background())
	})
	return exporter
}

func TestMiddleware_RecordsServerSpan(t *testing.T) {
	exporter := useRecorder(t)

	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/summarize", nil))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "POST /api/summarize", spans[0].Name)
	assert.Len(t, rr.Header().Get("X-Trace-Id"), 32)

	attrs := map[string]any{}
	for _, kv := range spans[0].Attributes {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	assert.Equal(t, int64(http.StatusCreated), attrs["http.status_code"])
	assert.Equal(t, "/api/summarize", attrs["http.path"])
}

func TestMiddleware_CarriesRequestIDAndSize(t *testing.T) {
	exporter := useRecorder(t)

	h := requestid.Middleware(Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("hello"))
	})))
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(requestid.RequestIDHeader, "req-123")
	h.ServeHTTP(httptest.NewRecorder(), req)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	attrs := map[string]any{}
	for _, kv := range spans[0].Attributes {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	assert.Equal(t, "req-123", attrs["request.id"])
	assert.Equal(t, int64(5), attrs["http.response_size"])
}

func TestMiddleware_ServerErrorMarksSpan(t *testing.T) {
	exporter := useRecorder(t)

	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/dashboard/metrics", nil))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
}

func TestLogExporter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(NewLogExporter(logger)))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := tp.Tracer("test").Start(context.Background(), "summarize.Engine.Summarize")
	span.End()

	assert.Contains(t, buf.String(), `"msg":"span finished"`)
	assert.Contains(t, buf.String(), `"span":"summarize.Engine.Summarize"`)
}

func TestSetup(t *testing.T) {
	t.Cleanup(func() { otel.SetTracerProvider(sdktrace.NewTracerProvider()) })

	shutdown, err := Setup(Config{ServiceName: "summary-service", ServiceVersion: "test", SampleRatio: 2}, slog.Default())
	require.NoError(t, err)
	assert.IsType(t, &sdktrace.TracerProvider{}, otel.GetTracerProvider())
	require.NoError(t, shutdown(context.Background()))
}
