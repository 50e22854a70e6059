package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"summary-service/internal/handler/http/requestid"
	"summary-service/internal/observability/logging"
)

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

/* ───────── Chain ───────── */

func TestChain_FirstIsOutermost(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mark("a"), mark("b"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"a", "b", "handler"}, order)
}

/* ───────── Logging ───────── */

func TestLogging_RecordsRequest(t *testing.T) {
	logger, buf := bufferLogger()
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("hello"))
	}), requestid.Middleware, Logging(logger))

	req := httptest.NewRequest(http.MethodPost, "/api/summarize", nil)
	req.Header.Set(requestid.RequestIDHeader, "req-123")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request completed", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "/api/summarize", entry["path"])
	assert.EqualValues(t, 202, entry["status"])
	assert.EqualValues(t, 5, entry["bytes"])
}

func TestLogging_ServerErrorsAtErrorLevel(t *testing.T) {
	logger, buf := bufferLogger()
	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
}

func TestContextLogger_AttachesRequestID(t *testing.T) {
	logger, buf := bufferLogger()
	h := Chain(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context()).Info("inside handler")
	}), requestid.Middleware, ContextLogger(logger))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestid.RequestIDHeader, "abc")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"request_id":"abc"`)
	assert.Contains(t, buf.String(), "inside handler")
}

/* ───────── Recover ───────── */

func TestRecover_PanicBecomes500(t *testing.T) {
	logger, buf := bufferLogger()
	h := Recover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "kaboom")
}

func TestRecover_AbortHandlerIsRepanicked(t *testing.T) {
	logger, _ := bufferLogger()
	h := Recover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	assert.Panics(t, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

/* ───────── LimitRequest ───────── */

func TestLimitRequest(t *testing.T) {
	readAll := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	h := LimitRequest(16)(readAll)

	tests := []struct {
		name     string
		req      func() *http.Request
		wantCode int
	}{
		{
			name:     "small body",
			req:      func() *http.Request { return httptest.NewRequest(http.MethodPost, "/", strings.NewReader("tiny")) },
			wantCode: http.StatusOK,
		},
		{
			name:     "body over limit",
			req:      func() *http.Request { return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 64))) },
			wantCode: http.StatusRequestEntityTooLarge,
		},
		{
			name: "authorization header too large",
			req: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/", nil)
				r.Header.Set("Authorization", "Bearer "+strings.Repeat("a", MaxAuthHeaderBytes))
				return r
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "path too long",
			req:      func() *http.Request { return httptest.NewRequest(http.MethodGet, "/"+strings.Repeat("p", MaxPathBytes), nil) },
			wantCode: http.StatusRequestURITooLong,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, tt.req())
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

/* ───────── Timeout ───────── */

func TestTimeout_SetsDeadline(t *testing.T) {
	var deadline time.Time
	var ok bool
	h := Timeout(time.Minute)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		deadline, ok = r.Context().Deadline()
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
}

func TestTimeout_ZeroDisables(t *testing.T) {
	var ctx context.Context
	h := Timeout(0)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		ctx = r.Context()
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	_, ok := ctx.Deadline()
	assert.False(t, ok)
}
