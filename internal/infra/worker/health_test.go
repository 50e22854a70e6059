package worker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, healthResponse) {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	var body healthResponse
	if rr.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	}
	return rr, body
}

func TestHealthServer_Liveness(t *testing.T) {
	srv := NewHealthServer(":0", discardLogger())
	rr, body := get(t, srv.Handler(), "/health")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", body.Status)
}

func TestHealthServer_Readiness(t *testing.T) {
	srv := NewHealthServer(":0", discardLogger())
	h := srv.Handler()

	rr, body := get(t, h, "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "not ready", body.Status)

	srv.SetReady(true)
	assert.True(t, srv.IsReady())
	rr, body = get(t, h, "/health/ready")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ready", body.Status)
}

func TestHealthServer_MethodNotAllowed(t *testing.T) {
	srv := NewHealthServer(":0", discardLogger())
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHealthServer_ServesMetrics(t *testing.T) {
	NewMetrics().RecordJobRun("success")
	srv := NewHealthServer(":0", discardLogger())
	rr, _ := get(t, srv.Handler(), "/metrics")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "retention_job_runs_total")
}

func TestHealthServer_StartStopsOnCancel(t *testing.T) {
	srv := NewHealthServer("127.0.0.1:0", discardLogger())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(6 * time.Second):
		t.Fatal("health server did not stop")
	}
}
