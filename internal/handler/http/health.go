// Package http holds the API's shared middleware together with the health
// and metrics endpoints. Route handlers live in subpackages.
package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"summary-service/internal/handler/http/respond"
	"summary-service/internal/resilience/circuitbreaker"
)

// Health states.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthResponse is the body of /health.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is the result of one health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// ActiveKeyCounter reports how many clients a rate limiter tracks.
type ActiveKeyCounter interface {
	Len() int
}

// HealthHandler serves /health. Only the database decides the overall status;
// breaker and limiter state is informational. Without a database the service
// still summarizes, so a nil DB reports degraded rather than unhealthy.
type HealthHandler struct {
	DB       *sql.DB
	Version  string
	Breakers []*circuitbreaker.CircuitBreaker
	Limiter  ActiveKeyCounter
	// Timeout bounds the database ping. Defaults to 5s.
	Timeout time.Duration
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	checks := map[string]CheckStatus{"database": h.checkDatabase(ctx)}
	if len(h.Breakers) > 0 {
		checks["circuit_breakers"] = h.checkBreakers()
	}
	if h.Limiter != nil {
		checks["rate_limiter"] = CheckStatus{
			Status:  StatusHealthy,
			Details: map[string]any{"active_keys": h.Limiter.Len()},
		}
	}

	status, code := checks["database"].Status, http.StatusOK
	if status == StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	if h.DB == nil {
		return CheckStatus{Status: StatusDegraded, Message: "not configured"}
	}
	if err := h.DB.PingContext(ctx); err != nil {
		return CheckStatus{Status: StatusUnhealthy, Message: err.Error()}
	}

	stats := h.DB.Stats()
	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}
	if stats.MaxOpenConnections > 0 {
		utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
		details["utilization_percent"] = utilization
		if utilization >= 80 {
			return CheckStatus{Status: StatusDegraded, Message: "connection pool utilization above 80%", Details: details}
		}
	}
	return CheckStatus{Status: StatusHealthy, Details: details}
}

func (h *HealthHandler) checkBreakers() CheckStatus {
	details := make(map[string]any, len(h.Breakers))
	status := StatusHealthy
	for _, cb := range h.Breakers {
		if cb == nil {
			continue
		}
		details[cb.Name()] = cb.State().String()
		if cb.IsOpen() {
			// 開いていても要約は抽出型で継続できる
			status = StatusDegraded
		}
	}
	return CheckStatus{Status: status, Details: details}
}

// APIHealth answers the lightweight liveness probe used by the frontend.
func APIHealth(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "API is running",
	})
}
