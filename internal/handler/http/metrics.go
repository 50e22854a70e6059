package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"summary-service/internal/handler/http/pathutil"
	"summary-service/internal/handler/http/responsewriter"
	"summary-service/internal/observability/metrics"
)

// MetricsMiddleware records request count, latency and sizes per route.
// Paths unknown to routes are labelled "other".
func MetricsMiddleware(routes *pathutil.Routes) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			metrics.HTTPRequestsInFlight.Inc()
			defer metrics.HTTPRequestsInFlight.Dec()

			rec := responsewriter.Wrap(w)
			start := time.Now()
			next.ServeHTTP(rec, r)

			reqSize := 0
			if r.ContentLength > 0 {
				reqSize = int(r.ContentLength)
			}
			metrics.RecordHTTPRequest(
				r.Method,
				routes.Normalize(r.URL.Path),
				strconv.Itoa(rec.Status()),
				time.Since(start),
				reqSize,
				rec.Size(),
			)
		})
	}
}

// MetricsHandler serves the Prometheus exposition format.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
