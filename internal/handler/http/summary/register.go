package summary

import (
	"log/slog"
	"net/http"

	"summary-service/internal/common/pagination"
	sumUC "summary-service/internal/usecase/summary"
)

// Routes lists every path Register installs, for metric labels.
var Routes = []string{
	"/api/summarize",
	"/api/save-summary",
	"/api/summarized-articles",
	"/api/dashboard/metrics",
	"/api/dashboard/summaries",
	"/api/dashboard/heatmap",
}

// Register installs the summary routes on mux. When limit is non-nil it
// guards the summarize endpoint, the only one that runs the engine.
func Register(mux *http.ServeMux, svc *sumUC.Service, paginationCfg pagination.Config, limit func(http.Handler) http.Handler, logger *slog.Logger) {
	var summarize http.Handler = SummarizeHandler{Svc: svc, Logger: logger}
	if limit != nil {
		summarize = limit(summarize)
	}
	mux.Handle("POST /api/summarize", summarize)
	mux.Handle("POST /api/save-summary", SaveHandler{Svc: svc, Logger: logger})

	mux.Handle("GET /api/summarized-articles", ListHandler{Svc: svc, Logger: logger})
	mux.Handle("GET /api/dashboard/summaries", PaginatedListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET /api/dashboard/metrics", MetricsHandler{Svc: svc, Logger: logger})
	mux.Handle("GET /api/dashboard/heatmap", HeatmapHandler{Svc: svc, Logger: logger})
}
