package summary

import (
	"log/slog"
	"net/http"

	"summary-service/internal/handler/http/respond"
	"summary-service/internal/observability/logging"
	sumUC "summary-service/internal/usecase/summary"
)

type MetricsHandler struct {
	Svc    *sumUC.Service
	Logger *slog.Logger
}

// ServeHTTP ダッシュボード集計
// @Summary      要約の集計値
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Param        email query string false "ユーザーのメールアドレス"
// @Success      200 {object} MetricsDTO
// @Failure      400 {object} respond.ErrorBody "Invalid email"
// @Router       /api/dashboard/metrics [get]
func (h MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithRequestID(r.Context(), h.Logger)

	m, err := h.Svc.Metrics(r.Context(), requestEmail(r))
	if err != nil {
		writeError(w, logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, MetricsDTO{
		TotalSummaries: m.TotalSummaries,
		AverageLength:  m.AverageLength,
		LastSummary:    m.LastSummary,
	})
}

type HeatmapHandler struct {
	Svc    *sumUC.Service
	Logger *slog.Logger
}

// ServeHTTP 活動ヒートマップ
// @Summary      日別の要約件数
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Param        email query string false "ユーザーのメールアドレス"
// @Success      200 {array} ActivityDTO
// @Failure      400 {object} respond.ErrorBody "Invalid email"
// @Router       /api/dashboard/heatmap [get]
func (h HeatmapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithRequestID(r.Context(), h.Logger)

	days, err := h.Svc.Activity(r.Context(), requestEmail(r))
	if err != nil {
		writeError(w, logger, err)
		return
	}
	out := make([]ActivityDTO, 0, len(days))
	for _, d := range days {
		out = append(out, ActivityDTO{Date: d.Date, Count: d.Count})
	}
	respond.JSON(w, http.StatusOK, out)
}
