package summary

import (
	"log/slog"
	"net/http"

	"summary-service/internal/handler/http/auth"
	"summary-service/internal/handler/http/respond"
	"summary-service/internal/observability/logging"
	sumUC "summary-service/internal/usecase/summary"
)

type SaveHandler struct {
	Svc    *sumUC.Service
	Logger *slog.Logger
}

// ServeHTTP 要約保存
// @Summary      要約保存
// @Description  クライアントが生成した要約をユーザーの履歴に保存します
// @Tags         summaries
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body SaveRequest true "保存する要約"
// @Success      201 {object} SaveResponse
// @Failure      400 {object} respond.ErrorBody "Invalid input"
// @Failure      503 {object} respond.ErrorBody "History unavailable"
// @Router       /api/save-summary [post]
func (h SaveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	var req SaveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, logger, err)
		return
	}

	id, err := h.Svc.Save(ctx, sumUC.SaveInput{
		UserEmail: auth.ResolveUser(ctx, req.Email),
		Title:     req.Title,
		Summary:   req.Summary,
		URL:       req.URL,
	})
	if err != nil {
		writeError(w, logger, err)
		return
	}
	respond.JSON(w, http.StatusCreated, SaveResponse{Message: "Summary saved successfully", ID: id})
}
