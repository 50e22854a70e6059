package summary

import (
	"log/slog"
	"net/http"

	"summary-service/internal/handler/http/auth"
	"summary-service/internal/handler/http/respond"
	"summary-service/internal/observability/logging"
	sumUC "summary-service/internal/usecase/summary"
)

type SummarizeHandler struct {
	Svc    *sumUC.Service
	Logger *slog.Logger
}

// ServeHTTP 要約生成
// @Summary      要約生成
// @Description  本文、HTML、または記事 URL を受け取り抽出型要約を返します
// @Tags         summaries
// @Accept       json
// @Produce      json
// @Param        request body SummarizeRequest true "要約対象"
// @Success      200 {object} SummarizeResponse
// @Failure      400 {object} respond.ErrorBody "Invalid input"
// @Failure      413 {object} respond.ErrorBody "Content too large"
// @Failure      422 {object} respond.ErrorBody "content is required"
// @Failure      429 {object} respond.ErrorBody "Rate limit exceeded"
// @Failure      502 {object} respond.ErrorBody "Article fetch failed"
// @Failure      504 {object} respond.ErrorBody "Request timeout"
// @Router       /api/summarize [post]
func (h SummarizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	var req SummarizeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, logger, err)
		return
	}

	out, err := h.Svc.Summarize(ctx, sumUC.SummarizeInput{
		Content:   req.Content,
		UserEmail: auth.ResolveUser(ctx, req.UserEmail),
		Title:     req.Title,
		URL:       req.URL,
	})
	if err != nil {
		writeError(w, logger, err)
		return
	}

	logger.Info("summary produced",
		slog.String("method", string(out.Method)),
		slog.Int("target_sentences", out.TargetSentences),
		slog.Bool("cached", out.Cached))

	respond.JSON(w, http.StatusOK, SummarizeResponse{
		Summary:   out.Summary,
		Method:    string(out.Method),
		Sentences: out.TargetSentences,
		Title:     out.Title,
		URL:       out.URL,
	})
}
