package summary

import (
	"log/slog"
	"net/http"
	"time"

	"summary-service/internal/common/pagination"
	"summary-service/internal/handler/http/auth"
	"summary-service/internal/handler/http/respond"
	"summary-service/internal/observability/logging"
	sumUC "summary-service/internal/usecase/summary"
)

// requestEmail resolves whose history a GET request reads.
func requestEmail(r *http.Request) string {
	return auth.ResolveUser(r.Context(), r.URL.Query().Get("email"))
}

type ListHandler struct {
	Svc    *sumUC.Service
	Logger *slog.Logger
}

// ServeHTTP 要約履歴一覧
// @Summary      要約履歴一覧
// @Description  ユーザーの要約を新しい順にすべて返します
// @Tags         summaries
// @Security     BearerAuth
// @Produce      json
// @Param        email query string false "ユーザーのメールアドレス（トークンがない場合）"
// @Success      200 {array} DTO
// @Failure      400 {object} respond.ErrorBody "Invalid email"
// @Router       /api/summarized-articles [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithRequestID(r.Context(), h.Logger)

	list, err := h.Svc.ListByUser(r.Context(), requestEmail(r))
	if err != nil {
		writeError(w, logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, toDTOs(list))
}

type PaginatedListHandler struct {
	Svc           *sumUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP ダッシュボード用要約一覧
// @Summary      要約一覧（ページネーション対応）
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Param        email  query string false "ユーザーのメールアドレス"
// @Param        page   query int    false "ページ番号 (1-based)" default(1) minimum(1)
// @Param        limit  query int    false "1ページあたりの件数" default(20) minimum(1) maximum(100)
// @Success      200 {object} pagination.Response[DTO]
// @Failure      400 {object} respond.ErrorBody "Invalid query parameters"
// @Router       /api/dashboard/summaries [get]
func (h PaginatedListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	logger := logging.WithRequestID(ctx, h.Logger)

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("invalid pagination parameters", slog.String("error", err.Error()))
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.Svc.ListByUserPaginated(ctx, requestEmail(r), params)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	dtos := toDTOs(result.Data)
	logger.Info("paginated summaries",
		slog.Int("page", params.Page),
		slog.Int("limit", params.Limit),
		slog.Int("returned_count", len(dtos)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	respond.JSON(w, http.StatusOK, pagination.NewResponse(dtos, result.Pagination))
}
