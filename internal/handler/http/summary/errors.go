package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"summary-service/internal/domain/entity"
	"summary-service/internal/handler/http/respond"
	sumUC "summary-service/internal/usecase/summary"
)

var (
	errInvalidBody  = errors.New("invalid JSON body")
	errBodyTooLarge = errors.New("request body too large")
)

// decodeJSON reads one JSON object from r's body.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errBodyTooLarge
		}
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: body is empty", errInvalidBody)
		}
		return errInvalidBody
	}
	return nil
}

// writeError maps service errors to status codes. Messages for 5xx codes
// are fixed strings so no internal detail leaks.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, errBodyTooLarge), errors.Is(err, sumUC.ErrContentTooLarge):
		respond.Error(w, http.StatusRequestEntityTooLarge, err)
	case errors.Is(err, errInvalidBody):
		respond.Error(w, http.StatusBadRequest, err)
	case errors.Is(err, sumUC.ErrEmptyContent):
		respond.Error(w, http.StatusUnprocessableEntity, sumUC.ErrEmptyContent)
	case errors.Is(err, entity.ErrInvalidInput):
		if ve, ok := entity.AsValidationError(err); ok {
			respond.Error(w, http.StatusBadRequest, ve)
			return
		}
		respond.SafeError(w, http.StatusBadRequest, err)
	case errors.Is(err, sumUC.ErrInvalidURL), errors.Is(err, sumUC.ErrPrivateIP):
		respond.Error(w, http.StatusUnprocessableEntity, errors.New("url is invalid or not allowed"))
	case errors.Is(err, sumUC.ErrTooManyRedirects), errors.Is(err, sumUC.ErrReadabilityFailed):
		respond.Error(w, http.StatusUnprocessableEntity, errors.New("article content cannot be extracted"))
	case errors.Is(err, sumUC.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		logger.Warn("request timed out", slog.Any("error", err))
		respond.Error(w, http.StatusGatewayTimeout, errors.New("request timeout"))
	case errors.Is(err, sumUC.ErrFetchFailed):
		logger.Warn("article fetch failed", slog.Any("error", err))
		respond.Error(w, http.StatusBadGateway, sumUC.ErrFetchFailed)
	case errors.Is(err, sumUC.ErrStoreUnavailable):
		respond.Error(w, http.StatusServiceUnavailable, errors.New("summary history is unavailable"))
	default:
		logger.Error("request failed", slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}
