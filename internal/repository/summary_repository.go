package repository

import (
	"context"
	"time"

	"summary-service/internal/domain/entity"
)

// SummaryRepository stores produced summaries per user.
type SummaryRepository interface {
	// Create inserts s and sets its ID. A zero CreatedAt is set to now (UTC).
	Create(ctx context.Context, s *entity.Summary) error
	// ListByUser returns every summary of email, newest first.
	ListByUser(ctx context.Context, email string) ([]*entity.Summary, error)
	// ListByUserPaginated returns one page of ListByUser.
	ListByUserPaginated(ctx context.Context, email string, offset, limit int) ([]*entity.Summary, error)
	CountByUser(ctx context.Context, email string) (int64, error)
	// MetricsByUser aggregates the user's history. A user without summaries
	// gets zero metrics, not an error.
	MetricsByUser(ctx context.Context, email string) (*entity.UserMetrics, error)
	// ActivityByUser returns per-day counts in ascending date order.
	ActivityByUser(ctx context.Context, email string) ([]entity.ActivityDay, error)
	// DeleteOlderThan removes summaries created before cutoff.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}
