// Package postgres implements the repositories on PostgreSQL through the pgx
// database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"summary-service/internal/domain/entity"
	"summary-service/internal/observability/metrics"
	"summary-service/internal/repository"
)

type SummaryRepo struct {
	db *sql.DB
}

func NewSummaryRepo(db *sql.DB) repository.SummaryRepository {
	return &SummaryRepo{db: db}
}

const summaryColumns = `id, user_email, title, url, original_text, summary_text, method, created_at`

func (repo *SummaryRepo) Create(ctx context.Context, s *entity.Summary) error {
	defer observe("insert_summary", time.Now())
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	const query = `
INSERT INTO summaries (user_email, title, url, original_text, summary_text, method, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		s.UserEmail, nullString(s.Title), nullString(s.URL),
		s.OriginalText, s.SummaryText, s.Method, s.CreatedAt,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *SummaryRepo) ListByUser(ctx context.Context, email string) ([]*entity.Summary, error) {
	defer observe("list_summaries", time.Now())
	const query = `
SELECT ` + summaryColumns + `
FROM summaries
WHERE user_email = $1
ORDER BY created_at DESC, id DESC`
	rows, err := repo.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("ListByUser: %w", err)
	}
	return scanSummaries(rows, "ListByUser")
}

func (repo *SummaryRepo) ListByUserPaginated(ctx context.Context, email string, offset, limit int) ([]*entity.Summary, error) {
	defer observe("list_summaries_page", time.Now())
	const query = `
SELECT ` + summaryColumns + `
FROM summaries
WHERE user_email = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`
	rows, err := repo.db.QueryContext(ctx, query, email, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListByUserPaginated: %w", err)
	}
	return scanSummaries(rows, "ListByUserPaginated")
}

func (repo *SummaryRepo) CountByUser(ctx context.Context, email string) (int64, error) {
	const query = `SELECT COUNT(*) FROM summaries WHERE user_email = $1`
	var n int64
	if err := repo.db.QueryRowContext(ctx, query, email).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountByUser: %w", err)
	}
	return n, nil
}

func (repo *SummaryRepo) MetricsByUser(ctx context.Context, email string) (*entity.UserMetrics, error) {
	defer observe("user_metrics", time.Now())
	const aggregate = `
SELECT COUNT(*), COALESCE(AVG(LENGTH(summary_text)), 0)
FROM summaries
WHERE user_email = $1`
	var m entity.UserMetrics
	if err := repo.db.QueryRowContext(ctx, aggregate, email).Scan(&m.TotalSummaries, &m.AverageLength); err != nil {
		return nil, fmt.Errorf("MetricsByUser: aggregate: %w", err)
	}
	if m.TotalSummaries == 0 {
		return &m, nil
	}

	const latest = `
SELECT summary_text
FROM summaries
WHERE user_email = $1
ORDER BY created_at DESC, id DESC
LIMIT 1`
	err := repo.db.QueryRowContext(ctx, latest, email).Scan(&m.LastSummary)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("MetricsByUser: latest: %w", err)
	}
	return &m, nil
}

func (repo *SummaryRepo) ActivityByUser(ctx context.Context, email string) ([]entity.ActivityDay, error) {
	defer observe("user_activity", time.Now())
	const query = `
SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*)
FROM summaries
WHERE user_email = $1
GROUP BY day
ORDER BY day`
	rows, err := repo.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("ActivityByUser: %w", err)
	}
	defer func() { _ = rows.Close() }()

	days := make([]entity.ActivityDay, 0, 32)
	for rows.Next() {
		var d entity.ActivityDay
		if err := rows.Scan(&d.Date, &d.Count); err != nil {
			return nil, fmt.Errorf("ActivityByUser: Scan: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ActivityByUser: rows.Err: %w", err)
	}
	return days, nil
}

func (repo *SummaryRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	defer observe("purge_summaries", time.Now())
	const query = `DELETE FROM summaries WHERE created_at < $1`
	res, err := repo.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("DeleteOlderThan: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeleteOlderThan: RowsAffected: %w", err)
	}
	return n, nil
}

func (repo *SummaryRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM summaries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}

func scanSummaries(rows *sql.Rows, op string) ([]*entity.Summary, error) {
	defer func() { _ = rows.Close() }()

	out := make([]*entity.Summary, 0, 20)
	for rows.Next() {
		var (
			s          entity.Summary
			title, url sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.UserEmail, &title, &url,
			&s.OriginalText, &s.SummaryText, &s.Method, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		s.Title = title.String
		s.URL = url.String
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows.Err: %w", op, err)
	}
	return out, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func observe(op string, start time.Time) {
	metrics.RecordDBQuery(op, time.Since(start))
}
