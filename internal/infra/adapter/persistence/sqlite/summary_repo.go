// Package sqlite implements the repositories on SQLite (modernc.org/sqlite),
// used for single-node deployments and local development.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"summary-service/internal/domain/entity"
	"summary-service/internal/observability/metrics"
	"summary-service/internal/repository"
)

// SummaryRepo implements repository.SummaryRepository on SQLite.
// Timestamps are written in UTC so that text comparison orders them.
type SummaryRepo struct{ db *sql.DB }

// NewSummaryRepo creates a SQLite-backed summary repository.
func NewSummaryRepo(db *sql.DB) repository.SummaryRepository {
	return &SummaryRepo{db: db}
}

const summaryColumns = `id, user_email, title, url, original_text, summary_text, method, created_at`

// Create inserts s and sets its ID.
func (repo *SummaryRepo) Create(ctx context.Context, s *entity.Summary) error {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert_summary", time.Since(start)) }()

	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	s.CreatedAt = s.CreatedAt.UTC()

	const query = `
INSERT INTO summaries (user_email, title, url, original_text, summary_text, method, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`
	res, err := repo.db.ExecContext(ctx, query,
		s.UserEmail, nullString(s.Title), nullString(s.URL),
		s.OriginalText, s.SummaryText, s.Method, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("Create: ExecContext: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("Create: LastInsertId: %w", err)
	}
	s.ID = id
	return nil
}

// ListByUser returns the user's summaries, newest first.
func (repo *SummaryRepo) ListByUser(ctx context.Context, email string) ([]*entity.Summary, error) {
	const query = `
SELECT ` + summaryColumns + `
FROM summaries
WHERE user_email = ?
ORDER BY created_at DESC, id DESC
`
	rows, err := repo.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("ListByUser: QueryContext: %w", err)
	}
	return scanSummaries(rows, "ListByUser")
}

// ListByUserPaginated returns one page of the user's summaries.
func (repo *SummaryRepo) ListByUserPaginated(ctx context.Context, email string, offset, limit int) ([]*entity.Summary, error) {
	const query = `
SELECT ` + summaryColumns + `
FROM summaries
WHERE user_email = ?
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?
`
	rows, err := repo.db.QueryContext(ctx, query, email, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ListByUserPaginated: QueryContext: %w", err)
	}
	return scanSummaries(rows, "ListByUserPaginated")
}

// CountByUser counts the user's summaries.
func (repo *SummaryRepo) CountByUser(ctx context.Context, email string) (int64, error) {
	var n int64
	err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM summaries WHERE user_email = ?`, email).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("CountByUser: QueryRowContext: %w", err)
	}
	return n, nil
}

// MetricsByUser aggregates the user's history.
func (repo *SummaryRepo) MetricsByUser(ctx context.Context, email string) (*entity.UserMetrics, error) {
	const aggregate = `
SELECT COUNT(*), COALESCE(AVG(LENGTH(summary_text)), 0)
FROM summaries
WHERE user_email = ?
`
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
WHERE user_email = ?
ORDER BY created_at DESC, id DESC
LIMIT 1
`
	err := repo.db.QueryRowContext(ctx, latest, email).Scan(&m.LastSummary)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("MetricsByUser: latest: %w", err)
	}
	return &m, nil
}

// ActivityByUser returns per-day counts. The day is the date prefix of the
// stored UTC timestamp.
func (repo *SummaryRepo) ActivityByUser(ctx context.Context, email string) ([]entity.ActivityDay, error) {
	const query = `
SELECT substr(created_at, 1, 10) AS day, COUNT(*)
FROM summaries
WHERE user_email = ?
GROUP BY day
ORDER BY day
`
	rows, err := repo.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("ActivityByUser: QueryContext: %w", err)
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

// DeleteOlderThan removes summaries created before cutoff.
func (repo *SummaryRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM summaries WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("DeleteOlderThan: ExecContext: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeleteOlderThan: RowsAffected: %w", err)
	}
	return n, nil
}

// Count counts every stored summary.
func (repo *SummaryRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM summaries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("Count: QueryRowContext: %w", err)
	}
	return n, nil
}

func scanSummaries(rows *sql.Rows, op string) ([]*entity.Summary, error) {
	defer func() { _ = rows.Close() }()

	// パフォーマンス最適化: 事前割り当て
	out := make([]*entity.Summary, 0, 20)
	for rows.Next() {
		var (
			s          entity.Summary
			title, url sql.NullString
		)
		err := rows.Scan(&s.ID, &s.UserEmail, &title, &url,
			&s.OriginalText, &s.SummaryText, &s.Method, &s.CreatedAt)
		if err != nil {
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
