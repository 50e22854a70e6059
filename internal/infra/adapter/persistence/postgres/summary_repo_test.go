package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"summary-service/internal/domain/entity"
	"summary-service/internal/infra/adapter/persistence/postgres"
)

/* ──────────────────────────────── ヘルパ ──────────────────────────────── */

var summaryCols = []string{
	"id", "user_email", "title", "url", "original_text", "summary_text", "method", "created_at",
}

func summaryRow(rows *sqlmock.Rows, s *entity.Summary) *sqlmock.Rows {
	var title, url any
	if s.Title != "" {
		title = s.Title
	}
	if s.URL != "" {
		url = s.URL
	}
	return rows.AddRow(s.ID, s.UserEmail, title, url, s.OriginalText, s.SummaryText, s.Method, s.CreatedAt)
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

/* ──────────────────────────────── 1. Create ──────────────────────────────── */

func TestSummaryRepo_Create(t *testing.T) {
	db, mock := newMock(t)

	created := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	s := &entity.Summary{
		UserEmail:    "reader@example.com",
		OriginalText: "long text",
		SummaryText:  "short text",
		Method:       "centrality",
		CreatedAt:    created,
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO summaries`)).
		WithArgs("reader@example.com", sql.NullString{}, sql.NullString{},
			"long text", "short text", "centrality", created).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	repo := postgres.NewSummaryRepo(db)
	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if s.ID != 42 {
		t.Fatalf("ID = %d, want 42", s.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSummaryRepo_Create_SetsCreatedAt(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO summaries`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	s := &entity.Summary{UserEmail: "anonymous", SummaryText: "x"}
	if err := postgres.NewSummaryRepo(db).Create(context.Background(), s); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if s.CreatedAt.IsZero() {
		t.Fatal("CreatedAt not set")
	}
}

func TestSummaryRepo_Create_Error(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO summaries`).WillReturnError(errors.New("connection reset"))

	err := postgres.NewSummaryRepo(db).Create(context.Background(), &entity.Summary{UserEmail: "a@b.co", SummaryText: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
}

/* ──────────────────────────────── 2. List ──────────────────────────────── */

func TestSummaryRepo_ListByUser(t *testing.T) {
	db, mock := newMock(t)

	now := time.Date(2026, 10, 2, 12, 0, 0, 0, time.UTC)
	want := []*entity.Summary{
		{ID: 2, UserEmail: "reader@example.com", Title: "Solar", URL: "https://example.com/solar",
			OriginalText: "orig2", SummaryText: "sum2", Method: "neural", CreatedAt: now},
		{ID: 1, UserEmail: "reader@example.com",
			OriginalText: "orig1", SummaryText: "sum1", Method: "frequency", CreatedAt: now.Add(-time.Hour)},
	}
	rows := sqlmock.NewRows(summaryCols)
	for _, s := range want {
		summaryRow(rows, s)
	}
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE user_email = $1`)).
		WithArgs("reader@example.com").
		WillReturnRows(rows)

	got, err := postgres.NewSummaryRepo(db).ListByUser(context.Background(), "reader@example.com")
	if err != nil {
		t.Fatalf("ListByUser err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSummaryRepo_ListByUserPaginated(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`LIMIT $2 OFFSET $3`)).
		WithArgs("reader@example.com", 10, 20).
		WillReturnRows(sqlmock.NewRows(summaryCols)) // empty set OK

	got, err := postgres.NewSummaryRepo(db).ListByUserPaginated(context.Background(), "reader@example.com", 20, 10)
	if err != nil || len(got) != 0 {
		t.Fatalf("ListByUserPaginated err=%v len=%d", err, len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSummaryRepo_ListByUser_ScanError(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM summaries`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	if _, err := postgres.NewSummaryRepo(db).ListByUser(context.Background(), "x@example.com"); err == nil {
		t.Fatal("expected scan error")
	}
}

/* ──────────────────────────────── 3. Metrics ──────────────────────────────── */

func TestSummaryRepo_MetricsByUser(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`AVG(LENGTH(summary_text))`)).
		WithArgs("reader@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count", "avg"}).AddRow(int64(3), 120.5))
	mock.ExpectQuery(regexp.QuoteMeta(`LIMIT 1`)).
		WithArgs("reader@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"summary_text"}).AddRow("latest summary"))

	got, err := postgres.NewSummaryRepo(db).MetricsByUser(context.Background(), "reader@example.com")
	if err != nil {
		t.Fatalf("MetricsByUser err=%v", err)
	}
	want := &entity.UserMetrics{TotalSummaries: 3, AverageLength: 120.5, LastSummary: "latest summary"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSummaryRepo_MetricsByUser_NoHistory(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`FROM summaries`).
		WillReturnRows(sqlmock.NewRows([]string{"count", "avg"}).AddRow(int64(0), 0.0))

	got, err := postgres.NewSummaryRepo(db).MetricsByUser(context.Background(), "new@example.com")
	if err != nil {
		t.Fatalf("MetricsByUser err=%v", err)
	}
	if diff := cmp.Diff(&entity.UserMetrics{}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ──────────────────────────────── 4. Activity ──────────────────────────────── */

func TestSummaryRepo_ActivityByUser(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`GROUP BY day`)).
		WithArgs("reader@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"day", "count"}).
			AddRow("2026-10-01", int64(2)).
			AddRow("2026-10-03", int64(1)))

	got, err := postgres.NewSummaryRepo(db).ActivityByUser(context.Background(), "reader@example.com")
	if err != nil {
		t.Fatalf("ActivityByUser err=%v", err)
	}
	want := []entity.ActivityDay{{Date: "2026-10-01", Count: 2}, {Date: "2026-10-03", Count: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

/* ──────────────────────────────── 5. Retention ──────────────────────────────── */

func TestSummaryRepo_DeleteOlderThan(t *testing.T) {
	db, mock := newMock(t)

	cutoff := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM summaries WHERE created_at < $1`)).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 5))

	n, err := postgres.NewSummaryRepo(db).DeleteOlderThan(context.Background(), cutoff)
	if err != nil || n != 5 {
		t.Fatalf("DeleteOlderThan n=%d err=%v", n, err)
	}
}

func TestSummaryRepo_Counts(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM summaries WHERE user_email = $1`)).
		WithArgs("reader@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM summaries`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(9)))

	repo := postgres.NewSummaryRepo(db)
	byUser, err := repo.CountByUser(context.Background(), "reader@example.com")
	if err != nil || byUser != 4 {
		t.Fatalf("CountByUser n=%d err=%v", byUser, err)
	}
	total, err := repo.Count(context.Background())
	if err != nil || total != 9 {
		t.Fatalf("Count n=%d err=%v", total, err)
	}
}
