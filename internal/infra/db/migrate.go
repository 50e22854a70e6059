package db

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = map[Dialect][]string{
	Postgres: {
		`
CREATE TABLE IF NOT EXISTS summaries (
    id            BIGSERIAL PRIMARY KEY,
    user_email    TEXT NOT NULL,
    title         TEXT,
    url           TEXT,
    original_text TEXT NOT NULL,
    summary_text  TEXT NOT NULL,
    method        VARCHAR(20) NOT NULL DEFAULT '',
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
		// ダッシュボードの一覧・集計用
		`CREATE INDEX IF NOT EXISTS idx_summaries_user_created ON summaries(user_email, created_at DESC)`,
		// 保持期間ジョブ用
		`CREATE INDEX IF NOT EXISTS idx_summaries_created_at ON summaries(created_at)`,
	},
	SQLite: {
		`
CREATE TABLE IF NOT EXISTS summaries (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    user_email    TEXT NOT NULL,
    title         TEXT,
    url           TEXT,
    original_text TEXT NOT NULL,
    summary_text  TEXT NOT NULL,
    method        TEXT NOT NULL DEFAULT '',
    created_at    TIMESTAMP NOT NULL
)`,
		`CREATE INDEX IF NOT EXISTS idx_summaries_user_created ON summaries(user_email, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_summaries_created_at ON summaries(created_at)`,
	},
}

// MigrateUp creates the summaries table and its indexes. It is idempotent.
func MigrateUp(ctx context.Context, db *sql.DB, dialect Dialect) error {
	stmts, ok := schema[dialect]
	if !ok {
		return fmt.Errorf("MigrateUp: unknown dialect %q", dialect)
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("MigrateUp: %w", err)
		}
	}
	return nil
}

// MigrateDown drops the summaries table and every stored summary with it.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`DROP INDEX IF EXISTS idx_summaries_created_at`,
		`DROP INDEX IF EXISTS idx_summaries_user_created`,
		`DROP TABLE IF EXISTS summaries`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("MigrateDown: %w", err)
		}
	}
	return nil
}
