// Package persistence picks the summary repository implementation for a
// database dialect.
package persistence

import (
	"database/sql"
	"fmt"

	"summary-service/internal/infra/adapter/persistence/postgres"
	"summary-service/internal/infra/adapter/persistence/sqlite"
	"summary-service/internal/infra/db"
	"summary-service/internal/repository"
)

// NewSummaryRepo returns the repository for dialect.
func NewSummaryRepo(conn *sql.DB, dialect db.Dialect) (repository.SummaryRepository, error) {
	switch dialect {
	case db.Postgres:
		return postgres.NewSummaryRepo(conn), nil
	case db.SQLite:
		return sqlite.NewSummaryRepo(conn), nil
	default:
		return nil, fmt.Errorf("no summary repository for dialect %q", dialect)
	}
}
