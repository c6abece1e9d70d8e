// Package repositories bootstraps the local client database: it opens the
// sqlite file and applies the embedded goose migrations.
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/andresMonthn/OpticSave-sub000/internal/client/migrations"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies all pending schema upgrades. Upgrades are additive
// only; applying them to an already-current database is a no-op.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if necessary) the local database at dsn and
// brings its schema up to date.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open local database: %w", err)
	}

	// modernc sqlite allows a single writer; serializing through one
	// connection avoids SQLITE_BUSY under concurrent facade calls.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}
