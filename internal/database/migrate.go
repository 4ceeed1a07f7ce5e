package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/pressly/goose/v3"
)

// Migration commands understood by Migrate.
const (
	MigrateUp     = "up"
	MigrateDown   = "down"
	MigrateStatus = "status"
)

// OpenSQL opens a plain *sql.DB for driver, for tooling that needs database/sql (goose, seeding).
// It returns the SQL dialect the handle speaks.
func OpenSQL(ctx context.Context, driver, dsn string) (*sql.DB, string, error) {
	dialect := DialectPostgres
	switch driver {
	case DriverPGX, DriverPostgres:
	case DriverSQLite:
		dialect = DialectSQLite
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("ping %s database: %w", driver, err)
	}
	return db, dialect, nil
}

// Migrate runs a goose command against the SQL migrations in dir.
func Migrate(ctx context.Context, db *sql.DB, dialect, dir, command string) error {
	goose.SetBaseFS(nil)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	switch command {
	case MigrateUp:
		return goose.UpContext(ctx, db, dir)
	case MigrateDown:
		return goose.DownContext(ctx, db, dir)
	case MigrateStatus:
		return goose.StatusContext(ctx, db, dir)
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
}
