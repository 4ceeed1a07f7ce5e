package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"  // registers the "postgres" database/sql driver
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

// Supported values for Open's driver argument.
const (
	DriverPGX      = "pgx"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const pingTimeout = 2 * time.Second

// Open connects to the store named by driver and verifies it answers a ping.
func Open(ctx context.Context, driver, dsn string) (DB, error) {
	var (
		db  DB
		err error
	)

	switch driver {
	case DriverPGX:
		pool, poolErr := pgxpool.New(ctx, dsn)
		if poolErr != nil {
			return nil, fmt.Errorf("create pgx pool: %w", poolErr)
		}
		db, err = NewPGXAdapter(pool)

	case DriverPostgres:
		sqlDB, openErr := sql.Open(DriverPostgres, dsn)
		if openErr != nil {
			return nil, fmt.Errorf("open postgres: %w", openErr)
		}
		db, err = NewSQLAdapter(sqlDB, DialectPostgres)

	case DriverSQLite:
		sqlxDB, openErr := sqlx.Open(DriverSQLite, dsn)
		if openErr != nil {
			return nil, fmt.Errorf("open sqlite: %w", openErr)
		}
		// every new connection to ":memory:" would see an empty database
		sqlxDB.SetMaxOpenConns(1)
		db, err = NewSQLXAdapter(sqlxDB, DialectSQLite)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.Ping(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s database: %w", driver, err)
	}
	return db, nil
}
