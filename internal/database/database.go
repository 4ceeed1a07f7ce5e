package database

import (
	"context"
	"errors"
)

const (
	// DialectPostgres is the goqu dialect name used for PostgreSQL handles.
	DialectPostgres = "postgres"
	// DialectSQLite is the goqu dialect name used for SQLite handles.
	DialectSQLite = "sqlite3"
)

var (
	// ErrNilDatabaseConnection is returned when an adapter is built from a nil handle.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")
	// ErrUnsupportedDriver is returned by Open for an unknown driver name.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// Executor runs one parameterized query and returns its rows.
type Executor interface {
	Query(ctx context.Context, query string, args ...any) (Rows, error)
}

// Rows is the cursor over a query result.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Columns() ([]string, error)
	Err() error
	Close() error
}

// DB is an Executor whose lifecycle is owned by the process.
type DB interface {
	Executor
	Ping(ctx context.Context) error
	Close() error
	Dialect() string
}
