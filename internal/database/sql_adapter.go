package database

import (
	"context"
	"database/sql"
)

// SQLAdapter implements DB for sql.DB.
type SQLAdapter struct {
	db      *sql.DB
	dialect string
}

// NewSQLAdapter wraps a sql.DB whose driver speaks the given goqu dialect.
func NewSQLAdapter(db *sql.DB, dialect string) (*SQLAdapter, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}
	return &SQLAdapter{db: db, dialect: dialect}, nil
}

func (s *SQLAdapter) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &stdRows{rows: rows}, nil
}

func (s *SQLAdapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLAdapter) Close() error {
	return s.db.Close()
}

func (s *SQLAdapter) Dialect() string {
	return s.dialect
}

// stdRows wraps standard library sql.Rows to implement the Rows interface.
type stdRows struct {
	rows *sql.Rows
}

func (s *stdRows) Next() bool {
	return s.rows.Next()
}

func (s *stdRows) Scan(dest ...any) error {
	return s.rows.Scan(dest...)
}

func (s *stdRows) Columns() ([]string, error) {
	return s.rows.Columns()
}

func (s *stdRows) Err() error {
	return s.rows.Err()
}

func (s *stdRows) Close() error {
	return s.rows.Close()
}
