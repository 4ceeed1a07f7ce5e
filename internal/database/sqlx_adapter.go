package database

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// SQLXAdapter implements DB for sqlx.DB.
type SQLXAdapter struct {
	db      *sqlx.DB
	dialect string
}

// NewSQLXAdapter wraps a sqlx.DB whose driver speaks the given goqu dialect.
func NewSQLXAdapter(db *sqlx.DB, dialect string) (*SQLXAdapter, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}
	return &SQLXAdapter{db: db, dialect: dialect}, nil
}

// Query executes a query using the sqlx.DB and returns wrapped rows.
func (s *SQLXAdapter) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &stdRows{rows: rows.Rows}, nil
}

func (s *SQLXAdapter) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLXAdapter) Close() error {
	return s.db.Close()
}

func (s *SQLXAdapter) Dialect() string {
	return s.dialect
}
