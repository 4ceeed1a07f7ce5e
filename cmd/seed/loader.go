package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"bookquery/internal/database"
)

// insertBatchSize keeps multi-row inserts under SQLite's bound-variable limit.
const insertBatchSize = 500

type loader interface {
	Reset(ctx context.Context) error
	Load(ctx context.Context, authors []seedAuthor, books []seedBook) error
	CountBooks(ctx context.Context) (int64, error)
	Close()
}

func newLoader(ctx context.Context, driver, dsn string) (loader, error) {
	switch driver {
	case database.DriverPGX:
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return &copyLoader{pool: pool}, nil
	case database.DriverPostgres, database.DriverSQLite:
		db, err := sqlx.Open(driver, dsn)
		if err != nil {
			return nil, err
		}
		if driver == database.DriverSQLite {
			db.SetMaxOpenConns(1)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &sqlxLoader{db: db}, nil
	default:
		return nil, fmt.Errorf("%w: %q", database.ErrUnsupportedDriver, driver)
	}
}

// copyLoader bulk-loads through the Postgres COPY protocol.
type copyLoader struct {
	pool *pgxpool.Pool
}

func (l *copyLoader) Reset(ctx context.Context) error {
	_, err := l.pool.Exec(ctx, "TRUNCATE books, authors")
	return err
}

func (l *copyLoader) Load(ctx context.Context, authors []seedAuthor, books []seedBook) error {
	return pgx.BeginFunc(ctx, l.pool, func(tx pgx.Tx) error {
		n, err := tx.CopyFrom(ctx, pgx.Identifier{"authors"}, []string{"id", "name"},
			pgx.CopyFromSlice(len(authors), func(i int) ([]any, error) {
				return []any{authors[i].ID, authors[i].Name}, nil
			}))
		if err != nil {
			return fmt.Errorf("copy authors: %w", err)
		}
		if int(n) != len(authors) {
			return fmt.Errorf("copy authors: wrote %d of %d rows", n, len(authors))
		}

		n, err = tx.CopyFrom(ctx, pgx.Identifier{"books"}, []string{"id", "title", "author_id"},
			pgx.CopyFromSlice(len(books), func(i int) ([]any, error) {
				return []any{books[i].ID, books[i].Title, books[i].AuthorID}, nil
			}))
		if err != nil {
			return fmt.Errorf("copy books: %w", err)
		}
		if int(n) != len(books) {
			return fmt.Errorf("copy books: wrote %d of %d rows", n, len(books))
		}
		return nil
	})
}

func (l *copyLoader) CountBooks(ctx context.Context) (int64, error) {
	var total int64
	err := l.pool.QueryRow(ctx, "SELECT COUNT(*) FROM books").Scan(&total)
	return total, err
}

func (l *copyLoader) Close() {
	l.pool.Close()
}

// sqlxLoader inserts in batches of named multi-row inserts.
type sqlxLoader struct {
	db *sqlx.DB
}

func (l *sqlxLoader) Reset(ctx context.Context) error {
	for _, stmt := range []string{"DELETE FROM books", "DELETE FROM authors"} {
		if _, err := l.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (l *sqlxLoader) Load(ctx context.Context, authors []seedAuthor, books []seedBook) error {
	tx, err := l.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertBatches(ctx, tx, `INSERT INTO authors (id, name) VALUES (:id, :name)`, authors); err != nil {
		return fmt.Errorf("insert authors: %w", err)
	}
	if err := insertBatches(ctx, tx, `INSERT INTO books (id, title, author_id) VALUES (:id, :title, :author_id)`, books); err != nil {
		return fmt.Errorf("insert books: %w", err)
	}
	return tx.Commit()
}

func insertBatches[T any](ctx context.Context, tx *sqlx.Tx, query string, rows []T) error {
	for start := 0; start < len(rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(rows))
		if _, err := tx.NamedExecContext(ctx, query, rows[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (l *sqlxLoader) CountBooks(ctx context.Context) (int64, error) {
	var total int64
	err := l.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM books")
	return total, err
}

func (l *sqlxLoader) Close() {
	_ = l.db.Close()
}
