package main

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookquery/internal/book"
	"bookquery/internal/database"
)

func TestGenerate(t *testing.T) {
	authors, books := generate(7, 5, 50)

	require.Len(t, authors, 5)
	require.Len(t, books, 50)
	for i, b := range books {
		assert.Equal(t, int64(i+1), b.ID)
		assert.NotEmpty(t, b.Title)
		assert.GreaterOrEqual(t, b.AuthorID, int64(1))
		assert.LessOrEqual(t, b.AuthorID, int64(5))
	}

	againAuthors, againBooks := generate(7, 5, 50)
	assert.Equal(t, authors, againAuthors, "same seed, same data")
	assert.Equal(t, books, againBooks)
}

func newMigratedSQLite(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := t.Context()

	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok, "runtime.Caller failed")
	// this file lives in cmd/seed/, so repo root is ../..
	dir := filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", "..", "db", "migrations"))

	sqlDB, dialect, err := database.OpenSQL(ctx, database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(ctx, sqlDB, dialect, dir, database.MigrateUp))

	return sqlx.NewDb(sqlDB, database.DriverSQLite)
}

func TestSQLXLoader_LoadThenQuery(t *testing.T) {
	ctx := t.Context()
	db := newMigratedSQLite(t)
	l := &sqlxLoader{db: db}

	authors, books := generate(1, 20, 1234)
	require.NoError(t, l.Load(ctx, authors, books))

	total, err := l.CountBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1234), total)

	exec, err := database.NewSQLXAdapter(db, database.DialectSQLite)
	require.NoError(t, err)
	repo, err := book.NewSQLRepo(exec, database.DialectSQLite)
	require.NoError(t, err)

	listed, err := repo.List(ctx, book.Filter{AuthorIDs: []int64{authors[0].ID}})
	require.NoError(t, err)
	for _, b := range listed {
		assert.Equal(t, authors[0], seedAuthor{ID: b.Author.ID, Name: b.Author.Name})
	}

	require.NoError(t, l.Reset(ctx))
	total, err = l.CountBooks(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestNewLoader_UnsupportedDriver(t *testing.T) {
	_, err := newLoader(t.Context(), "oracle", "dsn")
	assert.ErrorIs(t, err, database.ErrUnsupportedDriver)
}
