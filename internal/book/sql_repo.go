package book

import (
	"context"
	"errors"
	"math"
	"time"

	"bookquery/internal/database"
)

const (
	logMsgBuildQueryFailed = "failed to build books query"
	logMsgDBQueryFailed    = "books query execution failed"
	logMsgScanRowsFailed   = "failed to read books rows"
	logMsgCloseRowsFailed  = "failed to close books rows"
	logMsgQueryExecuted    = "executed books query"
	logAttrError           = "error"
	logAttrQuery           = "query"
	logAttrArgCount        = "arg_count"
	logAttrRowCount        = "row_count"
	logAttrDurationMS      = "duration_ms"
)

// SQLRepo reads books from a relational store through a database.Executor.
type SQLRepo struct {
	db      database.Executor
	builder QueryBuilder
	timeout time.Duration
	logger  Logger
}

// Option configures a SQLRepo.
type Option func(*SQLRepo)

// WithQueryTimeout bounds every query with timeout. Zero disables the bound.
func WithQueryTimeout(timeout time.Duration) Option {
	return func(r *SQLRepo) {
		r.timeout = timeout
	}
}

// WithLogger sets the logger. Rendered SQL is logged at debug level, failures at error level.
func WithLogger(logger Logger) Option {
	return func(r *SQLRepo) {
		r.logger = logger
	}
}

// NewSQLRepo creates a repository that renders queries for dialect and runs them on db.
func NewSQLRepo(db database.Executor, dialect string, options ...Option) (*SQLRepo, error) {
	if db == nil {
		return nil, database.ErrNilDatabaseConnection
	}

	builder, err := NewQueryBuilder(dialect)
	if err != nil {
		return nil, err
	}

	r := &SQLRepo{db: db, builder: builder}
	for _, option := range options {
		option(r)
	}
	return r, nil
}

func (r *SQLRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

// List runs the books query for f and maps the result rows.
func (r *SQLRepo) List(ctx context.Context, f Filter) ([]Book, error) {
	stmt, err := r.builder.Build(f)
	if err != nil {
		r.logError(logMsgBuildQueryFailed, logAttrError, err.Error())
		return nil, err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	rows, err := r.db.Query(timeoutCtx, stmt.SQL, stmt.Args...)
	if err != nil {
		r.logError(logMsgDBQueryFailed, logAttrError, err.Error(), logAttrQuery, stmt.SQL)
		return nil, errors.Join(ErrQueryFailed, err)
	}
	defer r.closeRows(rows)

	scanned, err := ScanRows(rows)
	if err != nil {
		r.logError(logMsgScanRowsFailed, logAttrError, err.Error(), logAttrQuery, stmt.SQL)
		return nil, err
	}

	if r.logger != nil {
		r.logger.Debug(logMsgQueryExecuted,
			logAttrQuery, stmt.SQL,
			logAttrArgCount, len(stmt.Args),
			logAttrRowCount, len(scanned),
			logAttrDurationMS, durationToMilliseconds(time.Since(start)),
		)
	}

	return MapRows(scanned), nil
}

func (r *SQLRepo) closeRows(rows database.Rows) {
	if closeErr := rows.Close(); closeErr != nil && r.logger != nil {
		r.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

func (r *SQLRepo) logError(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Error(msg, args...)
	}
}

// durationToMilliseconds converts d to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
