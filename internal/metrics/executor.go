package metrics

import (
	"context"
	"time"

	"bookquery/internal/database"
)

// InstrumentedExecutor counts and times queries sent to the wrapped executor.
type InstrumentedExecutor struct {
	next database.Executor
}

// InstrumentExecutor wraps next with query metrics.
func InstrumentExecutor(next database.Executor) *InstrumentedExecutor {
	return &InstrumentedExecutor{next: next}
}

func (e *InstrumentedExecutor) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	start := time.Now()
	rows, err := e.next.Query(ctx, query, args...)
	DBQueryDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		DBQueriesTotal.WithLabelValues(OutcomeError).Inc()
		return nil, err
	}
	DBQueriesTotal.WithLabelValues(OutcomeOK).Inc()
	return rows, nil
}
