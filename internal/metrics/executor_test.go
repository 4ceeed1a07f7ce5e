package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"bookquery/internal/database"
)

type stubExecutor struct {
	err error
}

func (s stubExecutor) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	return nil, s.err
}

func TestInstrumentExecutor_CountsOutcomes(t *testing.T) {
	okBefore := testutil.ToFloat64(DBQueriesTotal.WithLabelValues(OutcomeOK))
	errBefore := testutil.ToFloat64(DBQueriesTotal.WithLabelValues(OutcomeError))

	_, err := InstrumentExecutor(stubExecutor{}).Query(context.Background(), "SELECT 1")
	assert.NoError(t, err)

	failure := errors.New("connection refused")
	_, err = InstrumentExecutor(stubExecutor{err: failure}).Query(context.Background(), "SELECT 1")
	assert.ErrorIs(t, err, failure)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(DBQueriesTotal.WithLabelValues(OutcomeOK)))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(DBQueriesTotal.WithLabelValues(OutcomeError)))
}
