package httpx

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookquery/internal/metrics"
)

func TestAccessLogMiddleware_LabelsByRoutePattern(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	mux := http.NewServeMux()
	mux.Handle("GET /v1/books", okHandler)
	handler := AccessLogMiddleware(logger)(mux)

	unmatched := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, metrics.PathUnmatched, "404")
	books := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "GET /v1/books", "200")
	seriesBefore := testutil.CollectAndCount(metrics.HTTPRequestsTotal)
	unmatchedBefore := testutil.ToFloat64(unmatched)
	booksBefore := testutil.ToFloat64(books)

	for i := 0; i < 100; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/nope/%d", i), nil))
		require.Equal(t, http.StatusNotFound, w.Code)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/books?search=dune", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, seriesBefore, testutil.CollectAndCount(metrics.HTTPRequestsTotal), "random paths add no series")
	assert.Equal(t, unmatchedBefore+100, testutil.ToFloat64(unmatched))
	assert.Equal(t, booksBefore+1, testutil.ToFloat64(books))
	assert.Contains(t, buf.String(), "path=/nope/99")
}
