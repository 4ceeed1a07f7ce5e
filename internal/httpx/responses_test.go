package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/books", nil)
	r = r.WithContext(ContextWithRequestID(r.Context(), "req-1"))

	JSONSuccess(w, r, []string{"Dune"}, map[string]any{"count": 1})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, []any{"Dune"}, body["data"])
	assert.Equal(t, map[string]any{"request_id": "req-1", "count": float64(1)}, body["meta"])
}

func TestJSONSuccess_EmptyListIsKept(t *testing.T) {
	w := httptest.NewRecorder()

	JSONSuccess(w, httptest.NewRequest(http.MethodGet, "/v1/books", nil), []string{}, nil)

	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
}

func TestJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	details := []ErrorDetail{{Field: "limit", Message: "limit must be an integer"}}

	JSONError(w, httptest.NewRequest(http.MethodGet, "/v1/books", nil), http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{
		"success": false,
		"error": {
			"code": "VALIDATION_ERROR",
			"message": "Invalid input",
			"details": [{"field": "limit", "message": "limit must be an integer"}]
		}
	}`, w.Body.String())
}
