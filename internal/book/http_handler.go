package book

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"bookquery/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// List handles GET /v1/books
// @Summary List books
// @Description List books with their authors, optionally filtered by author and title
// @Tags books
// @Produce json
// @Param author_ids query string false "Comma-separated author IDs"
// @Param search query string false "Case-insensitive title substring"
// @Param limit query int false "Maximum number of books; 0 or negative means no limit"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /v1/books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, details := parseFilter(r)
	if len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", details)
		return
	}

	books, err := h.service.Books(r.Context(), filter)
	if err != nil {
		switch {
		case errors.Is(err, ErrQueryFailed):
			httpx.JSONError(w, r, http.StatusInternalServerError, "QUERY_FAILED", "Books could not be retrieved", nil)
		case errors.Is(err, ErrMalformedRow):
			httpx.JSONError(w, r, http.StatusInternalServerError, "DATA_INTEGRITY_ERROR", "Stored book data is inconsistent", nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	httpx.JSONSuccess(w, r, books, map[string]any{
		"count": len(books),
	})
}

// parseFilter reads author_ids (comma-separated and/or repeated), search and limit.
func parseFilter(r *http.Request) (Filter, []httpx.ErrorDetail) {
	query := r.URL.Query()

	var (
		filter  = Filter{Search: query.Get("search")}
		details []httpx.ErrorDetail
	)

	for _, raw := range query["author_ids"] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				details = append(details, httpx.ErrorDetail{
					Field:   "author_ids",
					Message: fmt.Sprintf("%q is not an integer author id", part),
				})
				continue
			}
			filter.AuthorIDs = append(filter.AuthorIDs, id)
		}
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			details = append(details, httpx.ErrorDetail{
				Field:   "limit",
				Message: "limit must be an integer",
			})
		} else {
			filter.Limit = limit
		}
	}

	return filter, details
}
