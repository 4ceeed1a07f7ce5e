package book

import (
	"errors"
)

var (
	// ErrQueryFailed is returned when the store could not execute the books query.
	ErrQueryFailed = errors.New("querying books failed")
	// ErrMalformedRow is returned when a result row lacks an expected column or value.
	ErrMalformedRow = errors.New("malformed book row")
	// ErrBuildingQueryFailed is returned when the books query could not be rendered.
	ErrBuildingQueryFailed = errors.New("building books query failed")
	// ErrUnsupportedDialect is returned for a SQL dialect the query builder does not know.
	ErrUnsupportedDialect = errors.New("unsupported sql dialect")
)

// Author is the read-only author projection embedded in every Book.
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Book represents a book together with a snapshot of its author.
type Book struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author Author `json:"author"`
}

// Filter narrows the books listing. Every field is optional:
// an empty AuthorIDs, an empty Search and a non-positive Limit all mean "no restriction".
type Filter struct {
	AuthorIDs []int64
	Search    string
	Limit     int
}

// Normalize returns the canonical form of f: nil AuthorIDs when empty and zero Limit when not positive.
func (f Filter) Normalize() Filter {
	if len(f.AuthorIDs) == 0 {
		f.AuthorIDs = nil
	}
	if f.Limit < 0 {
		f.Limit = 0
	}
	return f
}
