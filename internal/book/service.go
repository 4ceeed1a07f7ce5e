package book

import (
	"context"
	"log/slog"
)

// Service provides the books query operation.
type Service struct {
	repo   Repository
	logger Logger
}

// NewService creates a new book service. A nil logger falls back to slog.Default().
func NewService(repo Repository, logger Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Books returns the books matching f in store order.
//
// A failed query is reported as an error wrapping ErrQueryFailed (or ErrMalformedRow), never as an
// empty result, so callers can tell "no matching books" apart from "the query failed".
func (s *Service) Books(ctx context.Context, f Filter) ([]Book, error) {
	f = f.Normalize()
	s.logger.Debug("books requested",
		"author_ids", f.AuthorIDs,
		"search", f.Search,
		"limit", f.Limit,
	)

	books, err := s.repo.List(ctx, f)
	if err != nil {
		s.logger.Error("error retrieving books", "error", err)
		return nil, err
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}
