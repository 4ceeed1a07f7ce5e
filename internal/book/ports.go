package book

import (
	"context"
)

//go:generate mockgen -destination=mock_repository.go -package=book bookquery/internal/book Repository

// Repository defines the contract for reading books.
type Repository interface {
	List(ctx context.Context, f Filter) ([]Book, error)
}

// Logger is the structured logger used across the package; *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}
