package repository

import (
	"context"
	"errors"

	"quotes-api/internal/domain"
)

// ErrQuoteNotFound is returned when no quote exists for the given id.
var ErrQuoteNotFound = errors.New("quote not found")

// QuoteRepository exposes persistence operations for Quote records.
type QuoteRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, quote *domain.Quote) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Quote, error)
	List(ctx context.Context) ([]domain.Quote, error)
	Update(ctx context.Context, quote *domain.Quote) error
	Delete(ctx context.Context, id int64) error
	Random(ctx context.Context) (*domain.Quote, error)
}
