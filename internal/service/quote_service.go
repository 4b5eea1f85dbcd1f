package service

import (
	"context"
	"errors"
	"strings"

	"quotes-api/internal/domain"
	"quotes-api/internal/repository"
)

var (
	// ErrNotFound indicates the requested quote does not exist.
	ErrNotFound = errors.New("quote not found")
	// ErrForbidden indicates the caller is authenticated but is not the
	// owner of the quote being mutated.
	ErrForbidden = errors.New("only the owner may modify this quote")
)

// QuoteUpdate carries the client-settable fields of an update. Nil means
// "leave unchanged"; owner and timestamps are never client-settable.
type QuoteUpdate struct {
	Text   *string
	Author *string
}

// QuoteService coordinates quote CRUD and enforces the ownership rule:
// reads are open to any authenticated user, mutation is owner-only.
type QuoteService interface {
	Create(ctx context.Context, callerID int64, text, author string) (*domain.Quote, error)
	Get(ctx context.Context, id int64) (*domain.Quote, error)
	List(ctx context.Context) ([]domain.Quote, error)
	Update(ctx context.Context, callerID, id int64, update QuoteUpdate) (*domain.Quote, error)
	Delete(ctx context.Context, callerID, id int64) error
	Random(ctx context.Context) (*domain.Quote, error)
}

type quoteService struct {
	quotes repository.QuoteRepository
}

func NewQuoteService(quotes repository.QuoteRepository) QuoteService {
	return &quoteService{quotes: quotes}
}

// Create stamps the caller as the owner. Any owner supplied by the client
// never reaches this layer; the handler discards it.
func (s *quoteService) Create(ctx context.Context, callerID int64, text, author string) (*domain.Quote, error) {
	if strings.TrimSpace(text) == "" {
		verr := &ValidationError{}
		verr.add("text", "text is required")
		return nil, verr
	}

	quote := &domain.Quote{
		Text:      text,
		Author:    author,
		CreatedBy: callerID,
	}
	if _, err := s.quotes.Create(ctx, quote); err != nil {
		return nil, err
	}
	return s.quotes.Get(ctx, quote.ID)
}

func (s *quoteService) Get(ctx context.Context, id int64) (*domain.Quote, error) {
	quote, err := s.quotes.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return quote, nil
}

func (s *quoteService) List(ctx context.Context) ([]domain.Quote, error) {
	return s.quotes.List(ctx)
}

// Update fetches first and authorizes second, so a non-owner learns the
// quote exists (403) rather than getting a 404.
func (s *quoteService) Update(ctx context.Context, callerID, id int64, update QuoteUpdate) (*domain.Quote, error) {
	quote, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote.CreatedBy != callerID {
		return nil, ErrForbidden
	}

	if update.Text != nil {
		if strings.TrimSpace(*update.Text) == "" {
			verr := &ValidationError{}
			verr.add("text", "text is required")
			return nil, verr
		}
		quote.Text = *update.Text
	}
	if update.Author != nil {
		quote.Author = *update.Author
	}

	if err := s.quotes.Update(ctx, quote); err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return quote, nil
}

func (s *quoteService) Delete(ctx context.Context, callerID, id int64) error {
	quote, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if quote.CreatedBy != callerID {
		return ErrForbidden
	}
	if err := s.quotes.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Random returns a uniformly chosen quote, or (nil, nil) when none exist.
// An empty table is a normal outcome, not an error.
func (s *quoteService) Random(ctx context.Context) (*domain.Quote, error) {
	quote, err := s.quotes.Random(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return quote, nil
}
