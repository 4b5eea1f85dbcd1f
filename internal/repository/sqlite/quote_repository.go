package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quotes-api/internal/domain"
	"quotes-api/internal/repository"
)

const createQuotesTable = `
CREATE TABLE IF NOT EXISTS quotes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	text TEXT NOT NULL,
	author TEXT NOT NULL DEFAULT '',
	created_by INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

const quoteColumns = `
q.id, q.text, q.author, q.created_by, u.username, q.created_at, q.updated_at
`

type QuoteRepository struct {
	db *sql.DB
}

func NewQuoteRepository(db *sql.DB) repository.QuoteRepository {
	return &QuoteRepository{db: db}
}

func (r *QuoteRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createQuotesTable); err != nil {
		return fmt.Errorf("create quotes table: %w", err)
	}
	return nil
}

func (r *QuoteRepository) Create(ctx context.Context, quote *domain.Quote) (int64, error) {
	now := time.Now().UTC()
	quote.CreatedAt = now
	quote.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO quotes (text, author, created_by, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`,
		quote.Text,
		quote.Author,
		quote.CreatedBy,
		quote.CreatedAt,
		quote.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert quote: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("quote last insert id: %w", err)
	}
	quote.ID = id
	return id, nil
}

func (r *QuoteRepository) Get(ctx context.Context, id int64) (*domain.Quote, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+quoteColumns+`
FROM quotes q JOIN users u ON u.id = q.created_by
WHERE q.id = ?`,
		id,
	)
	return scanQuote(row)
}

func (r *QuoteRepository) List(ctx context.Context) ([]domain.Quote, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+quoteColumns+`
FROM quotes q JOIN users u ON u.id = q.created_by
ORDER BY q.created_at DESC, q.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	var quotes []domain.Quote
	for rows.Next() {
		var q domain.Quote
		if err := rows.Scan(
			&q.ID,
			&q.Text,
			&q.Author,
			&q.CreatedBy,
			&q.CreatedByUsername,
			&q.CreatedAt,
			&q.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		quotes = append(quotes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}
	return quotes, nil
}

func (r *QuoteRepository) Update(ctx context.Context, quote *domain.Quote) error {
	quote.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
UPDATE quotes SET text = ?, author = ?, updated_at = ?
WHERE id = ?`,
		quote.Text,
		quote.Author,
		quote.UpdatedAt,
		quote.ID,
	)
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update quote rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrQuoteNotFound
	}
	return nil
}

func (r *QuoteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM quotes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete quote rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrQuoteNotFound
	}
	return nil
}

// Random selects one quote uniformly at random. Returns ErrQuoteNotFound
// when the table is empty.
func (r *QuoteRepository) Random(ctx context.Context) (*domain.Quote, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+quoteColumns+`
FROM quotes q JOIN users u ON u.id = q.created_by
ORDER BY RANDOM()
LIMIT 1`)
	return scanQuote(row)
}

func scanQuote(row *sql.Row) (*domain.Quote, error) {
	var q domain.Quote
	if err := row.Scan(
		&q.ID,
		&q.Text,
		&q.Author,
		&q.CreatedBy,
		&q.CreatedByUsername,
		&q.CreatedAt,
		&q.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("scan quote: %w", err)
	}
	return &q, nil
}
