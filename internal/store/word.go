package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-api/internal/domain"
)

// WordStore persists the words of a language queue.
type WordStore interface {
	// ListByLanguage returns every word of a language in no particular
	// order. Queue order is recovered from the Next links.
	ListByLanguage(ctx context.Context, languageID uuid.UUID) ([]*domain.Word, error)

	// GetByID retrieves a word by id.
	// Returns ErrWordNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)

	// CreateMultiple inserts words. It MUST run inside a transaction
	// together with the language update that links them into the queue.
	CreateMultiple(ctx context.Context, words []*domain.Word) error

	// UpdateMany writes counters, strength and next link of each word.
	// Returns ErrWordNotFound if any word is missing.
	UpdateMany(ctx context.Context, words []*domain.Word) error

	// WithTx returns a new WordStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) WordStore
}
