package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-api/internal/domain"
)

// LanguageStore persists language profiles: the queue head, the running
// score and the version used for compare-and-swap updates.
type LanguageStore interface {
	// Create saves a new language. Returns ErrDuplicate if the user already
	// has one.
	Create(ctx context.Context, language *domain.Language) error

	// GetByID retrieves a language by id.
	// Returns ErrLanguageNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Language, error)

	// GetByUserID retrieves the language owned by a user.
	// Returns ErrLanguageNotFound if the user has none.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Language, error)

	// UpdateProgress writes Head and TotalScore if the stored version still
	// equals language.Version, and bumps the version on success. Both the
	// argument's Version and UpdatedAt are updated in place.
	// Returns ErrConflict if the version moved on, ErrLanguageNotFound if the
	// row is gone.
	UpdateProgress(ctx context.Context, language *domain.Language) error

	// ListIDs returns the ids of all languages.
	ListIDs(ctx context.Context) ([]uuid.UUID, error)

	// WithTx returns a new LanguageStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) LanguageStore
}
