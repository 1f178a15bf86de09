package word_review

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-api/internal/domain"
	"github.com/phrazzld/lingo-api/internal/store"
)

// LanguageRepository is the slice of store.LanguageStore the service needs.
type LanguageRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Language, error)
	UpdateProgress(ctx context.Context, language *domain.Language) error
}

// WordRepository is the slice of store.WordStore the service needs.
type WordRepository interface {
	ListByLanguage(ctx context.Context, languageID uuid.UUID) ([]*domain.Word, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)
	CreateMultiple(ctx context.Context, words []*domain.Word) error
	UpdateMany(ctx context.Context, words []*domain.Word) error
}

// Repositories groups the repositories handed to a unit of work.
type Repositories struct {
	Languages LanguageRepository
	Words     WordRepository
}

// UnitOfWork runs fn against repositories bound to one transaction. The
// transaction commits if fn returns nil and rolls back otherwise.
type UnitOfWork interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// NewSQLUnitOfWork creates a UnitOfWork backed by database/sql transactions.
func NewSQLUnitOfWork(db *sql.DB, languages store.LanguageStore, words store.WordStore) UnitOfWork {
	if db == nil {
		panic("db cannot be nil")
	}
	if languages == nil {
		panic("languages cannot be nil")
	}
	if words == nil {
		panic("words cannot be nil")
	}
	return &sqlUnitOfWork{db: db, languages: languages, words: words}
}

type sqlUnitOfWork struct {
	db        *sql.DB
	languages store.LanguageStore
	words     store.WordStore
}

// Run implements UnitOfWork.Run
func (u *sqlUnitOfWork) Run(
	ctx context.Context,
	fn func(ctx context.Context, repos Repositories) error,
) error {
	return store.RunInTransaction(ctx, u.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, Repositories{
			Languages: u.languages.WithTx(tx),
			Words:     u.words.WithTx(tx),
		})
	})
}
