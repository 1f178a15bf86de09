package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-api/internal/domain"
	"github.com/phrazzld/lingo-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockUserStore is a mock of store.UserStore for use with testify/mock.
// WithTx returns the mock itself unless an expectation says otherwise.
type TestifyMockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*TestifyMockUserStore)(nil)

// Create is a mock implementation of store.UserStore.Create
func (m *TestifyMockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// GetByID is a mock implementation of store.UserStore.GetByID
func (m *TestifyMockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByEmail is a mock implementation of store.UserStore.GetByEmail
func (m *TestifyMockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx is a mock implementation of store.UserStore.WithTx
func (m *TestifyMockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

// TestifyMockLanguageStore is a mock of store.LanguageStore for use with testify/mock.
type TestifyMockLanguageStore struct {
	mock.Mock
}

var _ store.LanguageStore = (*TestifyMockLanguageStore)(nil)

// Create is a mock implementation of store.LanguageStore.Create
func (m *TestifyMockLanguageStore) Create(ctx context.Context, language *domain.Language) error {
	args := m.Called(ctx, language)
	return args.Error(0)
}

// GetByID is a mock implementation of store.LanguageStore.GetByID
func (m *TestifyMockLanguageStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Language, error) {
	args := m.Called(ctx, id)
	if lang, ok := args.Get(0).(*domain.Language); ok {
		return lang, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByUserID is a mock implementation of store.LanguageStore.GetByUserID
func (m *TestifyMockLanguageStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Language, error) {
	args := m.Called(ctx, userID)
	if lang, ok := args.Get(0).(*domain.Language); ok {
		return lang, args.Error(1)
	}
	return nil, args.Error(1)
}

// UpdateProgress is a mock implementation of store.LanguageStore.UpdateProgress
func (m *TestifyMockLanguageStore) UpdateProgress(ctx context.Context, language *domain.Language) error {
	args := m.Called(ctx, language)
	return args.Error(0)
}

// ListIDs is a mock implementation of store.LanguageStore.ListIDs
func (m *TestifyMockLanguageStore) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if ids, ok := args.Get(0).([]uuid.UUID); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

// WithTx is a mock implementation of store.LanguageStore.WithTx
func (m *TestifyMockLanguageStore) WithTx(tx *sql.Tx) store.LanguageStore {
	return m
}

// TestifyMockWordStore is a mock of store.WordStore for use with testify/mock.
type TestifyMockWordStore struct {
	mock.Mock
}

var _ store.WordStore = (*TestifyMockWordStore)(nil)

// ListByLanguage is a mock implementation of store.WordStore.ListByLanguage
func (m *TestifyMockWordStore) ListByLanguage(ctx context.Context, languageID uuid.UUID) ([]*domain.Word, error) {
	args := m.Called(ctx, languageID)
	if words, ok := args.Get(0).([]*domain.Word); ok {
		return words, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByID is a mock implementation of store.WordStore.GetByID
func (m *TestifyMockWordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	args := m.Called(ctx, id)
	if word, ok := args.Get(0).(*domain.Word); ok {
		return word, args.Error(1)
	}
	return nil, args.Error(1)
}

// CreateMultiple is a mock implementation of store.WordStore.CreateMultiple
func (m *TestifyMockWordStore) CreateMultiple(ctx context.Context, words []*domain.Word) error {
	args := m.Called(ctx, words)
	return args.Error(0)
}

// UpdateMany is a mock implementation of store.WordStore.UpdateMany
func (m *TestifyMockWordStore) UpdateMany(ctx context.Context, words []*domain.Word) error {
	args := m.Called(ctx, words)
	return args.Error(0)
}

// WithTx is a mock implementation of store.WordStore.WithTx
func (m *TestifyMockWordStore) WithTx(tx *sql.Tx) store.WordStore {
	return m
}
