package word_review_test

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-api/internal/domain"
	"github.com/phrazzld/lingo-api/internal/service/word_review"
	"github.com/phrazzld/lingo-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// memStore is an in-memory database whose unit of work rolls back on error.
type memStore struct {
	mu        sync.Mutex
	languages map[uuid.UUID]*domain.Language // keyed by user id
	words     map[uuid.UUID]*domain.Word

	// conflicts makes the next N UpdateProgress calls fail with ErrConflict.
	conflicts int
	runs      int
}

func newMemStore() *memStore {
	return &memStore{
		languages: make(map[uuid.UUID]*domain.Language),
		words:     make(map[uuid.UUID]*domain.Word),
	}
}

func (m *memStore) Run(
	ctx context.Context,
	fn func(ctx context.Context, repos word_review.Repositories) error,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs++

	langs := make(map[uuid.UUID]*domain.Language, len(m.languages))
	for k, v := range m.languages {
		c := *v
		langs[k] = &c
	}
	words := make(map[uuid.UUID]*domain.Word, len(m.words))
	for k, v := range m.words {
		words[k] = v.Clone()
	}

	err := fn(ctx, word_review.Repositories{Languages: memLanguages{m}, Words: memWords{m}})
	if err != nil {
		m.languages = langs
		m.words = words
	}
	return err
}

// seed stores a language for userID with words linked in the given order.
func (m *memStore) seed(userID uuid.UUID, pairs ...[2]string) *domain.Language {
	lang, err := domain.NewLanguage(userID, "Spanish")
	if err != nil {
		panic(err)
	}
	var prev *domain.Word
	for _, p := range pairs {
		w, err := domain.NewWord(lang.ID, p[0], p[1])
		if err != nil {
			panic(err)
		}
		if prev == nil {
			id := w.ID
			lang.Head = &id
		} else {
			id := w.ID
			prev.Next = &id
		}
		m.words[w.ID] = w
		prev = w
	}
	m.languages[userID] = lang
	return lang
}

// order returns the originals of a language's words following the links.
func (m *memStore) order(userID uuid.UUID) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	lang := m.languages[userID]
	var out []string
	for id := lang.Head; id != nil; id = m.words[*id].Next {
		out = append(out, m.words[*id].Original)
		if len(out) > len(m.words) {
			break
		}
	}
	return out
}

func (m *memStore) language(userID uuid.UUID) domain.Language {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.languages[userID]
}

type memLanguages struct{ m *memStore }

func (r memLanguages) GetByUserID(_ context.Context, userID uuid.UUID) (*domain.Language, error) {
	lang, ok := r.m.languages[userID]
	if !ok {
		return nil, store.ErrLanguageNotFound
	}
	c := *lang
	return &c, nil
}

func (r memLanguages) UpdateProgress(_ context.Context, language *domain.Language) error {
	if r.m.conflicts > 0 {
		r.m.conflicts--
		return store.ErrConflict
	}
	stored, ok := r.m.languages[language.UserID]
	if !ok {
		return store.ErrLanguageNotFound
	}
	if stored.Version != language.Version {
		return store.ErrConflict
	}
	language.Version++
	c := *language
	r.m.languages[language.UserID] = &c
	return nil
}

type memWords struct{ m *memStore }

func (r memWords) ListByLanguage(_ context.Context, languageID uuid.UUID) ([]*domain.Word, error) {
	var out []*domain.Word
	for _, w := range r.m.words {
		if w.LanguageID == languageID {
			out = append(out, w.Clone())
		}
	}
	return out, nil
}

func (r memWords) GetByID(_ context.Context, id uuid.UUID) (*domain.Word, error) {
	w, ok := r.m.words[id]
	if !ok {
		return nil, store.ErrWordNotFound
	}
	return w.Clone(), nil
}

func (r memWords) CreateMultiple(_ context.Context, words []*domain.Word) error {
	for _, w := range words {
		if _, ok := r.m.words[w.ID]; ok {
			return store.ErrDuplicate
		}
		r.m.words[w.ID] = w.Clone()
	}
	return nil
}

func (r memWords) UpdateMany(_ context.Context, words []*domain.Word) error {
	for _, w := range words {
		if _, ok := r.m.words[w.ID]; !ok {
			return store.ErrWordNotFound
		}
		r.m.words[w.ID] = w.Clone()
	}
	return nil
}

// MockLanguageRepository is a testify mock of word_review.LanguageRepository.
type MockLanguageRepository struct {
	mock.Mock
}

func (m *MockLanguageRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Language, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Language), args.Error(1)
}

func (m *MockLanguageRepository) UpdateProgress(ctx context.Context, language *domain.Language) error {
	args := m.Called(ctx, language)
	return args.Error(0)
}

// MockWordRepository is a testify mock of word_review.WordRepository.
type MockWordRepository struct {
	mock.Mock
}

func (m *MockWordRepository) ListByLanguage(ctx context.Context, languageID uuid.UUID) ([]*domain.Word, error) {
	args := m.Called(ctx, languageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Word), args.Error(1)
}

func (m *MockWordRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Word), args.Error(1)
}

func (m *MockWordRepository) CreateMultiple(ctx context.Context, words []*domain.Word) error {
	args := m.Called(ctx, words)
	return args.Error(0)
}

func (m *MockWordRepository) UpdateMany(ctx context.Context, words []*domain.Word) error {
	args := m.Called(ctx, words)
	return args.Error(0)
}

// directUnitOfWork hands fixed repositories to fn without a transaction.
type directUnitOfWork struct {
	repos word_review.Repositories
}

func (u directUnitOfWork) Run(
	ctx context.Context,
	fn func(ctx context.Context, repos word_review.Repositories) error,
) error {
	return fn(ctx, u.repos)
}
