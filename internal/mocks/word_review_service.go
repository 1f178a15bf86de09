package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-api/internal/service/word_review"
)

// MockWordReviewService implements word_review.WordReviewService for testing
type MockWordReviewService struct {
	// Custom behavior functions
	PeekNextFn    func(ctx context.Context, userID uuid.UUID) (*word_review.NextWord, error)
	SubmitGuessFn func(ctx context.Context, userID uuid.UUID, guess string) (*word_review.GuessResult, error)
	GetLanguageFn func(ctx context.Context, userID uuid.UUID) (*word_review.LanguageOverview, error)
	AddWordsFn    func(ctx context.Context, userID uuid.UUID, pairs []word_review.WordPair) (int, error)

	// Default response values
	Next     *word_review.NextWord
	Result   *word_review.GuessResult
	Overview *word_review.LanguageOverview
	Err      error

	// Call tracking for verification
	mu      sync.Mutex
	UserIDs []uuid.UUID
	Guesses []string
}

var _ word_review.WordReviewService = (*MockWordReviewService)(nil)

func (m *MockWordReviewService) record(userID uuid.UUID, guess *string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UserIDs = append(m.UserIDs, userID)
	if guess != nil {
		m.Guesses = append(m.Guesses, *guess)
	}
}

// PeekNext implements word_review.WordReviewService
func (m *MockWordReviewService) PeekNext(ctx context.Context, userID uuid.UUID) (*word_review.NextWord, error) {
	m.record(userID, nil)
	if m.PeekNextFn != nil {
		return m.PeekNextFn(ctx, userID)
	}
	return m.Next, m.Err
}

// SubmitGuess implements word_review.WordReviewService
func (m *MockWordReviewService) SubmitGuess(
	ctx context.Context,
	userID uuid.UUID,
	guess string,
) (*word_review.GuessResult, error) {
	m.record(userID, &guess)
	if m.SubmitGuessFn != nil {
		return m.SubmitGuessFn(ctx, userID, guess)
	}
	return m.Result, m.Err
}

// GetLanguage implements word_review.WordReviewService
func (m *MockWordReviewService) GetLanguage(
	ctx context.Context,
	userID uuid.UUID,
) (*word_review.LanguageOverview, error) {
	m.record(userID, nil)
	if m.GetLanguageFn != nil {
		return m.GetLanguageFn(ctx, userID)
	}
	return m.Overview, m.Err
}

// AddWords implements word_review.WordReviewService
func (m *MockWordReviewService) AddWords(
	ctx context.Context,
	userID uuid.UUID,
	pairs []word_review.WordPair,
) (int, error) {
	m.record(userID, nil)
	if m.AddWordsFn != nil {
		return m.AddWordsFn(ctx, userID, pairs)
	}
	if m.Err != nil {
		return 0, m.Err
	}
	return len(pairs), nil
}

// CallCount returns how many service calls were made.
func (m *MockWordReviewService) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.UserIDs)
}
