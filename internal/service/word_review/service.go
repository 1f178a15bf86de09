package word_review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-api/internal/domain"
)

// NextWord is the word currently due for review together with the
// language's running score.
type NextWord struct {
	Word           string
	TotalScore     int
	CorrectCount   int
	IncorrectCount int
}

// GuessResult is the outcome of one guess. NextWord and its counters
// describe the new head of the queue; Answer is the translation of the word
// that was just guessed.
type GuessResult struct {
	NextWord           string
	TotalScore         int
	WordCorrectCount   int
	WordIncorrectCount int
	Answer             string
	IsCorrect          bool
}

// WordPair is a new original/translation pair to add to a language.
type WordPair struct {
	Original    string
	Translation string
}

// LanguageOverview is a language with its words in queue order.
type LanguageOverview struct {
	Language *domain.Language
	Words    []*domain.Word
}

// WordReviewService runs vocabulary practice for a user's language.
type WordReviewService interface {
	// PeekNext returns the word due for review without changing anything.
	// Returns ErrLanguageNotFound if the user has no language and
	// drill.ErrEmptyChain if the language has no words.
	PeekNext(ctx context.Context, userID uuid.UUID) (*NextWord, error)

	// SubmitGuess checks guess against the head word's translation, moves
	// that word back in the queue and persists the new order and score in
	// one transaction. Concurrent guesses on the same language are
	// serialized; a lost version race is retried against fresh state.
	//
	// Returns ErrMissingGuess for an empty guess, ErrLanguageNotFound,
	// drill.ErrEmptyChain, drill.ErrChainExhausted, drill.ErrBrokenChain,
	// or ErrGuessConflict when retries run out.
	SubmitGuess(ctx context.Context, userID uuid.UUID, guess string) (*GuessResult, error)

	// GetLanguage returns the language and its words in queue order.
	GetLanguage(ctx context.Context, userID uuid.UUID) (*LanguageOverview, error)

	// AddWords appends new pairs to the tail of the queue and returns how
	// many were added. Invalid pairs are rejected before anything is written.
	AddWords(ctx context.Context, userID uuid.UUID, pairs []WordPair) (int, error)
}

// Common error types for WordReviewService
var (
	// ErrLanguageNotFound indicates that the user has no language profile.
	ErrLanguageNotFound = errors.New("language not found")

	// ErrMissingGuess indicates an empty guess.
	ErrMissingGuess = errors.New("missing guess")

	// ErrGuessConflict indicates that concurrent updates kept winning the
	// version race until retries ran out.
	ErrGuessConflict = errors.New("language was modified concurrently")

	// ErrNoWordPairs indicates that AddWords was called with nothing to add.
	ErrNoWordPairs = errors.New("no word pairs to add")
)

// ServiceError wraps unexpected errors from the word review service with
// the operation that failed.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "submit_guess")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError returns a ServiceError for operation.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Operation: operation, Message: message, Err: err}
}
