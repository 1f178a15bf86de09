package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/lingo-api/internal/domain"
	"github.com/phrazzld/lingo-api/internal/domain/drill"
	"github.com/phrazzld/lingo-api/internal/lock"
	"github.com/phrazzld/lingo-api/internal/service"
	"github.com/phrazzld/lingo-api/internal/service/auth"
	"github.com/phrazzld/lingo-api/internal/service/word_review"
	"github.com/phrazzld/lingo-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"no language", word_review.ErrLanguageNotFound, http.StatusNotFound, "You don't have any languages"},
		{"missing guess", word_review.ErrMissingGuess, http.StatusBadRequest, "Missing 'guess' in request body"},
		{
			"empty chain",
			drill.ErrEmptyChain,
			http.StatusConflict,
			"Your language has no words yet; add some words first",
		},
		{"single word", drill.ErrChainExhausted, http.StatusConflict, "Add at least two words to start practicing"},
		{
			"broken chain wrapped in service error",
			word_review.NewServiceError("submit_guess", "failed", fmt.Errorf("%w: cycle", drill.ErrBrokenChain)),
			http.StatusInternalServerError,
			"Word queue is corrupted",
		},
		{
			"conflict",
			fmt.Errorf("%w after 4 attempts", word_review.ErrGuessConflict),
			http.StatusConflict,
			"Too many simultaneous guesses; please try again",
		},
		{
			"lock timeout",
			fmt.Errorf("failed to lock language: %w", lock.ErrNotAcquired),
			http.StatusServiceUnavailable,
			"Service busy; please try again",
		},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized, "Token expired"},
		{"email taken", fmt.Errorf("register: %w", store.ErrEmailExists), http.StatusConflict, "Email already exists"},
		{
			"short password",
			fmt.Errorf("failed to create user: %w", domain.ErrPasswordTooShort),
			http.StatusBadRequest,
			"Password must be at least 12 characters long",
		},
		{
			"field validation",
			domain.NewValidationError("pairs[0]", "word translation cannot be empty", domain.ErrEmptyTranslation),
			http.StatusBadRequest,
			"Invalid pairs[0]: word translation cannot be empty",
		},
		{
			"unknown",
			errors.New("pq: connection refused at 10.0.0.1:5432"),
			http.StatusInternalServerError,
			"An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantStatus, MapErrorToStatusCode(tt.err))
			assert.Equal(t, tt.wantMessage, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	type payload struct {
		Email string `validate:"required,email"`
	}

	err := validateForTest(payload{Email: "nope"})
	assert.Equal(t, "Invalid email: invalid email format", SanitizeValidationError(err))

	err = validateForTest(payload{})
	assert.Equal(t, "Invalid email: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}
