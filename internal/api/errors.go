package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/lingo-api/internal/api/shared"
	"github.com/phrazzld/lingo-api/internal/domain"
	"github.com/phrazzld/lingo-api/internal/domain/drill"
	"github.com/phrazzld/lingo-api/internal/lock"
	"github.com/phrazzld/lingo-api/internal/service"
	"github.com/phrazzld/lingo-api/internal/service/auth"
	"github.com/phrazzld/lingo-api/internal/service/word_review"
	"github.com/phrazzld/lingo-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	var validationErr *domain.ValidationError

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, word_review.ErrLanguageNotFound),
		errors.Is(err, store.ErrLanguageNotFound),
		errors.Is(err, store.ErrUserNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, drill.ErrEmptyChain),
		errors.Is(err, drill.ErrChainExhausted),
		errors.Is(err, word_review.ErrGuessConflict):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, word_review.ErrMissingGuess),
		errors.Is(err, word_review.ErrNoWordPairs),
		errors.Is(err, store.ErrInvalidEntity),
		errors.As(err, &validationErr),
		isUserInputError(err):
		return http.StatusBadRequest

	// Busy
	case errors.Is(err, lock.ErrNotAcquired):
		return http.StatusServiceUnavailable

	// Default: internal server error, including drill.ErrBrokenChain
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err that carries no
// internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, word_review.ErrLanguageNotFound),
		errors.Is(err, store.ErrLanguageNotFound):
		return "You don't have any languages"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, drill.ErrEmptyChain):
		return "Your language has no words yet; add some words first"
	case errors.Is(err, drill.ErrChainExhausted):
		return "Add at least two words to start practicing"
	case errors.Is(err, word_review.ErrGuessConflict):
		return "Too many simultaneous guesses; please try again"

	case errors.Is(err, word_review.ErrMissingGuess):
		return "Missing 'guess' in request body"
	case errors.Is(err, word_review.ErrNoWordPairs):
		return "No words to add"
	case errors.As(err, &validationErr):
		return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)
	case isUserInputError(err):
		return userInputMessage(err)
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, lock.ErrNotAcquired):
		return "Service busy; please try again"
	case errors.Is(err, drill.ErrBrokenChain):
		return "Word queue is corrupted"

	default:
		return "An unexpected error occurred"
	}
}

// userInputErrors are domain validation failures caused by request data.
var userInputErrors = []error{
	domain.ErrInvalidEmail,
	domain.ErrEmptyEmail,
	domain.ErrPasswordTooShort,
	domain.ErrPasswordTooLong,
	domain.ErrEmptyPassword,
	domain.ErrEmptyLanguageName,
	domain.ErrEmptyOriginal,
	domain.ErrEmptyTranslation,
}

func isUserInputError(err error) bool {
	for _, target := range userInputErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func userInputMessage(err error) string {
	for _, target := range userInputErrors {
		if errors.Is(err, target) {
			msg := target.Error()
			return strings.ToUpper(msg[:1]) + msg[1:]
		}
	}
	return "Validation error"
}

// SanitizeValidationError turns validator errors into a short message
// naming the first failing field.
func SanitizeValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "Validation error"
	}

	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError maps err to a status code and safe message and writes it.
// A non-empty fallback replaces the generic message for 500 responses.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" &&
		!errors.Is(err, drill.ErrBrokenChain) {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
