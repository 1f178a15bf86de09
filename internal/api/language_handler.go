package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/lingo-api/internal/api/shared"
	"github.com/phrazzld/lingo-api/internal/platform/logger"
	"github.com/phrazzld/lingo-api/internal/service/word_review"
)

// LanguageHandler serves the authenticated user's language and drill.
type LanguageHandler struct {
	reviews word_review.WordReviewService
	logger  *slog.Logger
}

// NewLanguageHandler creates a new LanguageHandler
func NewLanguageHandler(reviews word_review.WordReviewService, logger *slog.Logger) *LanguageHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for LanguageHandler")
	}
	return &LanguageHandler{
		reviews: reviews,
		logger:  logger.With(slog.String("component", "language_handler")),
	}
}

// GetLanguage handles GET /api/language: the language and its words in
// queue order.
func (h *LanguageHandler) GetLanguage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	overview, err := h.reviews.GetLanguage(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load language")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, overviewToResponse(overview))
}

// GetHead handles GET /api/language/head: the word to practice next.
func (h *LanguageHandler) GetHead(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	next, err := h.reviews.PeekNext(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get next word")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, nextWordToResponse(next))
}

// SubmitGuess handles POST /api/language/guess.
func (h *LanguageHandler) SubmitGuess(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req GuessRequest
	if err := shared.DecodeJSON(r, &req); err != nil && !errors.Is(err, shared.ErrEmptyBody) {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	guess := ""
	if req.Guess != nil {
		guess = *req.Guess
	}

	result, err := h.reviews.SubmitGuess(r.Context(), userID, guess)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit guess")
		return
	}

	log.Debug("guess submitted",
		slog.String("user_id", userID.String()),
		slog.Bool("correct", result.IsCorrect))
	shared.RespondWithJSON(w, r, http.StatusOK, guessResultToResponse(result))
}
