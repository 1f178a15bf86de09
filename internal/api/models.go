package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-api/internal/domain"
	"github.com/phrazzld/lingo-api/internal/service/word_review"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
	// Language names the learner's language; blank means domain.DefaultLanguageName.
	Language string `json:"language" validate:"max=100"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT used for API authorization
	AccessToken string `json:"token"`

	// ExpiresAt is the RFC 3339 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// GuessRequest is the body of POST /api/language/guess. Guess is checked by
// the handler so a missing value gets its own message.
type GuessRequest struct {
	Guess *string `json:"guess"`
}

// NextWordResponse is returned by GET /api/language/head.
type NextWordResponse struct {
	NextWord           string `json:"nextWord"`
	TotalScore         int    `json:"totalScore"`
	WordCorrectCount   int    `json:"wordCorrectCount"`
	WordIncorrectCount int    `json:"wordIncorrectCount"`
}

// GuessResponse is returned by POST /api/language/guess.
type GuessResponse struct {
	NextWord           string `json:"nextWord"`
	TotalScore         int    `json:"totalScore"`
	WordCorrectCount   int    `json:"wordCorrectCount"`
	WordIncorrectCount int    `json:"wordIncorrectCount"`
	Answer             string `json:"answer"`
	IsCorrect          bool   `json:"isCorrect"`
}

// LanguageResponse is returned by GET /api/language.
type LanguageResponse struct {
	Language LanguageJSON `json:"language"`
	Words    []WordJSON   `json:"words"`
}

// LanguageJSON is the wire form of a domain.Language.
type LanguageJSON struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	UserID     uuid.UUID  `json:"user_id"`
	Head       *uuid.UUID `json:"head"`
	TotalScore int        `json:"total_score"`
	CreatedAt  time.Time  `json:"created_at"`
}

// WordJSON is the wire form of a domain.Word.
type WordJSON struct {
	ID             uuid.UUID  `json:"id"`
	LanguageID     uuid.UUID  `json:"language_id"`
	Original       string     `json:"original"`
	Translation    string     `json:"translation"`
	MemoryValue    int        `json:"memory_value"`
	CorrectCount   int        `json:"correct_count"`
	IncorrectCount int        `json:"incorrect_count"`
	Next           *uuid.UUID `json:"next"`
}

func nextWordToResponse(n *word_review.NextWord) NextWordResponse {
	return NextWordResponse{
		NextWord:           n.Word,
		TotalScore:         n.TotalScore,
		WordCorrectCount:   n.CorrectCount,
		WordIncorrectCount: n.IncorrectCount,
	}
}

func guessResultToResponse(r *word_review.GuessResult) GuessResponse {
	return GuessResponse{
		NextWord:           r.NextWord,
		TotalScore:         r.TotalScore,
		WordCorrectCount:   r.WordCorrectCount,
		WordIncorrectCount: r.WordIncorrectCount,
		Answer:             r.Answer,
		IsCorrect:          r.IsCorrect,
	}
}

func overviewToResponse(o *word_review.LanguageOverview) LanguageResponse {
	words := make([]WordJSON, 0, len(o.Words))
	for _, w := range o.Words {
		words = append(words, wordToJSON(w))
	}
	return LanguageResponse{
		Language: LanguageJSON{
			ID:         o.Language.ID,
			Name:       o.Language.Name,
			UserID:     o.Language.UserID,
			Head:       o.Language.Head,
			TotalScore: o.Language.TotalScore,
			CreatedAt:  o.Language.CreatedAt,
		},
		Words: words,
	}
}

func wordToJSON(w *domain.Word) WordJSON {
	return WordJSON{
		ID:             w.ID,
		LanguageID:     w.LanguageID,
		Original:       w.Original,
		Translation:    w.Translation,
		MemoryValue:    w.Strength,
		CorrectCount:   w.CorrectCount,
		IncorrectCount: w.IncorrectCount,
		Next:           w.Next,
	}
}
