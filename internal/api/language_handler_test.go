package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-api/internal/api/shared"
	"github.com/phrazzld/lingo-api/internal/domain"
	"github.com/phrazzld/lingo-api/internal/domain/drill"
	"github.com/phrazzld/lingo-api/internal/mocks"
	"github.com/phrazzld/lingo-api/internal/platform/logger"
	"github.com/phrazzld/lingo-api/internal/service/word_review"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLanguageHandler(svc word_review.WordReviewService) *LanguageHandler {
	log, _ := logger.NewTestLogger()
	return NewLanguageHandler(svc, log)
}

func TestNewLanguageHandler_NilLogger(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewLanguageHandler(&mocks.MockWordReviewService{}, nil) })
}

func TestLanguageHandler_GetHead(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("returns the head word", func(t *testing.T) {
		t.Parallel()
		svc := &mocks.MockWordReviewService{
			Next: &word_review.NextWord{Word: "hola", TotalScore: 7, CorrectCount: 2, IncorrectCount: 1},
		}
		rr := httptest.NewRecorder()
		newLanguageHandler(svc).GetHead(rr, newRequest(t, http.MethodGet, "/api/language/head", nil, &userID))

		require.Equal(t, http.StatusOK, rr.Code)
		var body map[string]interface{}
		decodeBody(t, rr, &body)
		assert.Equal(t, "hola", body["nextWord"])
		assert.EqualValues(t, 7, body["totalScore"])
		assert.EqualValues(t, 2, body["wordCorrectCount"])
		assert.EqualValues(t, 1, body["wordIncorrectCount"])
		assert.Equal(t, []uuid.UUID{userID}, svc.UserIDs)
	})

	t.Run("no language", func(t *testing.T) {
		t.Parallel()
		svc := &mocks.MockWordReviewService{Err: word_review.ErrLanguageNotFound}
		rr := httptest.NewRecorder()
		newLanguageHandler(svc).GetHead(rr, newRequest(t, http.MethodGet, "/api/language/head", nil, &userID))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		var body shared.ErrorResponse
		decodeBody(t, rr, &body)
		assert.Equal(t, "You don't have any languages", body.Error)
		assert.NotEmpty(t, body.TraceID)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()
		svc := &mocks.MockWordReviewService{}
		rr := httptest.NewRecorder()
		newLanguageHandler(svc).GetHead(rr, newRequest(t, http.MethodGet, "/api/language/head", nil, nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, 0, svc.CallCount())
	})
}

func TestLanguageHandler_SubmitGuess(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	result := &word_review.GuessResult{
		NextWord:           "adios",
		TotalScore:         3,
		WordCorrectCount:   0,
		WordIncorrectCount: 4,
		Answer:             "hello",
		IsCorrect:          true,
	}

	tests := []struct {
		name        string
		body        interface{}
		svcErr      error
		wantStatus  int
		wantError   string
		wantGuesses []string
	}{
		{
			name:        "correct guess",
			body:        map[string]string{"guess": "hello"},
			wantStatus:  http.StatusOK,
			wantGuesses: []string{"hello"},
		},
		{
			name:        "missing guess field",
			body:        map[string]string{},
			svcErr:      word_review.ErrMissingGuess,
			wantStatus:  http.StatusBadRequest,
			wantError:   "Missing 'guess' in request body",
			wantGuesses: []string{""},
		},
		{
			name:        "empty body",
			body:        nil,
			svcErr:      word_review.ErrMissingGuess,
			wantStatus:  http.StatusBadRequest,
			wantError:   "Missing 'guess' in request body",
			wantGuesses: []string{""},
		},
		{
			name:       "malformed json",
			body:       `{"guess":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request format",
		},
		{
			name:        "broken queue",
			body:        map[string]string{"guess": "hello"},
			svcErr:      word_review.NewServiceError("submit_guess", "failed", fmt.Errorf("%w: cycle", drill.ErrBrokenChain)),
			wantStatus:  http.StatusInternalServerError,
			wantError:   "Word queue is corrupted",
			wantGuesses: []string{"hello"},
		},
		{
			name:        "single word",
			body:        map[string]string{"guess": "hello"},
			svcErr:      drill.ErrChainExhausted,
			wantStatus:  http.StatusConflict,
			wantError:   "Add at least two words to start practicing",
			wantGuesses: []string{"hello"},
		},
		{
			name:        "internal failure hides detail",
			body:        map[string]string{"guess": "hello"},
			svcErr:      errors.New("dial tcp 10.1.1.1:5432: connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantError:   "Failed to submit guess",
			wantGuesses: []string{"hello"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &mocks.MockWordReviewService{
				SubmitGuessFn: func(ctx context.Context, id uuid.UUID, guess string) (*word_review.GuessResult, error) {
					if tt.svcErr != nil {
						return nil, tt.svcErr
					}
					return result, nil
				},
			}
			rr := httptest.NewRecorder()
			newLanguageHandler(svc).SubmitGuess(rr,
				newRequest(t, http.MethodPost, "/api/language/guess", tt.body, &userID))

			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			assert.Equal(t, tt.wantGuesses, svc.Guesses)

			if tt.wantError != "" {
				var body shared.ErrorResponse
				decodeBody(t, rr, &body)
				assert.Equal(t, tt.wantError, body.Error)
				return
			}

			var body GuessResponse
			decodeBody(t, rr, &body)
			assert.Equal(t, guessResultToResponse(result), body)
		})
	}
}

func TestLanguageHandler_GetLanguage(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	lang, err := domain.NewLanguage(userID, "Spanish")
	require.NoError(t, err)
	first, err := domain.NewWord(lang.ID, "hola", "hello")
	require.NoError(t, err)
	second, err := domain.NewWord(lang.ID, "adios", "goodbye")
	require.NoError(t, err)
	first.Next = &second.ID
	lang.Head = &first.ID

	svc := &mocks.MockWordReviewService{
		Overview: &word_review.LanguageOverview{Language: lang, Words: []*domain.Word{first, second}},
	}
	rr := httptest.NewRecorder()
	newLanguageHandler(svc).GetLanguage(rr, newRequest(t, http.MethodGet, "/api/language", nil, &userID))

	require.Equal(t, http.StatusOK, rr.Code)
	var body LanguageResponse
	decodeBody(t, rr, &body)
	assert.Equal(t, "Spanish", body.Language.Name)
	require.Len(t, body.Words, 2)
	assert.Equal(t, "hola", body.Words[0].Original)
	assert.Equal(t, second.ID, *body.Words[0].Next)
	assert.Nil(t, body.Words[1].Next)
	assert.Equal(t, 1, body.Words[1].MemoryValue)
}
