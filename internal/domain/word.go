package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// InitialStrength is the streak strength of a word that has never been
// answered correctly, and the value a wrong answer resets it to.
const InitialStrength = 1

// Word validation errors
var (
	ErrEmptyWordID         = errors.New("word ID cannot be empty")
	ErrEmptyWordLanguageID = errors.New("word language ID cannot be empty")
	ErrEmptyOriginal       = errors.New("word original text cannot be empty")
	ErrEmptyTranslation    = errors.New("word translation cannot be empty")
	ErrInvalidStrength     = errors.New("word strength must be at least 1")
	ErrNegativeCount       = errors.New("word counters cannot be negative")
)

// Word is a single original/translation pair in a language's review queue.
// Next links to the word that follows it in the queue; nil marks the tail.
type Word struct {
	ID             uuid.UUID  `json:"id"`
	LanguageID     uuid.UUID  `json:"language_id"`
	Original       string     `json:"original"`
	Translation    string     `json:"translation"`
	CorrectCount   int        `json:"correct_count"`
	IncorrectCount int        `json:"incorrect_count"`
	Strength       int        `json:"strength"`
	Next           *uuid.UUID `json:"next"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewWord creates an unlinked word with initial strength.
func NewWord(languageID uuid.UUID, original, translation string) (*Word, error) {
	now := time.Now().UTC()
	w := &Word{
		ID:          uuid.New(),
		LanguageID:  languageID,
		Original:    strings.TrimSpace(original),
		Translation: strings.TrimSpace(translation),
		Strength:    InitialStrength,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// Validate checks if the Word has valid data.
func (w *Word) Validate() error {
	if w.ID == uuid.Nil {
		return ErrEmptyWordID
	}
	if w.LanguageID == uuid.Nil {
		return ErrEmptyWordLanguageID
	}
	if w.Original == "" {
		return ErrEmptyOriginal
	}
	if w.Translation == "" {
		return ErrEmptyTranslation
	}
	if w.Strength < InitialStrength {
		return ErrInvalidStrength
	}
	if w.CorrectCount < 0 || w.IncorrectCount < 0 {
		return ErrNegativeCount
	}
	return nil
}

// NextID returns the id of the following word, or uuid.Nil at the tail.
func (w *Word) NextID() uuid.UUID {
	if w.Next == nil {
		return uuid.Nil
	}
	return *w.Next
}

// Clone returns a copy of the word that shares no pointers with the original.
func (w *Word) Clone() *Word {
	c := *w
	if w.Next != nil {
		next := *w.Next
		c.Next = &next
	}
	return &c
}
