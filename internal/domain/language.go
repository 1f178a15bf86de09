package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultLanguageName is used when a user registers without naming a language.
const DefaultLanguageName = "Default"

// Language validation errors
var (
	ErrEmptyLanguageID     = errors.New("language ID cannot be empty")
	ErrEmptyLanguageUserID = errors.New("language user ID cannot be empty")
	ErrEmptyLanguageName   = errors.New("language name cannot be empty")
	ErrNegativeTotalScore  = errors.New("total score cannot be negative")
)

// Language is a user's drill profile: the head of the word queue, the running
// score and the version token used for optimistic concurrency.
type Language struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Name       string     `json:"name"`
	Head       *uuid.UUID `json:"head"`
	TotalScore int        `json:"total_score"`
	// Version increments on every persisted change to the queue.
	Version   int       `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewLanguage creates an empty language profile for a user.
func NewLanguage(userID uuid.UUID, name string) (*Language, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultLanguageName
	}

	now := time.Now().UTC()
	lang := &Language{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := lang.Validate(); err != nil {
		return nil, err
	}
	return lang, nil
}

// Validate checks if the Language has valid data.
func (l *Language) Validate() error {
	if l.ID == uuid.Nil {
		return ErrEmptyLanguageID
	}
	if l.UserID == uuid.Nil {
		return ErrEmptyLanguageUserID
	}
	if strings.TrimSpace(l.Name) == "" {
		return ErrEmptyLanguageName
	}
	if l.TotalScore < 0 {
		return ErrNegativeTotalScore
	}
	return nil
}
