package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-api/internal/domain"
	"github.com/phrazzld/lingo-api/internal/service/auth"
	"github.com/phrazzld/lingo-api/internal/store"
)

// PasswordVerifier compares a stored hash with a plaintext password.
type PasswordVerifier interface {
	Compare(hashedPassword, password string) error
}

var _ PasswordVerifier = (*auth.BcryptVerifier)(nil)

// UserService registers and authenticates users.
type UserService interface {
	// Register creates a user together with an empty language named
	// languageName (domain.DefaultLanguageName when blank), atomically.
	// Returns store.ErrEmailExists if the email is taken and a
	// domain validation error for bad input.
	Register(ctx context.Context, email, password, languageName string) (*domain.User, *domain.Language, error)

	// Authenticate returns the user whose email and password match.
	// Returns ErrInvalidCredentials for an unknown email or wrong password.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUser retrieves a user by their ID
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore     store.UserStore
	languageStore store.LanguageStore
	verifier      PasswordVerifier
	db            *sql.DB
	logger        *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	languageStore store.LanguageStore,
	verifier PasswordVerifier,
	db *sql.DB,
	logger *slog.Logger,
) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore:     userStore,
		languageStore: languageStore,
		verifier:      verifier,
		db:            db,
		logger:        logger.With("component", "user_service"),
	}
}

// Register implements UserService.Register
func (s *UserServiceImpl) Register(
	ctx context.Context,
	email, password, languageName string,
) (*domain.User, *domain.Language, error) {
	user, err := domain.NewUser(email, password)
	if err != nil {
		s.logger.Debug("rejected registration",
			"error", err,
			"email", email)
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	lang, err := domain.NewLanguage(user.ID, languageName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create language: %w", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.userStore.WithTx(tx).Create(ctx, user); err != nil {
			return err
		}
		return s.languageStore.WithTx(tx).Create(ctx, lang)
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to register an existing email",
				"email", email)
		} else {
			s.logger.Error("failed to register user",
				"error", err,
				"email", email)
		}
		return nil, nil, fmt.Errorf("failed to register user: %w", err)
	}

	// The plaintext password must not outlive the request.
	user.Password = ""

	s.logger.Info("user registered",
		"user_id", user.ID,
		"language_id", lang.ID)
	return user, lang, nil
}

// Authenticate implements UserService.Authenticate
func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login for unknown email", "email", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to retrieve user by email",
			"error", err,
			"email", email)
		return nil, fmt.Errorf("failed to retrieve user by email: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login with wrong password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser implements UserService.GetUser
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			s.logger.Error("failed to retrieve user",
				"error", err,
				"user_id", userID)
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}
