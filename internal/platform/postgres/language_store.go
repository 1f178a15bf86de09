package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-api/internal/domain"
	"github.com/phrazzld/lingo-api/internal/platform/logger"
	"github.com/phrazzld/lingo-api/internal/store"
)

const languageColumns = `id, user_id, name, head_id, total_score, version, created_at, updated_at`

// PostgresLanguageStore implements store.LanguageStore on PostgreSQL.
type PostgresLanguageStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLanguageStore creates a language store. If logger is nil, a
// default logger is used.
func NewPostgresLanguageStore(db store.DBTX, logger *slog.Logger) *PostgresLanguageStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLanguageStore{
		db:     db,
		logger: logger.With(slog.String("component", "language_store")),
	}
}

var _ store.LanguageStore = (*PostgresLanguageStore)(nil)

// WithTx implements store.LanguageStore.WithTx
func (s *PostgresLanguageStore) WithTx(tx *sql.Tx) store.LanguageStore {
	return &PostgresLanguageStore{db: tx, logger: s.logger}
}

// Create implements store.LanguageStore.Create
func (s *PostgresLanguageStore) Create(ctx context.Context, language *domain.Language) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := language.Validate(); err != nil {
		log.Warn("language validation failed during create",
			slog.String("error", err.Error()),
			slog.String("language_id", language.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO languages (id, user_id, name, head_id, total_score, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		language.ID,
		language.UserID,
		language.Name,
		language.Head,
		language.TotalScore,
		language.Version,
		language.CreatedAt,
		language.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create language",
			slog.String("error", err.Error()),
			slog.String("language_id", language.ID.String()),
			slog.String("user_id", language.UserID.String()))
		return MapError(err)
	}

	log.Debug("language created", slog.String("language_id", language.ID.String()))
	return nil
}

// GetByID implements store.LanguageStore.GetByID
func (s *PostgresLanguageStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Language, error) {
	return s.getOne(ctx, `SELECT `+languageColumns+` FROM languages WHERE id = $1`, id)
}

// GetByUserID implements store.LanguageStore.GetByUserID
func (s *PostgresLanguageStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Language, error) {
	return s.getOne(ctx, `SELECT `+languageColumns+` FROM languages WHERE user_id = $1`, userID)
}

func (s *PostgresLanguageStore) getOne(ctx context.Context, query string, arg uuid.UUID) (*domain.Language, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var lang domain.Language
	var head uuid.NullUUID
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&lang.ID,
		&lang.UserID,
		&lang.Name,
		&head,
		&lang.TotalScore,
		&lang.Version,
		&lang.CreatedAt,
		&lang.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("language not found", slog.String("key", arg.String()))
			return nil, store.ErrLanguageNotFound
		}
		log.Error("failed to get language",
			slog.String("key", arg.String()),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	if head.Valid {
		id := head.UUID
		lang.Head = &id
	}
	return &lang, nil
}

// UpdateProgress implements store.LanguageStore.UpdateProgress with a
// version compare-and-swap.
func (s *PostgresLanguageStore) UpdateProgress(ctx context.Context, language *domain.Language) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := language.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	updatedAt := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, `
		UPDATE languages
		SET head_id = $1, total_score = $2, version = version + 1, updated_at = $3
		WHERE id = $4 AND version = $5
	`,
		language.Head,
		language.TotalScore,
		updatedAt,
		language.ID,
		language.Version,
	)
	if err != nil {
		log.Error("failed to update language progress",
			slog.String("error", err.Error()),
			slog.String("language_id", language.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrConflict); err != nil {
		if !errors.Is(err, store.ErrConflict) {
			return err
		}
		// Zero rows: either the version moved on or the row is gone.
		if _, getErr := s.GetByID(ctx, language.ID); errors.Is(getErr, store.ErrLanguageNotFound) {
			return store.ErrLanguageNotFound
		}
		log.Info("language version conflict",
			slog.String("language_id", language.ID.String()),
			slog.Int("version", language.Version))
		return store.ErrConflict
	}

	language.Version++
	language.UpdatedAt = updatedAt
	return nil
}

// ListIDs implements store.LanguageStore.ListIDs
func (s *PostgresLanguageStore) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM languages ORDER BY created_at`)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, MapError(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return ids, nil
}
