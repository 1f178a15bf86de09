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

const wordColumns = `id, language_id, original, translation, correct_count, incorrect_count,
	strength, next_id, created_at, updated_at`

// PostgresWordStore implements store.WordStore on PostgreSQL.
type PostgresWordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordStore creates a word store. If logger is nil, a default
// logger is used.
func NewPostgresWordStore(db store.DBTX, logger *slog.Logger) *PostgresWordStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWordStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_store")),
	}
}

var _ store.WordStore = (*PostgresWordStore)(nil)

// WithTx implements store.WordStore.WithTx
func (s *PostgresWordStore) WithTx(tx *sql.Tx) store.WordStore {
	return &PostgresWordStore{db: tx, logger: s.logger}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanWord(row rowScanner) (*domain.Word, error) {
	var w domain.Word
	var next uuid.NullUUID
	if err := row.Scan(
		&w.ID,
		&w.LanguageID,
		&w.Original,
		&w.Translation,
		&w.CorrectCount,
		&w.IncorrectCount,
		&w.Strength,
		&next,
		&w.CreatedAt,
		&w.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if next.Valid {
		id := next.UUID
		w.Next = &id
	}
	return &w, nil
}

// ListByLanguage implements store.WordStore.ListByLanguage
func (s *PostgresWordStore) ListByLanguage(ctx context.Context, languageID uuid.UUID) ([]*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+wordColumns+` FROM words WHERE language_id = $1`, languageID)
	if err != nil {
		log.Error("failed to list words",
			slog.String("language_id", languageID.String()),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var words []*domain.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, MapError(err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	log.Debug("listed words",
		slog.String("language_id", languageID.String()),
		slog.Int("count", len(words)))
	return words, nil
}

// GetByID implements store.WordStore.GetByID
func (s *PostgresWordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	w, err := scanWord(s.db.QueryRowContext(ctx,
		`SELECT `+wordColumns+` FROM words WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrWordNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get word",
			slog.String("word_id", id.String()),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return w, nil
}

// CreateMultiple implements store.WordStore.CreateMultiple
func (s *PostgresWordStore) CreateMultiple(ctx context.Context, words []*domain.Word) error {
	if len(words) == 0 {
		return nil
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	for _, w := range words {
		if err := w.Validate(); err != nil {
			log.Warn("word validation failed during create",
				slog.String("word_id", w.ID.String()),
				slog.String("error", err.Error()))
			return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
		}
	}

	stmt, err := s.db.PrepareContext(ctx, `
		INSERT INTO words (id, language_id, original, translation, correct_count,
			incorrect_count, strength, next_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`)
	if err != nil {
		return MapError(err)
	}
	defer func() { _ = stmt.Close() }()

	for _, w := range words {
		if _, err := stmt.ExecContext(ctx,
			w.ID,
			w.LanguageID,
			w.Original,
			w.Translation,
			w.CorrectCount,
			w.IncorrectCount,
			w.Strength,
			w.Next,
			w.CreatedAt,
			w.UpdatedAt,
		); err != nil {
			log.Error("failed to insert word",
				slog.String("word_id", w.ID.String()),
				slog.String("error", err.Error()))
			return MapError(err)
		}
	}

	log.Debug("words created", slog.Int("count", len(words)))
	return nil
}

// UpdateMany implements store.WordStore.UpdateMany
func (s *PostgresWordStore) UpdateMany(ctx context.Context, words []*domain.Word) error {
	if len(words) == 0 {
		return nil
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	stmt, err := s.db.PrepareContext(ctx, `
		UPDATE words
		SET correct_count = $1, incorrect_count = $2, strength = $3, next_id = $4, updated_at = $5
		WHERE id = $6
	`)
	if err != nil {
		return MapError(err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC()
	for _, w := range words {
		result, err := stmt.ExecContext(ctx,
			w.CorrectCount,
			w.IncorrectCount,
			w.Strength,
			w.Next,
			now,
			w.ID,
		)
		if err != nil {
			log.Error("failed to update word",
				slog.String("word_id", w.ID.String()),
				slog.String("error", err.Error()))
			return MapError(err)
		}
		if err := CheckRowsAffected(result, store.ErrWordNotFound); err != nil {
			return err
		}
		w.UpdatedAt = now
	}

	log.Debug("words updated", slog.Int("count", len(words)))
	return nil
}
