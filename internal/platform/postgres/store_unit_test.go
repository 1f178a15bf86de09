package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/lingo-api/internal/domain"
	"github.com/phrazzld/lingo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func testLanguage(t *testing.T) *domain.Language {
	t.Helper()
	lang, err := domain.NewLanguage(uuid.New(), "Spanish")
	require.NoError(t, err)
	head := uuid.New()
	lang.Head = &head
	lang.TotalScore = 4
	lang.Version = 7
	return lang
}

func languageRow(lang *domain.Language) *sqlmock.Rows {
	var head any
	if lang.Head != nil {
		head = lang.Head.String()
	}
	return sqlmock.NewRows([]string{
		"id", "user_id", "name", "head_id", "total_score", "version", "created_at", "updated_at",
	}).AddRow(
		lang.ID.String(), lang.UserID.String(), lang.Name, head,
		lang.TotalScore, lang.Version, lang.CreatedAt, lang.UpdatedAt,
	)
}

func TestLanguageStore_UpdateProgress(t *testing.T) {
	t.Parallel()

	t.Run("bumps version on success", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		lang := testLanguage(t)

		mock.ExpectExec("UPDATE languages").
			WithArgs(sqlmock.AnyArg(), 4, sqlmock.AnyArg(), sqlmock.AnyArg(), 7).
			WillReturnResult(sqlmock.NewResult(0, 1))

		s := NewPostgresLanguageStore(db, nil)
		require.NoError(t, s.UpdateProgress(context.Background(), lang))
		assert.Equal(t, 8, lang.Version)
	})

	t.Run("conflict when version moved", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		lang := testLanguage(t)

		mock.ExpectExec("UPDATE languages").
			WillReturnResult(sqlmock.NewResult(0, 0))
		current := *lang
		current.Version = 8
		mock.ExpectQuery("SELECT (.+) FROM languages WHERE id").
			WillReturnRows(languageRow(&current))

		s := NewPostgresLanguageStore(db, nil)
		err := s.UpdateProgress(context.Background(), lang)
		assert.ErrorIs(t, err, store.ErrConflict)
		assert.Equal(t, 7, lang.Version)
	})

	t.Run("not found when row is gone", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		lang := testLanguage(t)

		mock.ExpectExec("UPDATE languages").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT (.+) FROM languages WHERE id").
			WillReturnError(sql.ErrNoRows)

		s := NewPostgresLanguageStore(db, nil)
		err := s.UpdateProgress(context.Background(), lang)
		assert.ErrorIs(t, err, store.ErrLanguageNotFound)
	})

	t.Run("rejects invalid language", func(t *testing.T) {
		t.Parallel()
		db, _ := newMockDB(t)
		lang := testLanguage(t)
		lang.TotalScore = -1

		s := NewPostgresLanguageStore(db, nil)
		err := s.UpdateProgress(context.Background(), lang)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.ErrorIs(t, err, domain.ErrNegativeTotalScore)
	})
}

func TestLanguageStore_GetByUserID(t *testing.T) {
	t.Parallel()

	t.Run("maps null head", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		lang := testLanguage(t)
		lang.Head = nil

		mock.ExpectQuery("SELECT (.+) FROM languages WHERE user_id").
			WithArgs(lang.UserID).
			WillReturnRows(languageRow(lang))

		got, err := NewPostgresLanguageStore(db, nil).GetByUserID(context.Background(), lang.UserID)
		require.NoError(t, err)
		assert.Equal(t, lang.ID, got.ID)
		assert.Nil(t, got.Head)
		assert.Equal(t, 7, got.Version)
	})

	t.Run("maps head", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		lang := testLanguage(t)

		mock.ExpectQuery("SELECT (.+) FROM languages WHERE user_id").
			WillReturnRows(languageRow(lang))

		got, err := NewPostgresLanguageStore(db, nil).GetByUserID(context.Background(), lang.UserID)
		require.NoError(t, err)
		require.NotNil(t, got.Head)
		assert.Equal(t, *lang.Head, *got.Head)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT (.+) FROM languages WHERE user_id").
			WillReturnError(sql.ErrNoRows)

		_, err := NewPostgresLanguageStore(db, nil).GetByUserID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrLanguageNotFound)
	})
}

func TestWordStore_UpdateMany(t *testing.T) {
	t.Parallel()

	langID := uuid.New()
	a, err := domain.NewWord(langID, "uno", "one")
	require.NoError(t, err)
	b, err := domain.NewWord(langID, "dos", "two")
	require.NoError(t, err)
	next := a.ID
	b.Next = &next

	t.Run("updates every word", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)

		prep := mock.ExpectPrepare("UPDATE words")
		prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
		prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))

		s := NewPostgresWordStore(db, nil)
		require.NoError(t, s.UpdateMany(context.Background(), []*domain.Word{a.Clone(), b.Clone()}))
	})

	t.Run("missing word", func(t *testing.T) {
		t.Parallel()
		db, mock := newMockDB(t)

		prep := mock.ExpectPrepare("UPDATE words")
		prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 0))

		s := NewPostgresWordStore(db, nil)
		err := s.UpdateMany(context.Background(), []*domain.Word{a.Clone(), b.Clone()})
		assert.ErrorIs(t, err, store.ErrWordNotFound)
	})

	t.Run("no words is a no-op", func(t *testing.T) {
		t.Parallel()
		db, _ := newMockDB(t)
		assert.NoError(t, NewPostgresWordStore(db, nil).UpdateMany(context.Background(), nil))
	})
}

func TestWordStore_ListByLanguage(t *testing.T) {
	t.Parallel()
	db, mock := newMockDB(t)

	langID := uuid.New()
	first, second := uuid.New(), uuid.New()
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "language_id", "original", "translation", "correct_count", "incorrect_count",
		"strength", "next_id", "created_at", "updated_at",
	}).
		AddRow(first.String(), langID.String(), "uno", "one", 2, 1, 4, second.String(), now, now).
		AddRow(second.String(), langID.String(), "dos", "two", 0, 0, 1, nil, now, now)

	mock.ExpectQuery("SELECT (.+) FROM words WHERE language_id").
		WithArgs(langID).
		WillReturnRows(rows)

	words, err := NewPostgresWordStore(db, nil).ListByLanguage(context.Background(), langID)
	require.NoError(t, err)
	require.Len(t, words, 2)

	assert.Equal(t, first, words[0].ID)
	assert.Equal(t, 4, words[0].Strength)
	require.NotNil(t, words[0].Next)
	assert.Equal(t, second, *words[0].Next)
	assert.Nil(t, words[1].Next)
}

func TestWordStore_CreateMultiple_Validation(t *testing.T) {
	t.Parallel()
	db, _ := newMockDB(t)

	bad := &domain.Word{ID: uuid.New(), LanguageID: uuid.New(), Original: "x", Translation: "y"}
	err := NewPostgresWordStore(db, nil).CreateMultiple(context.Background(), []*domain.Word{bad})
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.True(t, errors.Is(err, domain.ErrInvalidStrength))
}

func TestNewStores_PanicOnNilDB(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewPostgresWordStore(nil, nil) })
	assert.Panics(t, func() { NewPostgresLanguageStore(nil, nil) })
	assert.Panics(t, func() { NewPostgresUserStore(nil, 0, nil) })
}
