//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-api/internal/domain"
	"github.com/phrazzld/lingo-api/internal/domain/drill"
	"github.com/phrazzld/lingo-api/internal/platform/postgres"
	"github.com/phrazzld/lingo-api/internal/store"
	"github.com/phrazzld/lingo-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func seedUser(ctx context.Context, t *testing.T, tx *sql.Tx, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(email, "password-long-enough")
	require.NoError(t, err)
	require.NoError(t, postgres.NewPostgresUserStore(tx, bcrypt.MinCost, nil).Create(ctx, user))
	return user
}

func TestUserStore_Integration(t *testing.T) {
	t.Parallel()
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		users := postgres.NewPostgresUserStore(tx, bcrypt.MinCost, nil)

		user := seedUser(ctx, t, tx, "Store-Test@Example.com")
		assert.Empty(t, user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("password-long-enough")))

		got, err := users.GetByEmail(ctx, "store-test@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)

		got, err = users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "store-test@example.com", got.Email)

		_, err = users.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestUserStore_DuplicateEmail_Integration(t *testing.T) {
	t.Parallel()
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		seedUser(ctx, t, tx, "dup@example.com")

		again, err := domain.NewUser("dup@example.com", "password-long-enough")
		require.NoError(t, err)
		err = postgres.NewPostgresUserStore(tx, bcrypt.MinCost, nil).Create(ctx, again)
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})
}

func TestLanguageAndWords_Integration(t *testing.T) {
	t.Parallel()
	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		user := seedUser(ctx, t, tx, "words@example.com")

		languages := postgres.NewPostgresLanguageStore(tx, nil)
		words := postgres.NewPostgresWordStore(tx, nil)

		lang, err := domain.NewLanguage(user.ID, "Italian")
		require.NoError(t, err)
		require.NoError(t, languages.Create(ctx, lang))

		chain, err := drill.BuildChain(nil, nil)
		require.NoError(t, err)
		var fresh []*domain.Word
		for _, pair := range [][2]string{{"uno", "one"}, {"due", "two"}, {"tre", "three"}} {
			w, err := domain.NewWord(lang.ID, pair[0], pair[1])
			require.NoError(t, err)
			fresh = append(fresh, w)
		}
		require.NoError(t, drill.Append(chain, fresh...))

		require.NoError(t, words.CreateMultiple(ctx, drill.Flatten(chain)))
		lang.Head = chain.HeadID()
		require.NoError(t, languages.UpdateProgress(ctx, lang))
		assert.Equal(t, 1, lang.Version)

		stored, err := words.ListByLanguage(ctx, lang.ID)
		require.NoError(t, err)
		loaded, err := languages.GetByUserID(ctx, user.ID)
		require.NoError(t, err)

		rebuilt, err := drill.BuildChain(stored, loaded.Head)
		require.NoError(t, err)
		assert.Equal(t, chain.IDs(), rebuilt.IDs())

		// A stale version must not overwrite newer progress.
		stale := *loaded
		stale.Version = 0
		assert.ErrorIs(t, languages.UpdateProgress(ctx, &stale), store.ErrConflict)

		_, err = words.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrWordNotFound)

		_, err = languages.GetByUserID(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrLanguageNotFound)
	})
}
