package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptVerifier_Compare(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse battery"), bcrypt.MinCost)
	require.NoError(t, err)

	v := NewBcryptVerifier()
	assert.NoError(t, v.Compare(string(hash), "correct horse battery"))
	assert.ErrorIs(t, v.Compare(string(hash), "wrong"), bcrypt.ErrMismatchedHashAndPassword)
}

func TestBcryptVerifier_EmptyHash(t *testing.T) {
	t.Parallel()

	err := NewBcryptVerifier().Compare("", "")
	assert.ErrorIs(t, err, bcrypt.ErrHashTooShort)
}
