package drill

import (
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-api/internal/domain"
	"github.com/stretchr/testify/require"
)

var testLanguageID = uuid.MustParse("5b0c4a8e-1f5a-4f0e-9d55-8f0f1d7d2c11")

// linkedWords returns one word per label, linked in the given order.
func linkedWords(t *testing.T, labels ...string) []*domain.Word {
	t.Helper()

	words := make([]*domain.Word, len(labels))
	for i, label := range labels {
		w, err := domain.NewWord(testLanguageID, label, "t-"+label)
		require.NoError(t, err)
		words[i] = w
	}
	for i := 0; i+1 < len(words); i++ {
		next := words[i+1].ID
		words[i].Next = &next
	}
	return words
}

func headOf(words []*domain.Word) *uuid.UUID {
	if len(words) == 0 {
		return nil
	}
	id := words[0].ID
	return &id
}

func labelsOf(words []*domain.Word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.Original
	}
	return out
}

func mustBuild(t *testing.T, words []*domain.Word) *Chain {
	t.Helper()
	c, err := BuildChain(words, headOf(words))
	require.NoError(t, err)
	return c
}
