package drill

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-api/internal/domain"
)

// Append links new words after the current tail, in the order given. The
// words keep their own counters and strength; callers normally pass words
// from domain.NewWord. Appending a word whose id is already in the chain
// fails with ErrBrokenChain and leaves the chain unchanged.
func Append(c *Chain, words ...*domain.Word) error {
	seen := make(map[uuid.UUID]struct{}, len(words))
	for _, w := range words {
		if w == nil {
			return fmt.Errorf("%w: cannot append nil word", ErrBrokenChain)
		}
		if _, ok := c.Word(w.ID); ok {
			return fmt.Errorf("%w: word %s already in chain", ErrBrokenChain, w.ID)
		}
		if _, ok := seen[w.ID]; ok {
			return fmt.Errorf("%w: duplicate word %s", ErrBrokenChain, w.ID)
		}
		seen[w.ID] = struct{}{}
	}

	for _, w := range words {
		c.words[w.ID] = w.Clone()
		c.order = append(c.order, w.ID)
	}
	c.relink()
	return nil
}
