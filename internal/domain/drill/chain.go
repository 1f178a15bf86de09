package drill

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/lingo-api/internal/domain"
)

// Chain is an ordered view over a language's words. Words are held in an
// arena keyed by id and the order is a plain slice of ids, so moving a word
// never copies or re-creates it.
//
// A Chain owns copies of the records it was built from; mutating it leaves
// the caller's slice untouched.
type Chain struct {
	words map[uuid.UUID]*domain.Word
	order []uuid.UUID
}

// BuildChain follows next links from head and returns the resulting chain.
// It fails with ErrBrokenChain when the links are dangling, cyclic, skip a
// word, or when head and words disagree about whether the chain is empty.
func BuildChain(words []*domain.Word, head *uuid.UUID) (*Chain, error) {
	c := &Chain{
		words: make(map[uuid.UUID]*domain.Word, len(words)),
		order: make([]uuid.UUID, 0, len(words)),
	}

	for i, w := range words {
		if w == nil {
			return nil, fmt.Errorf("%w: nil word at index %d", ErrBrokenChain, i)
		}
		if _, dup := c.words[w.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate word %s", ErrBrokenChain, w.ID)
		}
		c.words[w.ID] = w.Clone()
	}

	if head == nil {
		if len(words) > 0 {
			return nil, fmt.Errorf("%w: %d words but no head", ErrBrokenChain, len(words))
		}
		return c, nil
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: head %s set on an empty chain", ErrBrokenChain, *head)
	}

	visited := make(map[uuid.UUID]struct{}, len(words))
	id := *head
	for {
		w, ok := c.words[id]
		if !ok {
			return nil, fmt.Errorf("%w: link to unknown word %s", ErrBrokenChain, id)
		}
		if _, seen := visited[id]; seen {
			return nil, fmt.Errorf("%w: cycle at word %s", ErrBrokenChain, id)
		}
		visited[id] = struct{}{}
		c.order = append(c.order, id)

		if w.Next == nil {
			break
		}
		id = *w.Next
	}

	if len(c.order) != len(c.words) {
		return nil, fmt.Errorf(
			"%w: chain reaches %d of %d words",
			ErrBrokenChain, len(c.order), len(c.words),
		)
	}

	return c, nil
}

// Len returns the number of words in the chain.
func (c *Chain) Len() int {
	return len(c.order)
}

// Head returns the word due for review, or nil when the chain is empty.
func (c *Chain) Head() *domain.Word {
	if len(c.order) == 0 {
		return nil
	}
	return c.words[c.order[0]]
}

// Next returns the word following id, or nil if id is the tail or unknown.
func (c *Chain) Next(id uuid.UUID) *domain.Word {
	for i, cur := range c.order {
		if cur == id {
			if i+1 < len(c.order) {
				return c.words[c.order[i+1]]
			}
			return nil
		}
	}
	return nil
}

// Word looks up a word by id.
func (c *Chain) Word(id uuid.UUID) (*domain.Word, bool) {
	w, ok := c.words[id]
	return w, ok
}

// IDs returns the word ids in queue order.
func (c *Chain) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(c.order))
	copy(ids, c.order)
	return ids
}

// Words returns the words in queue order. The returned words are the
// chain's own records.
func (c *Chain) Words() []*domain.Word {
	out := make([]*domain.Word, len(c.order))
	for i, id := range c.order {
		out[i] = c.words[id]
	}
	return out
}

// HeadID returns the id of the head word, or nil for an empty chain.
func (c *Chain) HeadID() *uuid.UUID {
	if len(c.order) == 0 {
		return nil
	}
	id := c.order[0]
	return &id
}

// relink rewrites every word's Next pointer from the current order.
func (c *Chain) relink() {
	for i, id := range c.order {
		w := c.words[id]
		if i+1 == len(c.order) {
			w.Next = nil
			continue
		}
		next := c.order[i+1]
		w.Next = &next
	}
}
