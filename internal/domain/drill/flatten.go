package drill

import "github.com/phrazzld/lingo-api/internal/domain"

// Flatten returns the chain's words in queue order with Next re-derived from
// that order; the last word's Next is nil. The returned records are copies.
func Flatten(c *Chain) []*domain.Word {
	if c == nil {
		return nil
	}
	c.relink()

	out := make([]*domain.Word, len(c.order))
	for i, id := range c.order {
		out[i] = c.words[id].Clone()
	}
	return out
}
