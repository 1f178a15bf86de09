package drill

import (
	"github.com/google/uuid"
	"github.com/phrazzld/lingo-api/internal/domain"
)

// DefaultMaxStrength caps strength growth so repeated doubling never
// overflows.
const DefaultMaxStrength = 1 << 30

// Params configures the scheduler.
type Params struct {
	// MaxStrength is the ceiling for a word's strength.
	MaxStrength int
}

// NewDefaultParams returns the default scheduler parameters.
func NewDefaultParams() Params {
	return Params{MaxStrength: DefaultMaxStrength}
}

// Outcome describes the result of applying one answer to a chain.
type Outcome struct {
	// Head is the word now due for review.
	Head *domain.Word
	// Moved is the word that was just answered, at its new position.
	Moved *domain.Word
	// Correct reports whether the answer was right.
	Correct bool
	// ScoreDelta is added to the language's total score.
	ScoreDelta int
}

// Scheduler repositions the head word of a chain after each answer.
type Scheduler struct {
	params Params
}

// NewScheduler creates a scheduler. Non-positive MaxStrength falls back to
// DefaultMaxStrength.
func NewScheduler(params Params) *Scheduler {
	if params.MaxStrength < domain.InitialStrength {
		params.MaxStrength = DefaultMaxStrength
	}
	return &Scheduler{params: params}
}

// Advance applies an answer to the chain's head word and moves it back.
//
// On a correct answer the word's strength doubles and the word is placed
// strength steps after its old position; a walk that runs past the tail
// leaves it at the tail. On a wrong answer strength resets to 1 and the word
// is placed one step back. Either way the old head's successor becomes the
// new head.
//
// The chain is left untouched when an error is returned.
func (s *Scheduler) Advance(c *Chain, correct bool) (*Outcome, error) {
	if c == nil || c.Len() == 0 {
		return nil, ErrEmptyChain
	}
	if c.Len() < 2 {
		return nil, ErrChainExhausted
	}

	moved := c.Head()
	out := &Outcome{Moved: moved, Correct: correct}

	var steps int
	if correct {
		moved.Strength = s.grow(moved.Strength)
		moved.CorrectCount++
		steps = moved.Strength
		out.ScoreDelta = 1
	} else {
		moved.Strength = domain.InitialStrength
		moved.IncorrectCount++
		steps = 1
	}

	// Index in the current order of the word the head lands behind.
	target := steps
	if last := c.Len() - 1; target > last {
		target = last
	}

	order := make([]uuid.UUID, 0, c.Len())
	order = append(order, c.order[1:target+1]...)
	order = append(order, moved.ID)
	order = append(order, c.order[target+1:]...)
	c.order = order
	c.relink()

	out.Head = c.Head()
	return out, nil
}

func (s *Scheduler) grow(strength int) int {
	if strength < domain.InitialStrength {
		strength = domain.InitialStrength
	}
	if strength > s.params.MaxStrength/2 {
		return s.params.MaxStrength
	}
	return strength * 2
}
