package drill

import "errors"

var (
	// ErrBrokenChain means the persisted links do not describe a single path
	// that visits every word exactly once.
	ErrBrokenChain = errors.New("broken word chain")

	// ErrEmptyChain means the language has no words to review.
	ErrEmptyChain = errors.New("word chain is empty")

	// ErrChainExhausted means the chain is too short to move the head word.
	ErrChainExhausted = errors.New("word chain needs at least two words")
)
