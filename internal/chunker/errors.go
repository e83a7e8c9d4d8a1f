package chunker

import "errors"

var (
	// ErrInvalidConfig is returned at construction for unusable budgets or
	// a missing tokenizer.
	ErrInvalidConfig = errors.New("invalid chunking config")

	// ErrUnknownStrategy is returned for an unrecognized strategy name.
	ErrUnknownStrategy = errors.New("unknown chunking strategy")
)
