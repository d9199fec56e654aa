package core

import "errors"

var (
	// ErrOutOfBounds is the panic value (wrapped) for grid access outside
	// the grid. Callers are expected to check InBounds first.
	ErrOutOfBounds = errors.New("core: coordinate out of bounds")

	// ErrUnknownCellCode reports a level cell code outside the alphabet.
	ErrUnknownCellCode = errors.New("core: unknown cell code")

	// ErrUnknownGoalType reports a goal whose type is not an obstacle code.
	ErrUnknownGoalType = errors.New("core: unknown goal type")

	// ErrPoolExhausted is returned by a Pool that has no block to hand out.
	ErrPoolExhausted = errors.New("core: pool exhausted")

	// ErrLevelShape reports structurally broken level data.
	ErrLevelShape = errors.New("core: malformed level shape")
)
