package script

import "errors"

// Errors for script state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("script state is closed")

	// ErrNoGrid is returned when a state is built without a grid.
	ErrNoGrid = errors.New("script state needs a grid")
)
