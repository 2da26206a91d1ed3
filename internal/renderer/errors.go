package renderer

import (
	"errors"
	"fmt"

	"github.com/dshills/consolekit/internal/renderer/core"
)

var (
	// ErrNotResizable indicates the backend cannot change its window size.
	ErrNotResizable = errors.New("backend does not support resizing")

	// ErrNoBackend indicates a controller was created without a backend.
	ErrNoBackend = errors.New("no backend")
)

// AllocationError reports a render surface that could not be allocated.
// It is fatal: once returned, the controller refuses further frames.
type AllocationError struct {
	Size core.Size
	Err  error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("allocating %v render surface: %v", e.Size, e.Err)
}

func (e *AllocationError) Unwrap() error {
	return e.Err
}
