package console

import (
	"errors"
	"fmt"

	"github.com/dshills/consolekit/internal/renderer/core"
)

// Errors returned by grid and sub-view operations.
var (
	// ErrContractViolation is matched by every window bounds failure.
	// It signals caller misuse and is never recovered by clamping.
	ErrContractViolation = errors.New("contract violation")

	// ErrInvalidSize indicates a grid dimension below 1.
	ErrInvalidSize = errors.New("invalid grid size")

	// ErrOutOfBounds indicates a cell coordinate outside the grid.
	ErrOutOfBounds = errors.New("cell out of bounds")

	// ErrNoBacking indicates a sub-view without a backing grid.
	ErrNoBacking = errors.New("sub-view has no backing grid")

	// ErrDetached indicates the backing grid was resized after the
	// sub-view was built. SetWindow must succeed again before use.
	ErrDetached = errors.New("sub-view detached from resized grid")
)

// Edge identifies which window constraint failed.
type Edge int

const (
	// EdgeWidth: the window is wider than the backing grid.
	EdgeWidth Edge = iota
	// EdgeHeight: the window is taller than the backing grid.
	EdgeHeight
	// EdgeLeft: the window starts left of column 0.
	EdgeLeft
	// EdgeTop: the window starts above row 0.
	EdgeTop
	// EdgeRight: left+width runs past the backing width.
	EdgeRight
	// EdgeBottom: top+height runs past the backing height.
	EdgeBottom
)

// String returns the edge name.
func (e Edge) String() string {
	switch e {
	case EdgeWidth:
		return "width"
	case EdgeHeight:
		return "height"
	case EdgeLeft:
		return "left"
	case EdgeTop:
		return "top"
	case EdgeRight:
		return "right"
	case EdgeBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// BoundsError describes a window that does not fit inside its backing grid.
type BoundsError struct {
	Edge    Edge
	Window  core.Rect
	Backing core.Size
}

func (e *BoundsError) Error() string {
	var reason string
	switch e.Edge {
	case EdgeWidth:
		reason = "the window is too wide for the grid"
	case EdgeHeight:
		reason = "the window is too tall for the grid"
	case EdgeLeft:
		reason = "the left of the window cannot be less than 0"
	case EdgeTop:
		reason = "the top of the window cannot be less than 0"
	case EdgeRight:
		reason = "the window left + width is too wide for the grid"
	case EdgeBottom:
		reason = "the window top + height is too tall for the grid"
	default:
		reason = "the window does not fit the grid"
	}
	return fmt.Sprintf("window %v on %v grid: %s", e.Window, e.Backing, reason)
}

// Unwrap returns ErrContractViolation.
func (e *BoundsError) Unwrap() error {
	return ErrContractViolation
}

// CheckWindow validates window against a backing grid of the given size.
// Checks run in a fixed order and the first failure is returned. A window
// with a negative dimension is rejected last. The edge checks subtract
// rather than add so a huge offset cannot overflow past them.
func CheckWindow(window core.Rect, backing core.Size) error {
	fail := func(edge Edge) error {
		return &BoundsError{Edge: edge, Window: window, Backing: backing}
	}

	switch {
	case window.Width > backing.Width:
		return fail(EdgeWidth)
	case window.Height > backing.Height:
		return fail(EdgeHeight)
	case window.X < 0:
		return fail(EdgeLeft)
	case window.Y < 0:
		return fail(EdgeTop)
	case window.X > backing.Width-window.Width:
		return fail(EdgeRight)
	case window.Y > backing.Height-window.Height:
		return fail(EdgeBottom)
	case window.Width < 0:
		return fail(EdgeWidth)
	case window.Height < 0:
		return fail(EdgeHeight)
	}
	return nil
}
