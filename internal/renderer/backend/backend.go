// Package backend provides the physical display boundary for the renderer.
//
// A backend is a grid of addressable physical pixels. For the terminal host
// one physical pixel is one terminal cell.
package backend

import (
	"github.com/dshills/consolekit/internal/renderer/core"
)

// Content is what a single physical pixel displays.
type Content struct {
	Rune       rune
	Foreground core.Color
	Background core.Color
}

// EmptyContent returns a blank pixel in the host's default colors.
func EmptyContent() Content {
	return Content{Rune: ' ', Foreground: core.ColorDefault, Background: core.ColorDefault}
}

// Backend defines the interface for physical display surfaces.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores host state.
	// A blocked PollEvent returns an EventNone afterwards.
	Shutdown()

	// Size returns the current physical dimensions.
	Size() (width, height int)

	// OnResize registers a callback invoked when the physical surface
	// changes size. The callback carries no arguments; read Size.
	OnResize(callback func())

	// SetContent sets a single physical pixel.
	// Positions outside the surface are silently ignored.
	SetContent(x, y int, c Content)

	// Clear resets every pixel to EmptyContent.
	Clear()

	// Show flushes pending changes to the display.
	Show()

	// PollEvent waits for and returns the next event.
	PollEvent() Event

	// PostEvent queues a synthetic event. It is safe to call from any
	// goroutine and never blocks.
	PostEvent(event Event)

	// EnableMouse enables mouse event reporting.
	EnableMouse()

	// DisableMouse disables mouse event reporting.
	DisableMouse()
}

// Resizer is implemented by backends whose window size can be requested.
type Resizer interface {
	SetSize(width, height int) error
}
