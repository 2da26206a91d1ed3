// Package renderer drives frames from cell grids to a physical display.
//
// The Controller owns the render state: the resize policy, the logical
// console size, the current viewport placement and the off-screen surface.
// A frame is produced in two steps:
//
//	┌──────────────────────────────────────────┐
//	│  Compose: layers (grids, sub-views)      │
//	│           → surface (logical pixels)     │
//	├──────────────────────────────────────────┤
//	│  Present: surface → placement → backend  │
//	│           (nearest neighbour sampling)   │
//	└──────────────────────────────────────────┘
//
// Resize notifications from the backend run through a two-state machine.
// While a resize is being applied further notifications are suppressed, so
// a backend that raises a notification from inside SetSize cannot recurse.
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	c, err := renderer.New(term, backend.NewMemoryAllocator(0), renderer.DefaultOptions())
//	c.SetLayers(world)
//	c.Render()
package renderer
