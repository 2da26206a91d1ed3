package viewport

import (
	"math"

	"github.com/dshills/consolekit/internal/renderer/core"
)

// PhysicalToLogical maps a physical pixel position to a logical pixel
// position. ok is false if p lies outside the placement or the geometry is
// degenerate.
func PhysicalToLogical(p core.Point, placement core.Rect, scale core.Scale) (x, y float64, ok bool) {
	if placement.IsEmpty() || !scale.IsValid() || !placement.Contains(p) {
		return 0, 0, false
	}
	x = float64(p.X-placement.X) * scale.X
	y = float64(p.Y-placement.Y) * scale.Y
	return x, y, true
}

// LogicalToPhysical maps a logical pixel position to the physical pixel at
// which it is drawn.
func LogicalToPhysical(x, y float64, placement core.Rect, scale core.Scale) core.Point {
	if !scale.IsValid() {
		return placement.Origin()
	}
	return core.NewPoint(
		placement.X+int(math.Floor(x/scale.X)),
		placement.Y+int(math.Floor(y/scale.Y)),
	)
}

// PhysicalToCell maps a physical pixel position to the logical cell under
// it. logical is the grid size in cells and cell is the pixel size of one
// cell (zero means 1x1). ok is false outside the placement or the grid.
func PhysicalToCell(p core.Point, placement core.Rect, scale core.Scale, cell, logical core.Size) (core.Point, bool) {
	x, y, ok := PhysicalToLogical(p, placement, scale)
	if !ok {
		return core.Point{}, false
	}
	if !cell.IsPositive() {
		cell = core.NewSize(1, 1)
	}

	cx := int(math.Floor(x / float64(cell.Width)))
	cy := int(math.Floor(y / float64(cell.Height)))
	if cx < 0 || cy < 0 || cx >= logical.Width || cy >= logical.Height {
		return core.Point{}, false
	}
	return core.NewPoint(cx, cy), true
}

// Map is a convenience form of PhysicalToCell for a computed Result.
func (r Result) Map(p core.Point, cell, logical core.Size) (core.Point, bool) {
	if r.Degenerate {
		return core.Point{}, false
	}
	return PhysicalToCell(p, r.Placement, r.Scale, cell, logical)
}
