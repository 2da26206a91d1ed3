package renderer

import (
	"github.com/dshills/consolekit/internal/console"
	"github.com/dshills/consolekit/internal/renderer/core"
)

// Layer is a drawable cell source. *console.Grid and *console.SubView are
// layers. Positions are in logical pixels of the render surface.
type Layer interface {
	AbsoluteArea() core.Rect
	Rects() []core.Rect
	Cells() ([]*core.Cell, error)
	Font() *console.Font
	DefaultForeground() core.Color
	DefaultBackground() core.Color
	Tint() core.Tint
	Locate(p core.Point) (core.Point, bool)
}

// At places layer with its origin at offset on the surface.
func At(layer Layer, offset core.Point) Layer {
	return &positioned{Layer: layer, offset: offset}
}

type positioned struct {
	Layer
	offset core.Point
}

func (p *positioned) AbsoluteArea() core.Rect {
	area := p.Layer.AbsoluteArea()
	return area.Translate(p.offset.X, p.offset.Y)
}

func (p *positioned) Locate(pt core.Point) (core.Point, bool) {
	return p.Layer.Locate(pt.Sub(p.offset))
}

var (
	_ Layer = (*console.Grid)(nil)
	_ Layer = (*console.SubView)(nil)
)
