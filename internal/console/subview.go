package console

import (
	"sync"

	"github.com/dshills/consolekit/internal/renderer/core"
)

// SubView presents a rectangular window of a backing Grid as if it were an
// independent grid. It holds one screen rectangle and one aliased cell
// reference per window cell, rebuilt in full whenever the window is set.
//
// The view does not own cells. Appearance properties (font, default
// colors, tint) are read through to the backing grid on every call.
type SubView struct {
	mu sync.RWMutex

	backing *Grid
	window  core.Rect

	rects    []core.Rect
	cells    []*core.Cell
	absolute core.Rect

	// generation of the backing storage the references point into.
	generation uint64
}

// NewSubView creates a view of window on backing.
func NewSubView(backing *Grid, window core.Rect) (*SubView, error) {
	if backing == nil {
		return nil, ErrNoBacking
	}
	v := &SubView{backing: backing}
	if err := v.SetWindow(window); err != nil {
		return nil, err
	}
	return v, nil
}

// Backing returns the grid this view aliases.
func (v *SubView) Backing() *Grid {
	return v.backing
}

// Window returns the current window in backing-grid cell coordinates.
func (v *SubView) Window() core.Rect {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.window
}

// SetWindow validates window against the backing grid and rebuilds the
// view. On failure it returns a *BoundsError and the previous window,
// rectangles and cell references are left untouched.
//
// The backing grid's read lock is held while its storage is walked, so
// SetWindow is mutually excluded with every Grid mutator.
func (v *SubView) SetWindow(window core.Rect) error {
	g := v.backing
	if g == nil {
		return ErrNoBacking
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	if err := CheckWindow(window, core.NewSize(g.width, g.height)); err != nil {
		return err
	}

	glyph := g.font.Size()
	count := window.Width * window.Height
	rects := make([]core.Rect, count)
	cells := make([]*core.Cell, count)

	index := 0
	for y := 0; y < window.Height; y++ {
		for x := 0; x < window.Width; x++ {
			rects[index] = core.NewRect(x*glyph.Width, y*glyph.Height, glyph.Width, glyph.Height)
			cells[index] = &g.cells[(window.Y+y)*g.width+(window.X+x)]
			index++
		}
	}

	v.mu.Lock()
	v.window = window
	v.rects = rects
	v.cells = cells
	v.absolute = core.RectFromSize(window.Size().Mul(glyph))
	v.generation = g.generation
	v.mu.Unlock()

	return nil
}

// Move shifts the window by (dx, dy) cells. It fails like SetWindow if the
// moved window leaves the backing grid.
func (v *SubView) Move(dx, dy int) error {
	return v.SetWindow(v.Window().Translate(dx, dy))
}

// Rects returns the pixel rectangle of each window cell in row-major order,
// relative to AbsoluteArea. The slice must not be modified.
func (v *SubView) Rects() []core.Rect {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.rects
}

// Cells returns the aliased cell of each window cell in row-major order.
// Returns ErrDetached if the backing grid has been resized since the window
// was last set. The slice must not be modified; the cells may be.
func (v *SubView) Cells() ([]*core.Cell, error) {
	v.backing.mu.RLock()
	defer v.backing.mu.RUnlock()
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.generation != v.backing.generation {
		return nil, ErrDetached
	}
	return v.cells, nil
}

// Cell returns the aliased cell at window-relative (x, y), or nil if the
// position is outside the window or the view is detached.
func (v *SubView) Cell(x, y int) *core.Cell {
	v.backing.mu.RLock()
	defer v.backing.mu.RUnlock()
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.generation != v.backing.generation {
		return nil
	}
	if x < 0 || y < 0 || x >= v.window.Width || y >= v.window.Height {
		return nil
	}
	return v.cells[y*v.window.Width+x]
}

// Attached returns true if the cell references still point into the
// backing grid's current storage.
func (v *SubView) Attached() bool {
	return v.checkAttached() == nil
}

func (v *SubView) checkAttached() error {
	gen := v.backing.Generation()
	v.mu.RLock()
	defer v.mu.RUnlock()
	if gen != v.generation {
		return ErrDetached
	}
	return nil
}

// AbsoluteArea returns the view's own pixel footprint,
// (0, 0, window.Width*glyphWidth, window.Height*glyphHeight).
func (v *SubView) AbsoluteArea() core.Rect {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.absolute
}

// Locate returns the window-relative cell under a pixel position given
// relative to AbsoluteArea.
func (v *SubView) Locate(p core.Point) (core.Point, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.window.Width <= 0 || v.window.Height <= 0 {
		return core.Point{}, false
	}
	glyph := core.NewSize(v.absolute.Width/v.window.Width, v.absolute.Height/v.window.Height)
	return locate(p, v.window.Size(), glyph)
}

// ToBacking converts a window-relative cell position to backing-grid
// coordinates.
func (v *SubView) ToBacking(p core.Point) core.Point {
	return p.Add(v.Window().Origin())
}

// Font returns the backing grid's font.
func (v *SubView) Font() *Font {
	return v.backing.Font()
}

// DefaultForeground returns the backing grid's default foreground.
func (v *SubView) DefaultForeground() core.Color {
	return v.backing.DefaultForeground()
}

// DefaultBackground returns the backing grid's default background.
func (v *SubView) DefaultBackground() core.Color {
	return v.backing.DefaultBackground()
}

// Tint returns the backing grid's tint.
func (v *SubView) Tint() core.Tint {
	return v.backing.Tint()
}
