package console

import (
	"sync"

	"github.com/dshills/consolekit/internal/renderer/core"
)

// Grid is a fixed-size two-dimensional array of cells. It is the sole owner
// of its cells; sub-views alias them by index.
//
// Grid methods are safe for concurrent use. Writes made through a *core.Cell
// obtained from Cell, Cells or a SubView bypass the lock and must be
// serialized by the caller with SetWindow on views of this grid.
type Grid struct {
	mu sync.RWMutex

	width  int
	height int
	cells  []core.Cell

	font              *Font
	defaultForeground core.Color
	defaultBackground core.Color
	tint              core.Tint

	// generation is bumped whenever cells is reallocated.
	generation uint64
}

// NewGrid creates a grid of width x height blank cells.
// A nil font is replaced with DefaultFont.
func NewGrid(width, height int, font *Font) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, ErrInvalidSize
	}
	if font == nil {
		font = DefaultFont()
	}

	g := &Grid{
		width:             width,
		height:            height,
		font:              font,
		defaultForeground: core.ColorWhite,
		defaultBackground: core.ColorBlack,
		tint:              core.NoTint,
	}
	g.cells = make([]core.Cell, width*height)
	for i := range g.cells {
		g.cells[i] = core.EmptyCell()
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.height
}

// Size returns the grid dimensions in cells.
func (g *Grid) Size() core.Size {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return core.NewSize(g.width, g.height)
}

// Generation returns a counter that changes whenever the cell storage is
// reallocated.
func (g *Grid) Generation() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.generation
}

// Font returns the font the grid is drawn with.
func (g *Grid) Font() *Font {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.font
}

// SetFont changes the font. Existing sub-views pick up the new glyph size
// the next time their window is set.
func (g *Grid) SetFont(font *Font) {
	if font == nil {
		font = DefaultFont()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.font = font
}

// DefaultForeground returns the color used for cells with a default
// foreground.
func (g *Grid) DefaultForeground() core.Color {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.defaultForeground
}

// DefaultBackground returns the color used for cells with a default
// background.
func (g *Grid) DefaultBackground() core.Color {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.defaultBackground
}

// SetDefaultColors sets the default foreground and background.
func (g *Grid) SetDefaultColors(fg, bg core.Color) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.defaultForeground = fg
	g.defaultBackground = bg
}

// Tint returns the overlay applied when the grid is drawn.
func (g *Grid) Tint() core.Tint {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tint
}

// SetTint sets the overlay applied when the grid is drawn.
func (g *Grid) SetTint(t core.Tint) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tint = t
}

// InBounds returns true if (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.inBounds(x, y)
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// index returns the flat index of (x, y). Caller must hold the lock.
func (g *Grid) index(x, y int) int {
	return y*g.width + x
}

// Cell returns a reference to the cell at (x, y), or nil if out of range.
func (g *Grid) Cell(x, y int) *core.Cell {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.inBounds(x, y) {
		return nil
	}
	return &g.cells[g.index(x, y)]
}

// CellAt returns a copy of the cell at (x, y).
func (g *Grid) CellAt(x, y int) (core.Cell, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if !g.inBounds(x, y) {
		return core.Cell{}, false
	}
	return g.cells[g.index(x, y)], true
}

// SetCell replaces the cell at (x, y).
func (g *Grid) SetCell(x, y int, c core.Cell) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.inBounds(x, y) {
		return ErrOutOfBounds
	}
	g.cells[g.index(x, y)] = c
	return nil
}

// SetGlyph changes only the glyph of the cell at (x, y).
func (g *Grid) SetGlyph(x, y, glyph int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.inBounds(x, y) {
		return ErrOutOfBounds
	}
	g.cells[g.index(x, y)].Glyph = glyph
	return nil
}

// SetColors changes only the colors of the cell at (x, y).
func (g *Grid) SetColors(x, y int, fg, bg core.Color) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.inBounds(x, y) {
		return ErrOutOfBounds
	}
	i := g.index(x, y)
	g.cells[i].Foreground = fg
	g.cells[i].Background = bg
	return nil
}

// Fill sets every cell inside rect to c. The rectangle is clipped to the
// grid.
func (g *Grid) Fill(rect core.Rect, c core.Cell) {
	g.mu.Lock()
	defer g.mu.Unlock()

	area := rect.Intersect(core.NewRect(0, 0, g.width, g.height))
	for y := area.Top(); y < area.Bottom(); y++ {
		for x := area.Left(); x < area.Right(); x++ {
			g.cells[g.index(x, y)] = c
		}
	}
}

// Clear resets every cell to a blank cell with default colors.
func (g *Grid) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	empty := core.EmptyCell()
	for i := range g.cells {
		g.cells[i] = empty
	}
}

// Resize reallocates the grid, preserving the overlapping region.
// Sub-views built before the resize report ErrDetached until their window
// is set again.
func (g *Grid) Resize(width, height int) error {
	if width < 1 || height < 1 {
		return ErrInvalidSize
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if width == g.width && height == g.height {
		return nil
	}

	cells := make([]core.Cell, width*height)
	for i := range cells {
		cells[i] = core.EmptyCell()
	}
	copyWidth := min(g.width, width)
	copyHeight := min(g.height, height)
	for y := 0; y < copyHeight; y++ {
		copy(cells[y*width:y*width+copyWidth], g.cells[g.index(0, y):g.index(copyWidth, y)])
	}

	g.width = width
	g.height = height
	g.cells = cells
	g.generation++
	return nil
}

// AbsoluteArea returns the grid's own pixel footprint.
func (g *Grid) AbsoluteArea() core.Rect {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return core.RectFromSize(core.NewSize(g.width, g.height).Mul(g.font.Size()))
}

// Rects returns the pixel rectangle of every cell in row-major order.
func (g *Grid) Rects() []core.Rect {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return cellRects(g.width, g.height, g.font.Size())
}

// Cells returns a reference to every cell in row-major order.
func (g *Grid) Cells() ([]*core.Cell, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	refs := make([]*core.Cell, len(g.cells))
	for i := range g.cells {
		refs[i] = &g.cells[i]
	}
	return refs, nil
}

// Locate returns the cell under a pixel position relative to AbsoluteArea.
func (g *Grid) Locate(p core.Point) (core.Point, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return locate(p, core.NewSize(g.width, g.height), g.font.Size())
}

// cellRects lays out width x height cells of the given pixel size.
func cellRects(width, height int, cell core.Size) []core.Rect {
	rects := make([]core.Rect, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			rects = append(rects, core.NewRect(x*cell.Width, y*cell.Height, cell.Width, cell.Height))
		}
	}
	return rects
}

// locate maps a pixel inside a cols x rows area to the cell containing it.
func locate(p core.Point, cells, cell core.Size) (core.Point, bool) {
	area := core.RectFromSize(cells.Mul(cell))
	if !area.Contains(p) {
		return core.Point{}, false
	}
	return core.NewPoint(p.X/cell.Width, p.Y/cell.Height), true
}
