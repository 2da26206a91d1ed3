package console

import (
	"errors"
	"testing"

	"github.com/dshills/consolekit/internal/renderer/core"
)

func newTestGrid(t *testing.T, width, height int) *Grid {
	t.Helper()
	g, err := NewGrid(width, height, IBM8x16())
	if err != nil {
		t.Fatalf("NewGrid(%d, %d) failed: %v", width, height, err)
	}
	return g
}

func TestNewGridInvalidSize(t *testing.T) {
	sizes := [][2]int{{0, 10}, {10, 0}, {-1, -1}}
	for _, s := range sizes {
		if _, err := NewGrid(s[0], s[1], nil); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewGrid(%d, %d): expected ErrInvalidSize, got %v", s[0], s[1], err)
		}
	}
}

func TestNewGridDefaults(t *testing.T) {
	g, err := NewGrid(4, 3, nil)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	if g.Size() != core.NewSize(4, 3) {
		t.Errorf("expected size 4x3, got %v", g.Size())
	}
	if g.Font().Size() != core.NewSize(1, 1) {
		t.Errorf("nil font should become the 1x1 default, got %v", g.Font().Size())
	}
	if !g.Tint().IsNone() {
		t.Error("new grid should not be tinted")
	}
	c, ok := g.CellAt(3, 2)
	if !ok || !c.Equals(core.EmptyCell()) {
		t.Errorf("expected empty cell, got %+v", c)
	}
}

func TestGridSetCell(t *testing.T) {
	g := newTestGrid(t, 10, 5)

	cell := core.NewCell('#', core.ColorRed, core.ColorBlue)
	if err := g.SetCell(3, 2, cell); err != nil {
		t.Fatalf("SetCell failed: %v", err)
	}

	got, _ := g.CellAt(3, 2)
	if !got.Equals(cell) {
		t.Errorf("expected %+v, got %+v", cell, got)
	}

	if err := g.SetCell(10, 0, cell); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
	if g.Cell(-1, 0) != nil {
		t.Error("out of range Cell should be nil")
	}
}

func TestGridCellIsReference(t *testing.T) {
	g := newTestGrid(t, 4, 4)

	ref := g.Cell(1, 1)
	ref.Glyph = 'x'

	got, _ := g.CellAt(1, 1)
	if got.Glyph != 'x' {
		t.Errorf("write through reference should be visible, got glyph %d", got.Glyph)
	}
	if g.Cell(1, 1) != ref {
		t.Error("Cell should return the same reference for the same position")
	}
}

func TestGridFillClips(t *testing.T) {
	g := newTestGrid(t, 5, 5)

	g.Fill(core.NewRect(3, 3, 10, 10), core.NewCell('.', core.ColorDefault, core.ColorDefault))

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			c, _ := g.CellAt(x, y)
			want := 0
			if x >= 3 && y >= 3 {
				want = '.'
			}
			if c.Glyph != want {
				t.Errorf("(%d,%d): expected glyph %d, got %d", x, y, want, c.Glyph)
			}
		}
	}
}

func TestGridClear(t *testing.T) {
	g := newTestGrid(t, 3, 3)
	_ = g.SetGlyph(1, 1, 'A')
	g.Clear()

	c, _ := g.CellAt(1, 1)
	if !c.Equals(core.EmptyCell()) {
		t.Errorf("clear should reset cells, got %+v", c)
	}
}

func TestGridResizePreservesContent(t *testing.T) {
	g := newTestGrid(t, 4, 4)
	_ = g.SetGlyph(1, 1, 'A')
	_ = g.SetGlyph(3, 3, 'Z')
	before := g.Generation()

	if err := g.Resize(2, 6); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}

	if g.Size() != core.NewSize(2, 6) {
		t.Errorf("expected 2x6, got %v", g.Size())
	}
	if c, _ := g.CellAt(1, 1); c.Glyph != 'A' {
		t.Errorf("expected preserved glyph A, got %d", c.Glyph)
	}
	if c, _ := g.CellAt(1, 5); !c.Equals(core.EmptyCell()) {
		t.Errorf("new rows should be empty, got %+v", c)
	}
	if g.Generation() == before {
		t.Error("resize should bump the generation")
	}
}

func TestGridResizeSameSizeKeepsStorage(t *testing.T) {
	g := newTestGrid(t, 4, 4)
	ref := g.Cell(0, 0)
	gen := g.Generation()

	if err := g.Resize(4, 4); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if g.Generation() != gen || g.Cell(0, 0) != ref {
		t.Error("resizing to the same size should not reallocate")
	}
}

func TestGridRectsAndArea(t *testing.T) {
	g := newTestGrid(t, 3, 2)

	rects := g.Rects()
	if len(rects) != 6 {
		t.Fatalf("expected 6 rects, got %d", len(rects))
	}
	if rects[4] != core.NewRect(8, 16, 8, 16) {
		t.Errorf("expected rect (8,16 8x16), got %v", rects[4])
	}
	if g.AbsoluteArea() != core.NewRect(0, 0, 24, 32) {
		t.Errorf("expected area (0,0 24x32), got %v", g.AbsoluteArea())
	}
}

func TestGridCellsRowMajor(t *testing.T) {
	g := newTestGrid(t, 3, 2)

	cells, err := g.Cells()
	if err != nil {
		t.Fatalf("Cells failed: %v", err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if cells[y*3+x] != g.Cell(x, y) {
				t.Errorf("cell %d does not alias (%d,%d)", y*3+x, x, y)
			}
		}
	}
}

func TestGridLocate(t *testing.T) {
	g := newTestGrid(t, 3, 2)

	got, ok := g.Locate(core.NewPoint(17, 20))
	if !ok || got != core.NewPoint(2, 1) {
		t.Errorf("expected (2,1), got %v ok=%v", got, ok)
	}
	if _, ok := g.Locate(core.NewPoint(24, 0)); ok {
		t.Error("point past the right edge should not locate")
	}
}

func TestGridDefaultColors(t *testing.T) {
	g := newTestGrid(t, 2, 2)
	g.SetDefaultColors(core.ColorYellow, core.ColorBlue)

	if !g.DefaultForeground().Equals(core.ColorYellow) {
		t.Errorf("expected yellow, got %v", g.DefaultForeground())
	}
	if !g.DefaultBackground().Equals(core.ColorBlue) {
		t.Errorf("expected blue, got %v", g.DefaultBackground())
	}
}
