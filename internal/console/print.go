package console

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/consolekit/internal/renderer/core"
)

// Print writes s into row y starting at column x, one grapheme cluster per
// cell, and returns the number of cells written. Output stops at the end of
// the row; nothing wraps. Default colors leave the existing cell colors in
// place.
func (g *Grid) Print(x, y int, s string, fg, bg core.Color) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.inBounds(x, y) {
		return 0, ErrOutOfBounds
	}

	written := 0
	graphemes := uniseg.NewGraphemes(s)
	for graphemes.Next() && x < g.width {
		runes := graphemes.Runes()
		cell := &g.cells[g.index(x, y)]
		cell.Glyph = g.font.Glyph(runes[0])
		if !fg.IsDefault() {
			cell.Foreground = fg
		}
		if !bg.IsDefault() {
			cell.Background = bg
		}
		x++
		written++
	}
	return written, nil
}

// PrintCentered writes s centered on row y.
func (g *Grid) PrintCentered(y int, s string, fg, bg core.Color) (int, error) {
	width := g.Width()
	x := max((width-uniseg.GraphemeClusterCount(s))/2, 0)
	return g.Print(x, y, s, fg, bg)
}
