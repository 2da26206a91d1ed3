// Package console provides the cell grid that backs a console and windowed
// sub-views onto it.
//
// A Grid owns its cells in a single contiguous slice. A SubView never copies
// cells: it precomputes, for a rectangular window of the grid, one screen
// rectangle and one aliased *core.Cell per visible cell, so writes through
// either side are observed by the other.
//
// Example:
//
//	world, _ := console.NewGrid(200, 100, console.DefaultFont())
//	camera, err := console.NewSubView(world, core.NewRect(10, 10, 80, 25))
//	if err != nil {
//	    // window does not fit inside the grid
//	}
//	world.SetGlyph(10, 10, '@')
//	cells, _ := camera.Cells()
//	_ = cells[0].Glyph // '@'
package console
