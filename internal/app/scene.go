package app

import (
	"fmt"

	"github.com/dshills/consolekit/internal/console"
	"github.com/dshills/consolekit/internal/renderer"
	"github.com/dshills/consolekit/internal/renderer/core"
	"github.com/dshills/consolekit/internal/renderer/viewport"
)

// drawWorld paints the built-in scene: a frame around the world, column
// rulers every ten cells and a centered title. Scripts draw over it.
func drawWorld(world *console.Grid) {
	font := world.Font()
	w, h := world.Width(), world.Height()
	line := core.ColorCyan

	set := func(x, y int, r rune) {
		_ = world.SetCell(x, y, core.NewCell(font.Glyph(r), line, core.ColorDefault))
	}

	for x := 1; x < w-1; x++ {
		set(x, 0, '─')
		set(x, h-1, '─')
	}
	for y := 1; y < h-1; y++ {
		set(0, y, '│')
		set(w-1, y, '│')
	}
	set(0, 0, '┌')
	set(w-1, 0, '┐')
	set(0, h-1, '└')
	set(w-1, h-1, '┘')

	if h > 2 {
		for x := 10; x < w-1; x += 10 {
			_, _ = world.Print(x, 1, fmt.Sprint(x), core.ColorGray, core.ColorDefault)
		}
	}
	if h > 4 {
		_, _ = world.PrintCentered(h/2, "consolekit", core.ColorYellow, core.ColorDefault)
		_, _ = world.PrintCentered(h/2+1, "arrows pan  p policy  q quit", core.ColorGray, core.ColorDefault)
	}
}

// refresh rebuilds the status line, the hover highlight and the layer list,
// then marks the frame dirty.
func (a *App) refresh() {
	window := a.camera.Window()
	state := a.controller.State()

	a.hud.Clear()
	status := fmt.Sprintf(" %s  view %d,%d  %s", viewport.PolicyName(state.Policy), window.X, window.Y, state.PhysicalSize)
	if a.hovering {
		p := a.camera.ToBacking(a.hover)
		status += fmt.Sprintf("  cell %d,%d", p.X, p.Y)
	}
	_, _ = a.hud.Print(0, 0, status, core.ColorDefault, core.ColorDefault)

	glyph := a.world.Font().Size()
	layers := []renderer.Layer{a.camera}
	if a.hovering {
		a.updateHighlight()
		layers = append(layers, renderer.At(a.highlight, core.NewPoint(a.hover.X*glyph.Width, a.hover.Y*glyph.Height)))
	}
	rows := a.settings.Render.Rows
	layers = append(layers, renderer.At(a.hud, core.NewPoint(0, (rows-1)*glyph.Height)))

	a.controller.SetLayers(layers...)
}

// updateHighlight copies the hovered world cell into the highlight grid
// with its colors swapped.
func (a *App) updateHighlight() {
	cell := a.camera.Cell(a.hover.X, a.hover.Y)
	if cell == nil {
		return
	}
	resolved := cell.Resolve(a.world.DefaultForeground(), a.world.DefaultBackground())
	fg, bg := resolved.Background, resolved.Foreground
	if fg.IsDefault() {
		fg = core.ColorBlack
	}
	if bg.IsDefault() {
		bg = core.ColorWhite
	}
	_ = a.highlight.SetCell(0, 0, core.NewCell(resolved.Glyph, fg, bg))
}
