package renderer

import (
	"fmt"

	"github.com/dshills/consolekit/internal/renderer/backend"
	"github.com/dshills/consolekit/internal/renderer/core"
	"github.com/dshills/consolekit/internal/renderer/viewport"
)

// Compose rasterises layers onto the render surface, bottom first. Each
// cell fills its pixel rectangle with the cell's glyph, default colors
// resolved against the layer and the layer's tint applied.
//
// Cell contents are read without locking. Writers must be serialized with
// Compose by the caller.
func (c *Controller) Compose(layers ...Layer) error {
	c.mu.Lock()
	fatal := c.fatal
	surface := c.state.Surface
	c.mu.Unlock()

	if fatal != nil {
		return fatal
	}
	if surface == nil {
		return nil
	}

	surface.Clear(backend.EmptyContent())
	for i, layer := range layers {
		if err := compose(surface, layer); err != nil {
			return fmt.Errorf("composing layer %d: %w", i, err)
		}
	}
	return nil
}

func compose(surface *backend.Surface, layer Layer) error {
	cells, err := layer.Cells()
	if err != nil {
		return err
	}
	rects := layer.Rects()
	origin := layer.AbsoluteArea().Origin()
	font := layer.Font()
	fg, bg := layer.DefaultForeground(), layer.DefaultBackground()
	tint := layer.Tint()

	for i, cell := range cells {
		if i >= len(rects) {
			break
		}
		resolved := cell.Resolve(fg, bg)
		content := backend.Content{
			Rune:       font.Rune(resolved.Glyph),
			Foreground: tint.Apply(resolved.Foreground),
			Background: tint.Apply(resolved.Background),
		}
		surface.Fill(rects[i].Translate(origin.X, origin.Y), content)
	}
	return nil
}

// Present samples the render surface through the current placement onto
// the backend and shows it. Physical pixels outside the placement are
// drawn in the letterbox color.
func (c *Controller) Present() error {
	c.mu.Lock()
	if c.fatal != nil {
		err := c.fatal
		c.mu.Unlock()
		return err
	}
	state := c.state
	letterbox := backend.Content{Rune: ' ', Foreground: core.ColorDefault, Background: c.opts.Letterbox}
	c.mu.Unlock()

	if state.Surface == nil || state.Result.Degenerate {
		c.backend.Clear()
		c.backend.Show()
		c.frameDone()
		return nil
	}

	result := state.Result
	width, height := state.PhysicalSize.Width, state.PhysicalSize.Height
	for py := 0; py < height; py++ {
		for px := 0; px < width; px++ {
			x, y, ok := viewport.PhysicalToLogical(core.NewPoint(px, py), result.Placement, result.Scale)
			if !ok {
				c.backend.SetContent(px, py, letterbox)
				continue
			}
			c.backend.SetContent(px, py, state.Surface.At(int(x), int(y)))
		}
	}
	c.backend.Show()
	c.frameDone()
	return nil
}

func (c *Controller) frameDone() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastFrame = timeNow()
	c.frameCount++
	c.needsRedraw = false
}
