package viewport

import (
	"fmt"

	"github.com/dshills/consolekit/internal/renderer/core"
)

// Result is the placement geometry for one logical/physical pairing.
type Result struct {
	// Output is the pixel size the render output must be allocated at.
	Output core.Size

	// Placement is where the render output is drawn, in physical pixels.
	Placement core.Rect

	// Scale is the number of logical pixels per physical pixel on each axis.
	Scale core.Scale

	// Multiple is the integer multiple chosen by IntegerScale, 0 otherwise.
	Multiple int

	// Degenerate is set when an input had a non-positive dimension.
	// Placement is then empty and Output is zero.
	Degenerate bool
}

// Compute derives the placement geometry for a logical grid of the given
// size (in cells of the given pixel size) shown on a physical surface.
//
// A zero or negative cell size is treated as 1x1, so callers working in
// pixels directly can pass core.Size{}. A nil policy behaves as Stretch.
// Non-positive logical or physical dimensions produce a degenerate result
// rather than an error; these occur transiently while a window is minimized.
func Compute(logical, physical core.Size, policy Policy, cell core.Size) Result {
	if !cell.IsPositive() {
		cell = core.NewSize(1, 1)
	}
	if !logical.IsPositive() || !physical.IsPositive() {
		return Result{Scale: core.Identity, Degenerate: true}
	}

	pixels := logical.Mul(cell)

	switch policy.(type) {
	case None, *None:
		return Result{
			Output:    physical,
			Placement: core.RectFromSize(physical),
			Scale:     core.Identity,
		}
	case Center, *Center:
		return Result{
			Output:    pixels,
			Placement: centered(pixels, physical),
			Scale:     core.Identity,
		}
	case IntegerScale, *IntegerScale:
		return computeInteger(pixels, physical)
	case Fit, *Fit:
		return computeFit(pixels, physical)
	case Stretch, *Stretch, nil:
		return computeStretch(pixels, physical)
	default:
		// A type embedding one of the policies dispatches by its name.
		named, err := ParsePolicy(policy.Name())
		if err != nil {
			panic(fmt.Sprintf("viewport: unknown policy %T", policy))
		}
		return Compute(logical, physical, named, cell)
	}
}

func computeStretch(pixels, physical core.Size) Result {
	return Result{
		Output:    pixels,
		Placement: core.RectFromSize(physical),
		Scale: core.Scale{
			X: float64(pixels.Width) / float64(physical.Width),
			Y: float64(pixels.Height) / float64(physical.Height),
		},
	}
}

// centered returns a rectangle of size s centered in outer.
// Offsets use integer division and go negative when s is larger.
func centered(s, outer core.Size) core.Rect {
	return core.NewRect(
		(outer.Width-s.Width)/2,
		(outer.Height-s.Height)/2,
		s.Width,
		s.Height,
	)
}

// Multiple returns the largest integer m >= 1 such that pixels*m fits
// inside physical on both axes. When even m=1 does not fit, 1 is returned
// and the placement overflows the physical surface like Center.
func Multiple(pixels, physical core.Size) int {
	if !pixels.IsPositive() {
		return 1
	}
	m := 2
	for pixels.Width*m <= physical.Width && pixels.Height*m <= physical.Height {
		m++
	}
	m--
	if m < 1 {
		m = 1
	}
	return m
}

func computeInteger(pixels, physical core.Size) Result {
	m := Multiple(pixels, physical)
	scaled := pixels.Scaled(m)

	return Result{
		Output:    pixels,
		Placement: centered(scaled, physical),
		Scale: core.Scale{
			X: float64(pixels.Width) / float64(scaled.Width),
			Y: float64(pixels.Height) / float64(scaled.Height),
		},
		Multiple: m,
	}
}

func computeFit(pixels, physical core.Size) Result {
	lw, lh := float64(pixels.Width), float64(pixels.Height)
	pw, ph := float64(physical.Width), float64(physical.Height)

	widthRatio := pw / lw
	heightRatio := ph / lh
	fitHeight := lh * widthRatio
	fitWidth := lw * heightRatio

	if fitHeight <= ph {
		// Full width, letterbox top and bottom.
		return Result{
			Output:    pixels,
			Placement: core.NewRect(0, int((ph-fitHeight)/2), physical.Width, int(fitHeight)),
			Scale:     core.Scale{X: lw / pw, Y: lh / fitHeight},
		}
	}

	// Full height, pillarbox left and right.
	return Result{
		Output:    pixels,
		Placement: core.NewRect(int((pw-fitWidth)/2), 0, int(fitWidth), physical.Height),
		Scale:     core.Scale{X: lw / fitWidth, Y: lh / ph},
	}
}
