package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/dshills/consolekit/internal/renderer/core"
	"github.com/dshills/consolekit/internal/renderer/viewport"
)

type placeOptions struct {
	logical  string
	cell     string
	physical string
	policy   string
	pointer  string
	json     bool
}

// placement is a computed placement plus its inputs.
type placement struct {
	policy   viewport.Policy
	logical  core.Size
	cell     core.Size
	physical core.Size
	result   viewport.Result

	pointer    *core.Point
	pointerHit bool
	pointerAt  core.Point
}

// placeCommand computes a placement without opening a window.
func (c *CLI) placeCommand() *cobra.Command {
	var opts placeOptions

	cmd := &cobra.Command{
		Use:   "place",
		Short: "Compute where a console lands on a host surface",
		Long: `Compute the placement of a logical console on a physical surface.

Sizes are given as WIDTHxHEIGHT. The logical size is in cells and the cell
size in pixels, so an 80x25 console of 8x16 cells renders at 640x400.
With --pointer X,Y the physical point is mapped back to a console cell.`,
		Example: `  consolekit place --logical 80x25 --cell 8x16 --physical 1280x600 --policy fit
  consolekit place --physical 1920x1080 --pointer 960,540 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := computePlacement(opts)
			if err != nil {
				return err
			}
			c.Logger.Debug("placement computed", "policy", p.policy.Name(), "placement", p.result.Placement)
			if opts.json {
				doc, err := placementJSON(p)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), doc)
				return nil
			}
			printPlacement(cmd.OutOrStdout(), p)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.logical, "logical", "l", "80x25", "console size in cells")
	cmd.Flags().StringVar(&opts.cell, "cell", "1x1", "cell size in pixels")
	cmd.Flags().StringVar(&opts.physical, "physical", "80x25", "host surface size in pixels")
	cmd.Flags().StringVarP(&opts.policy, "policy", "p", "scale", "resize policy: none, center, scale, fit, stretch")
	cmd.Flags().StringVar(&opts.pointer, "pointer", "", "physical point X,Y to map to a cell")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print JSON")

	return cmd
}

func computePlacement(opts placeOptions) (placement, error) {
	var p placement
	var err error

	if p.policy, err = viewport.ParsePolicy(opts.policy); err != nil {
		return p, err
	}
	if p.logical, err = parseSize("logical", opts.logical); err != nil {
		return p, err
	}
	if p.cell, err = parseSize("cell", opts.cell); err != nil {
		return p, err
	}
	if p.physical, err = parseSize("physical", opts.physical); err != nil {
		return p, err
	}

	p.result = viewport.Compute(p.logical, p.physical, p.policy, p.cell)

	if opts.pointer != "" {
		pt, err := parsePoint(opts.pointer)
		if err != nil {
			return p, err
		}
		p.pointer = &pt
		p.pointerAt, p.pointerHit = p.result.Map(pt, p.cell, p.logical)
	}
	return p, nil
}

// parseSize parses WIDTHxHEIGHT. Zero and negative values are allowed so
// degenerate surfaces can be inspected.
func parseSize(name, s string) (core.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return core.Size{}, fmt.Errorf("%s size %q: expected WIDTHxHEIGHT", name, s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return core.Size{}, fmt.Errorf("%s width %q: %w", name, w, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return core.Size{}, fmt.Errorf("%s height %q: %w", name, h, err)
	}
	return core.NewSize(width, height), nil
}

// parsePoint parses X,Y.
func parsePoint(s string) (core.Point, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return core.Point{}, fmt.Errorf("pointer %q: expected X,Y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return core.Point{}, fmt.Errorf("pointer x %q: %w", xs, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return core.Point{}, fmt.Errorf("pointer y %q: %w", ys, err)
	}
	return core.NewPoint(x, y), nil
}

// placementJSON renders p as a JSON document.
func placementJSON(p placement) (string, error) {
	r := p.result
	fields := []struct {
		path  string
		value any
	}{
		{"policy", p.policy.Name()},
		{"logical.width", p.logical.Width},
		{"logical.height", p.logical.Height},
		{"cell.width", p.cell.Width},
		{"cell.height", p.cell.Height},
		{"physical.width", p.physical.Width},
		{"physical.height", p.physical.Height},
		{"output.width", r.Output.Width},
		{"output.height", r.Output.Height},
		{"placement.x", r.Placement.X},
		{"placement.y", r.Placement.Y},
		{"placement.width", r.Placement.Width},
		{"placement.height", r.Placement.Height},
		{"scale.x", r.Scale.X},
		{"scale.y", r.Scale.Y},
		{"multiple", r.Multiple},
		{"degenerate", r.Degenerate},
	}

	doc := "{}"
	var err error
	for _, f := range fields {
		if doc, err = sjson.Set(doc, f.path, f.value); err != nil {
			return "", fmt.Errorf("encoding %s: %w", f.path, err)
		}
	}

	if p.pointer != nil {
		doc, _ = sjson.Set(doc, "pointer.x", p.pointer.X)
		doc, _ = sjson.Set(doc, "pointer.y", p.pointer.Y)
		if p.pointerHit {
			doc, _ = sjson.Set(doc, "pointer.cell.x", p.pointerAt.X)
			doc, err = sjson.Set(doc, "pointer.cell.y", p.pointerAt.Y)
		} else {
			doc, err = sjson.SetRaw(doc, "pointer.cell", "null")
		}
		if err != nil {
			return "", fmt.Errorf("encoding pointer: %w", err)
		}
	}
	return doc, nil
}

func printPlacement(w io.Writer, p placement) {
	r := p.result
	printTitle(w, "Placement")
	printKeyValue(w, "policy", p.policy.Name())
	printKeyValue(w, "logical", fmt.Sprintf("%v cells of %v", p.logical, p.cell))
	printKeyValue(w, "physical", p.physical.String())
	if r.Degenerate {
		printWarning(w, "degenerate: a dimension is zero or negative, nothing is drawn")
		return
	}
	printKeyValue(w, "output", r.Output.String())
	printKeyValue(w, "placement", r.Placement.String())
	printKeyValue(w, "scale", r.Scale.String())
	if r.Multiple > 0 {
		printKeyValue(w, "multiple", strconv.Itoa(r.Multiple))
	}
	if p.pointer != nil {
		value := "outside the console"
		if p.pointerHit {
			value = fmt.Sprintf("cell %v", p.pointerAt)
		}
		printKeyValue(w, "pointer", fmt.Sprintf("%v → %s", *p.pointer, value))
	}
}
