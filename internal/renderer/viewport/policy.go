// Package viewport maps a fixed logical render resolution onto a resizable
// physical output surface.
//
// Compute is a pure function: given the logical size in cells, the pixel size
// of one cell, the physical output size and a resize Policy, it returns the
// size the render output must be allocated at, the rectangle the output is
// drawn into, and the per-axis scale factor between the two. The inverse
// functions translate physical pointer positions back into logical pixels
// and cells.
package viewport

import (
	"fmt"
	"strings"
)

// Policy selects how the logical render output is placed on the physical
// surface. The set of policies is closed: None, Center, IntegerScale, Fit
// and Stretch.
type Policy interface {
	// Name returns the configuration name of the policy.
	Name() string

	policy()
}

// None resizes the render output to exactly match the physical surface.
// Rendering is pixel-for-pixel and tracks the window size.
type None struct{}

// Center keeps the logical size and centers it on the physical surface
// without scaling. The placement may extend past the physical bounds.
type Center struct{}

// IntegerScale keeps the logical size and draws it at the largest whole
// multiple that fits on the physical surface, centered.
type IntegerScale struct{}

// Fit keeps the logical size and stretches it as large as possible while
// preserving its aspect ratio, padding the remaining axis.
type Fit struct{}

// Stretch keeps the logical size and stretches it over the entire physical
// surface, ignoring aspect ratio. It is the fallback policy.
type Stretch struct{}

func (None) Name() string         { return "none" }
func (Center) Name() string       { return "center" }
func (IntegerScale) Name() string { return "scale" }
func (Fit) Name() string          { return "fit" }
func (Stretch) Name() string      { return "stretch" }

func (None) policy()         {}
func (Center) policy()       {}
func (IntegerScale) policy() {}
func (Fit) policy()          {}
func (Stretch) policy()      {}

// Policies lists every policy in cycle order.
var Policies = []Policy{None{}, Center{}, IntegerScale{}, Fit{}, Stretch{}}

// ParsePolicy returns the policy with the given name.
// Matching is case-insensitive; "integer" is accepted for IntegerScale.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none":
		return None{}, nil
	case "center":
		return Center{}, nil
	case "scale", "integer":
		return IntegerScale{}, nil
	case "fit":
		return Fit{}, nil
	case "stretch", "":
		return Stretch{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// PolicyName returns the name of p, treating nil as Stretch.
func PolicyName(p Policy) string {
	if p == nil {
		return Stretch{}.Name()
	}
	return p.Name()
}

// Next returns the policy after p in cycle order.
func Next(p Policy) Policy {
	name := PolicyName(p)
	for i, candidate := range Policies {
		if candidate.Name() == name {
			return Policies[(i+1)%len(Policies)]
		}
	}
	return Policies[0]
}
