package config

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/dshills/consolekit/internal/console"
	"github.com/dshills/consolekit/internal/renderer/viewport"
)

// Validate checks every setting and returns all failures joined.
// Each failure is a *ValidationError.
func (s *Settings) Validate() error {
	var errs []error
	fail := func(path string, value any, msg string) {
		errs = append(errs, &ValidationError{Path: path, Value: value, Message: msg})
	}

	if _, err := viewport.ParsePolicy(s.Render.Policy); err != nil {
		fail("render.policy", s.Render.Policy, "must be none, center, scale, fit or stretch")
	}
	if s.Render.Columns < 1 {
		fail("render.columns", s.Render.Columns, "must be at least 1")
	}
	if s.Render.Rows < 1 {
		fail("render.rows", s.Render.Rows, "must be at least 1")
	}
	if s.Render.Font != "terminal" && s.Render.Font != "ibm8x16" {
		fail("render.font", s.Render.Font, "must be terminal or ibm8x16")
	}
	if s.Render.MinWidth < 0 || s.Render.MinHeight < 0 {
		fail("render.min_width", [2]int{s.Render.MinWidth, s.Render.MinHeight}, "minimum size cannot be negative")
	}
	if s.Render.MaxFPS < 1 {
		fail("render.max_fps", s.Render.MaxFPS, "must be at least 1")
	}
	if _, err := s.LetterboxColor(); err != nil {
		fail("render.letterbox", s.Render.Letterbox, "must be a hex color")
	}

	if s.View.WorldWidth < 1 || s.View.WorldHeight < 1 {
		fail("view.world_width", s.WorldSize(), "world must be at least 1x1")
	} else if err := console.CheckWindow(s.Window(), s.WorldSize()); err != nil {
		fail("view", s.Window(), err.Error())
	}
	if _, _, err := s.Colors(); err != nil {
		fail("view.foreground", s.View.Foreground+"/"+s.View.Background, "must be hex colors")
	}
	if s.View.TintStrength < 0 || s.View.TintStrength > 1 {
		fail("view.tint_strength", s.View.TintStrength, "must be between 0 and 1")
	}
	if _, err := s.TintValue(); err != nil {
		fail("view.tint", s.View.Tint, "must be a hex color")
	}

	if _, err := log.ParseLevel(s.Logging.Level); err != nil {
		fail("logging.level", s.Logging.Level, "must be debug, info, warn, error or fatal")
	}

	return errors.Join(errs...)
}
