package config

import (
	"github.com/dshills/consolekit/internal/console"
	"github.com/dshills/consolekit/internal/renderer/core"
)

// Settings is the complete consolekit configuration.
type Settings struct {
	Render  RenderSettings  `toml:"render" yaml:"render"`
	View    ViewSettings    `toml:"view" yaml:"view"`
	Logging LoggingSettings `toml:"logging" yaml:"logging"`
	Script  ScriptSettings  `toml:"script" yaml:"script"`
}

// RenderSettings control the viewport mapping.
type RenderSettings struct {
	Policy     string `toml:"policy" yaml:"policy"`           // none, center, scale, fit, stretch
	Columns    int    `toml:"columns" yaml:"columns"`         // console width in cells
	Rows       int    `toml:"rows" yaml:"rows"`               // console height in cells
	Font       string `toml:"font" yaml:"font"`               // "terminal" or "ibm8x16"
	MinWidth   int    `toml:"min_width" yaml:"min_width"`     // physical pixels, 0 = none
	MinHeight  int    `toml:"min_height" yaml:"min_height"`   // physical pixels, 0 = none
	MaxFPS     int    `toml:"max_fps" yaml:"max_fps"`
	Letterbox  string `toml:"letterbox" yaml:"letterbox"`     // hex color, "" = host default
	SurfaceMax int    `toml:"surface_max" yaml:"surface_max"` // pixel budget, 0 = default
}

// ViewSettings describe the world grid and the camera window over it.
type ViewSettings struct {
	WorldWidth   int     `toml:"world_width" yaml:"world_width"`
	WorldHeight  int     `toml:"world_height" yaml:"world_height"`
	X            int     `toml:"x" yaml:"x"` // camera window origin in world cells
	Y            int     `toml:"y" yaml:"y"`
	Foreground   string  `toml:"foreground" yaml:"foreground"`
	Background   string  `toml:"background" yaml:"background"`
	Tint         string  `toml:"tint" yaml:"tint"`
	TintStrength float64 `toml:"tint_strength" yaml:"tint_strength"`
}

// LoggingSettings configure the logger.
type LoggingSettings struct {
	Level      string `toml:"level" yaml:"level"` // debug, info, warn, error
	File       string `toml:"file" yaml:"file"`
	TimeFormat string `toml:"time_format" yaml:"time_format"`
}

// ScriptSettings name the Lua scene script.
type ScriptSettings struct {
	Path string `toml:"path" yaml:"path"`
}

// Default returns the built-in settings: an 80x25 integer scaled console
// looking at the top-left corner of a 160x50 world.
func Default() *Settings {
	return &Settings{
		Render: RenderSettings{
			Policy:  "scale",
			Columns: 80,
			Rows:    25,
			Font:    "terminal",
			MaxFPS:  60,
		},
		View: ViewSettings{
			WorldWidth:  160,
			WorldHeight: 50,
			Foreground:  "#c0c0c0",
			Background:  "#000000",
		},
		Logging: LoggingSettings{
			Level:      "info",
			TimeFormat: "15:04:05",
		},
	}
}

// LogicalSize returns the console size in cells.
func (s *Settings) LogicalSize() core.Size {
	return core.NewSize(s.Render.Columns, s.Render.Rows)
}

// Window returns the camera window over the world grid.
func (s *Settings) Window() core.Rect {
	return core.NewRect(s.View.X, s.View.Y, s.Render.Columns, s.Render.Rows)
}

// WorldSize returns the world grid size in cells.
func (s *Settings) WorldSize() core.Size {
	return core.NewSize(s.View.WorldWidth, s.View.WorldHeight)
}

// Font returns the font named by the render settings.
func (s *Settings) Font() *console.Font {
	if s.Render.Font == "ibm8x16" {
		return console.IBM8x16()
	}
	return console.DefaultFont()
}

// Colors parses the view colors. Empty strings give the host default.
func (s *Settings) Colors() (fg, bg core.Color, err error) {
	if fg, err = parseColor(s.View.Foreground); err != nil {
		return fg, bg, err
	}
	bg, err = parseColor(s.View.Background)
	return fg, bg, err
}

// TintValue parses the view tint.
func (s *Settings) TintValue() (core.Tint, error) {
	if s.View.Tint == "" || s.View.TintStrength <= 0 {
		return core.NoTint, nil
	}
	c, err := core.ColorFromHex(s.View.Tint)
	if err != nil {
		return core.NoTint, err
	}
	return core.Tint{Color: c, Strength: s.View.TintStrength}, nil
}

// LetterboxColor parses the letterbox color.
func (s *Settings) LetterboxColor() (core.Color, error) {
	return parseColor(s.Render.Letterbox)
}

func parseColor(hex string) (core.Color, error) {
	if hex == "" {
		return core.ColorDefault, nil
	}
	return core.ColorFromHex(hex)
}
