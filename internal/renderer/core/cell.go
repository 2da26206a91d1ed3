package core

// Cell is one character cell of a console: a glyph index into the font
// plus foreground and background colors.
type Cell struct {
	Foreground Color
	Background Color

	// Glyph is the index of the glyph in the font atlas.
	Glyph int
}

// EmptyCell returns a blank cell with default colors.
func EmptyCell() Cell {
	return Cell{
		Foreground: ColorDefault,
		Background: ColorDefault,
		Glyph:      0,
	}
}

// NewCell creates a cell with the given glyph and colors.
func NewCell(glyph int, fg, bg Color) Cell {
	return Cell{Foreground: fg, Background: bg, Glyph: glyph}
}

// WithGlyph returns a copy of the cell with a new glyph.
func (c Cell) WithGlyph(glyph int) Cell {
	c.Glyph = glyph
	return c
}

// WithColors returns a copy of the cell with new colors.
func (c Cell) WithColors(fg, bg Color) Cell {
	c.Foreground = fg
	c.Background = bg
	return c
}

// Equals returns true if two cells are identical.
func (c Cell) Equals(other Cell) bool {
	return c.Glyph == other.Glyph &&
		c.Foreground.Equals(other.Foreground) &&
		c.Background.Equals(other.Background)
}

// Resolve replaces default colors with the given fallbacks.
func (c Cell) Resolve(fg, bg Color) Cell {
	if c.Foreground.IsDefault() {
		c.Foreground = fg
	}
	if c.Background.IsDefault() {
		c.Background = bg
	}
	return c
}
