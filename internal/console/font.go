package console

import (
	"golang.org/x/text/encoding/charmap"

	"github.com/dshills/consolekit/internal/renderer/core"
)

// Font describes the glyph atlas a grid is drawn with: the pixel size of one
// glyph and the mapping between glyph indexes and runes.
//
// Glyphs 0-255 follow IBM code page 437. Higher indexes are Unicode code
// points.
type Font struct {
	Name        string
	GlyphWidth  int
	GlyphHeight int
}

// cp437Graphics are the IBM PC glyphs for the control range 1-31, which
// x/text decodes as control characters.
var cp437Graphics = [32]rune{
	0, '☺', '☻', '♥', '♦', '♣', '♠', '•', '◘', '○', '◙', '♂', '♀', '♪', '♫', '☼',
	'►', '◄', '↕', '‼', '¶', '§', '▬', '↨', '↑', '↓', '→', '←', '∟', '↔', '▲', '▼',
}

// NewFont creates a font with the given glyph size.
// Non-positive dimensions are raised to 1.
func NewFont(name string, glyphWidth, glyphHeight int) *Font {
	return &Font{
		Name:        name,
		GlyphWidth:  max(glyphWidth, 1),
		GlyphHeight: max(glyphHeight, 1),
	}
}

// DefaultFont returns a 1x1 font, one pixel per cell, for hosts that
// address cells directly such as terminals.
func DefaultFont() *Font {
	return NewFont("terminal", 1, 1)
}

// IBM8x16 returns the classic VGA text-mode font metrics.
func IBM8x16() *Font {
	return NewFont("IBM8x16", 8, 16)
}

// Size returns the glyph size in pixels.
func (f *Font) Size() core.Size {
	if f == nil {
		return core.NewSize(1, 1)
	}
	return core.NewSize(f.GlyphWidth, f.GlyphHeight)
}

// Rune returns the rune drawn for a glyph index.
func (f *Font) Rune(glyph int) rune {
	switch {
	case glyph <= 0:
		return ' '
	case glyph < len(cp437Graphics):
		return cp437Graphics[glyph]
	case glyph == 0x7F:
		return '⌂'
	case glyph < 256:
		return charmap.CodePage437.DecodeByte(byte(glyph))
	default:
		return rune(glyph)
	}
}

// Glyph returns the glyph index for a rune, the inverse of Rune.
func (f *Font) Glyph(r rune) int {
	if r == ' ' {
		return ' '
	}
	for i := 1; i < len(cp437Graphics); i++ {
		if cp437Graphics[i] == r {
			return i
		}
	}
	if r == '⌂' {
		return 0x7F
	}
	if r >= 32 && r != 0x7F {
		if b, ok := charmap.CodePage437.EncodeRune(r); ok {
			return int(b)
		}
	}
	if r < 256 {
		// Control characters and Latin-1 runes CP437 cannot encode.
		return 0
	}
	return int(r)
}
