package console

import (
	"testing"

	"github.com/dshills/consolekit/internal/renderer/core"
)

func TestFontRune(t *testing.T) {
	f := IBM8x16()

	tests := []struct {
		glyph int
		want  rune
	}{
		{0, ' '},
		{1, '☺'},
		{3, '♥'},
		{31, '▼'},
		{'A', 'A'},
		{0x7F, '⌂'},
		{0xB0, '░'},
		{0xDB, '█'},
		{0xC4, '─'},
		{0x2603, '☃'},
	}

	for _, tt := range tests {
		if got := f.Rune(tt.glyph); got != tt.want {
			t.Errorf("Rune(%#x): expected %q, got %q", tt.glyph, tt.want, got)
		}
	}
}

func TestFontGlyphRoundTrip(t *testing.T) {
	f := DefaultFont()

	for glyph := 1; glyph < 256; glyph++ {
		r := f.Rune(glyph)
		if got := f.Glyph(r); got != glyph {
			t.Errorf("Glyph(Rune(%#x)) = %#x, rune %q", glyph, got, r)
		}
	}
}

func TestFontGlyph(t *testing.T) {
	f := DefaultFont()

	tests := []struct {
		r    rune
		want int
	}{
		{' ', ' '},
		{'z', 'z'},
		{'█', 0xDB},
		{'♥', 3},
		{'\t', 0},
		{'☃', 0x2603},
	}

	for _, tt := range tests {
		if got := f.Glyph(tt.r); got != tt.want {
			t.Errorf("Glyph(%q): expected %#x, got %#x", tt.r, tt.want, got)
		}
	}
}

func TestFontSize(t *testing.T) {
	if got := NewFont("tiny", 0, -3).Size(); got != core.NewSize(1, 1) {
		t.Errorf("expected dimensions raised to 1x1, got %v", got)
	}
	if got := IBM8x16().Size(); got != core.NewSize(8, 16) {
		t.Errorf("expected 8x16, got %v", got)
	}
	var f *Font
	if got := f.Size(); got != core.NewSize(1, 1) {
		t.Errorf("nil font should be 1x1, got %v", got)
	}
}
