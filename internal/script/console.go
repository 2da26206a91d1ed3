package script

import (
	"unicode/utf8"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/consolekit/internal/console"
	"github.com/dshills/consolekit/internal/renderer/core"
)

// registerConsole installs the global console table.
//
// Coordinates are zero-based cells. Glyph arguments are either a glyph
// index or a one-character string. Colors are hex strings ("#rrggbb" or
// "#rgb"); nil keeps the existing color.
func registerConsole(L *lua.LState, grid *console.Grid) {
	b := &binding{grid: grid}
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"width":          b.width,
		"height":         b.height,
		"set":            b.set,
		"get":            b.get,
		"print":          b.print,
		"fill":           b.fill,
		"clear":          b.clear,
		"default_colors": b.defaultColors,
	})
	L.SetGlobal("console", mod)
}

type binding struct {
	grid *console.Grid
}

func (b *binding) width(L *lua.LState) int {
	L.Push(lua.LNumber(b.grid.Width()))
	return 1
}

func (b *binding) height(L *lua.LState) int {
	L.Push(lua.LNumber(b.grid.Height()))
	return 1
}

// set(x, y, glyph|char, fg?, bg?)
func (b *binding) set(L *lua.LState) int {
	x, y := b.checkCell(L, 1)
	glyph := b.checkGlyph(L, 3)
	fg := checkColor(L, 4)
	bg := checkColor(L, 5)

	cell, _ := b.grid.CellAt(x, y)
	cell.Glyph = glyph
	if !fg.IsDefault() {
		cell.Foreground = fg
	}
	if !bg.IsDefault() {
		cell.Background = bg
	}
	if err := b.grid.SetCell(x, y, cell); err != nil {
		L.RaiseError("set: %v", err)
	}
	return 0
}

// get(x, y) returns glyph, fg, bg. Default colors come back as nil.
func (b *binding) get(L *lua.LState) int {
	x, y := b.checkCell(L, 1)
	cell, _ := b.grid.CellAt(x, y)
	L.Push(lua.LNumber(cell.Glyph))
	L.Push(colorValue(cell.Foreground))
	L.Push(colorValue(cell.Background))
	return 3
}

// print(x, y, text, fg?, bg?) returns the number of cells written.
func (b *binding) print(L *lua.LState) int {
	x, y := b.checkCell(L, 1)
	text := L.CheckString(3)
	fg := checkColor(L, 4)
	bg := checkColor(L, 5)

	n, err := b.grid.Print(x, y, text, fg, bg)
	if err != nil {
		L.RaiseError("print: %v", err)
	}
	L.Push(lua.LNumber(n))
	return 1
}

// fill(x, y, w, h, glyph|char, fg?, bg?). The whole rectangle must lie
// inside the grid. Missing colors fall back to the grid defaults.
func (b *binding) fill(L *lua.LState) int {
	x, y := L.CheckInt(1), L.CheckInt(2)
	w, h := L.CheckInt(3), L.CheckInt(4)
	glyph := b.checkGlyph(L, 5)
	fg := checkColor(L, 6)
	bg := checkColor(L, 7)

	rect := core.NewRect(x, y, w, h)
	if w < 0 || h < 0 || !core.RectFromSize(b.grid.Size()).ContainsRect(rect) {
		L.RaiseError("fill: rectangle %s outside %s grid", rect, b.grid.Size())
	}
	if fg.IsDefault() {
		fg = b.grid.DefaultForeground()
	}
	if bg.IsDefault() {
		bg = b.grid.DefaultBackground()
	}
	b.grid.Fill(rect, core.NewCell(glyph, fg, bg))
	return 0
}

func (b *binding) clear(L *lua.LState) int {
	b.grid.Clear()
	return 0
}

// default_colors(fg, bg)
func (b *binding) defaultColors(L *lua.LState) int {
	fg := checkColor(L, 1)
	bg := checkColor(L, 2)
	b.grid.SetDefaultColors(fg, bg)
	return 0
}

// checkCell reads an (x, y) pair starting at argument n and raises a Lua
// error when it is outside the grid.
func (b *binding) checkCell(L *lua.LState, n int) (int, int) {
	x, y := L.CheckInt(n), L.CheckInt(n+1)
	if !b.grid.InBounds(x, y) {
		L.RaiseError("cell (%d, %d) outside %s grid", x, y, b.grid.Size())
	}
	return x, y
}

// checkGlyph accepts a glyph index or a single-character string.
func (b *binding) checkGlyph(L *lua.LState, n int) int {
	switch v := L.Get(n).(type) {
	case lua.LNumber:
		glyph := int(v)
		if glyph < 0 || glyph > 255 {
			L.ArgError(n, "glyph index must be 0-255")
		}
		return glyph
	case lua.LString:
		r, size := utf8.DecodeRuneInString(string(v))
		if size == 0 || size != len(v) {
			L.ArgError(n, "expected a single character")
		}
		return b.grid.Font().Glyph(r)
	default:
		L.ArgError(n, "expected glyph index or character")
		return 0
	}
}

// checkColor reads an optional hex color; nil or none gives ColorDefault.
func checkColor(L *lua.LState, n int) core.Color {
	v := L.Get(n)
	if v == lua.LNil {
		return core.ColorDefault
	}
	s, ok := v.(lua.LString)
	if !ok {
		L.ArgError(n, "expected hex color string")
	}
	c, err := core.ColorFromHex(string(s))
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return c
}

func colorValue(c core.Color) lua.LValue {
	if c.IsDefault() {
		return lua.LNil
	}
	return lua.LString(c.ToHex())
}
