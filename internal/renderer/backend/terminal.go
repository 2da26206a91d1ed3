package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/consolekit/internal/renderer/core"
)

// wideSubstitute is drawn in place of runes that do not occupy exactly one
// terminal column, since every physical pixel is one column wide.
const wideSubstitute = '?'

// Terminal implements Backend using tcell. One physical pixel is one
// terminal cell.
type Terminal struct {
	screen        tcell.Screen
	resizeHandler func()
	mu            sync.Mutex
}

// NewTerminal creates a terminal backend on the controlling terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen wraps an existing screen, such as a
// tcell.SimulationScreen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.SetStyle(tcell.StyleDefault)
	t.screen.HideCursor()
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) OnResize(callback func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.resizeHandler = callback
}

// SetSize asks the terminal to resize its window. Most terminals ignore
// the request; the resulting size arrives as a resize event if honoured.
func (t *Terminal) SetSize(width, height int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetSize(width, height)
	return nil
}

func (t *Terminal) SetContent(x, y int, c Content) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetContent(x, y, cellRune(c.Rune), nil, convertStyle(c.Foreground, c.Background))
}

// ContentAt reads back the pixel at (x, y).
func (t *Terminal) ContentAt(x, y int) Content {
	t.mu.Lock()
	defer t.mu.Unlock()

	mainc, _, style, _ := t.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	fg, bg, _ := style.Decompose()
	return Content{
		Rune:       mainc,
		Foreground: convertTcellColor(fg),
		Background: convertTcellColor(bg),
	}
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	if ev == nil {
		// Screen finalized.
		return Event{Type: EventNone}
	}

	converted := convertEvent(ev)
	if converted.Type == EventResize {
		t.mu.Lock()
		t.screen.Sync()
		handler := t.resizeHandler
		t.mu.Unlock()
		if handler != nil {
			handler()
		}
	}
	return converted
}

func (t *Terminal) PostEvent(event Event) {
	var ev tcell.Event
	switch event.Type {
	case EventKey:
		ev = tcell.NewEventKey(toTcellKey(event.Key), event.Rune, toTcellMod(event.Mod))
	case EventInterrupt:
		ev = tcell.NewEventInterrupt(event.Payload)
	default:
		return
	}
	_ = t.screen.PostEvent(ev) // best-effort; event queue may be full
}

func (t *Terminal) EnableMouse() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.EnableMouse(tcell.MouseMotionEvents)
}

func (t *Terminal) DisableMouse() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.DisableMouse()
}

// cellRune maps r to something that fills exactly one terminal column.
func cellRune(r rune) rune {
	switch runewidth.RuneWidth(r) {
	case 1:
		return r
	case 0:
		return ' '
	default:
		return wideSubstitute
	}
}

func convertStyle(fg, bg core.Color) tcell.Style {
	return tcell.StyleDefault.
		Foreground(convertColor(fg)).
		Background(convertColor(bg))
}

func convertColor(c core.Color) tcell.Color {
	switch {
	case c.IsDefault():
		return tcell.ColorDefault
	case c.Indexed:
		return tcell.PaletteColor(int(c.R))
	default:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
}

func convertTcellColor(tc tcell.Color) core.Color {
	if tc == tcell.ColorDefault {
		return core.ColorDefault
	}
	if tc&tcell.ColorIsRGB == 0 && tc >= tcell.ColorValid {
		return core.ColorFromIndex(uint8(tc - tcell.ColorValid))
	}
	r, g, b := tc.RGB()
	return core.ColorFromRGB(uint8(r), uint8(g), uint8(b))
}

func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{
			Type: EventKey,
			Key:  fromTcellKey(e.Key()),
			Rune: e.Rune(),
			Mod:  fromTcellMod(e.Modifiers()),
		}

	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{
			Type:        EventMouse,
			MouseX:      x,
			MouseY:      y,
			MouseButton: fromTcellButtons(e.Buttons()),
			Mod:         fromTcellMod(e.Modifiers()),
		}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}

	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt, Payload: e.Data()}

	default:
		return Event{Type: EventNone}
	}
}

var tcellKeys = map[tcell.Key]Key{
	tcell.KeyRune:       KeyRune,
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyCtrlC:      KeyCtrlC,
}

func fromTcellKey(k tcell.Key) Key {
	if key, ok := tcellKeys[k]; ok {
		return key
	}
	return KeyNone
}

func toTcellKey(k Key) tcell.Key {
	if k == KeyBackspace {
		return tcell.KeyBackspace2
	}
	for tk, key := range tcellKeys {
		if key == k {
			return tk
		}
	}
	return tcell.KeyRune
}

var tcellMods = []struct {
	tcell tcell.ModMask
	mod   ModMask
}{
	{tcell.ModShift, ModShift},
	{tcell.ModCtrl, ModCtrl},
	{tcell.ModAlt, ModAlt},
	{tcell.ModMeta, ModMeta},
}

func fromTcellMod(m tcell.ModMask) ModMask {
	var result ModMask
	for _, pair := range tcellMods {
		if m&pair.tcell != 0 {
			result |= pair.mod
		}
	}
	return result
}

func toTcellMod(m ModMask) tcell.ModMask {
	var result tcell.ModMask
	for _, pair := range tcellMods {
		if m.Has(pair.mod) {
			result |= pair.tcell
		}
	}
	return result
}

func fromTcellButtons(b tcell.ButtonMask) MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return MouseLeft
	case b&tcell.Button3 != 0:
		return MouseMiddle
	case b&tcell.Button2 != 0:
		return MouseRight
	case b&tcell.WheelUp != 0:
		return MouseWheelUp
	case b&tcell.WheelDown != 0:
		return MouseWheelDown
	case b&tcell.WheelLeft != 0:
		return MouseWheelLeft
	case b&tcell.WheelRight != 0:
		return MouseWheelRight
	default:
		return MouseNone
	}
}

var (
	_ Backend = (*Terminal)(nil)
	_ Resizer = (*Terminal)(nil)
)
