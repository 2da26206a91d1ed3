package backend

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/dshills/consolekit/internal/renderer/core"
)

func TestNullBackendInit(t *testing.T) {
	b := NewNullBackend(80, 24)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
	if got := b.ContentAt(0, 0); got != EmptyContent() {
		t.Errorf("expected empty content, got %+v", got)
	}
}

func TestNullBackendSetContent(t *testing.T) {
	b := NewNullBackend(10, 5)
	b.Init()

	c := Content{Rune: 'X', Foreground: core.ColorRed, Background: core.ColorBlack}
	b.SetContent(3, 2, c)

	if got := b.ContentAt(3, 2); got != c {
		t.Errorf("expected %+v, got %+v", c, got)
	}

	// Out of bounds should be ignored
	b.SetContent(-1, 0, c)
	b.SetContent(10, 0, c)
	if got := b.ContentAt(10, 0); got != EmptyContent() {
		t.Error("out of bounds should return empty content")
	}

	b.Clear()
	if got := b.ContentAt(3, 2); got != EmptyContent() {
		t.Error("clear should reset content")
	}
}

func TestNullBackendText(t *testing.T) {
	b := NewNullBackend(4, 1)
	b.Init()
	b.SetContent(1, 0, Content{Rune: 'o'})
	b.SetContent(2, 0, Content{Rune: 'k'})

	if got := b.Text(0); got != " ok " {
		t.Errorf("expected %q, got %q", " ok ", got)
	}
}

func TestNullBackendResizeNotifies(t *testing.T) {
	b := NewNullBackend(10, 5)
	b.Init()

	var calls atomic.Int32
	b.OnResize(func() { calls.Add(1) })

	if err := b.SetSize(20, 8); err != nil {
		t.Fatalf("SetSize failed: %v", err)
	}

	if calls.Load() != 1 {
		t.Errorf("expected 1 resize callback, got %d", calls.Load())
	}
	if w, h := b.Size(); w != 20 || h != 8 {
		t.Errorf("expected (20, 8), got (%d, %d)", w, h)
	}

	ev := b.PollEvent()
	if ev.Type != EventResize || ev.Width != 20 || ev.Height != 8 {
		t.Errorf("expected resize event 20x8, got %+v", ev)
	}
}

func TestNullBackendPostEvent(t *testing.T) {
	b := NewNullBackend(10, 5)
	b.Init()

	b.PostEvent(RuneEvent('q'))
	b.PostEvent(InterruptEvent("reload"))

	ev := b.PollEvent()
	if ev.Type != EventKey || ev.Key != KeyRune || ev.Rune != 'q' {
		t.Errorf("expected rune event, got %+v", ev)
	}
	ev = b.PollEvent()
	if ev.Type != EventInterrupt || ev.Payload != "reload" {
		t.Errorf("expected interrupt event, got %+v", ev)
	}
}

func TestNullBackendShutdownUnblocksPoll(t *testing.T) {
	b := NewNullBackend(10, 5)
	b.Init()

	done := make(chan Event)
	go func() { done <- b.PollEvent() }()

	b.Shutdown()
	b.Shutdown()

	select {
	case ev := <-done:
		if ev.Type != EventNone {
			t.Errorf("expected EventNone, got %v", ev.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("PollEvent did not return after Shutdown")
	}
}

func TestNullBackendMouse(t *testing.T) {
	b := NewNullBackend(1, 1)
	b.EnableMouse()
	if !b.MouseEnabled() {
		t.Error("mouse should be enabled")
	}
	b.DisableMouse()
	if b.MouseEnabled() {
		t.Error("mouse should be disabled")
	}
}

func TestModMask(t *testing.T) {
	m := ModShift | ModCtrl

	if !m.Has(ModShift) {
		t.Error("should have Shift")
	}
	if !m.Has(ModCtrl) {
		t.Error("should have Ctrl")
	}
	if m.Has(ModAlt) {
		t.Error("should not have Alt")
	}
}

func TestEventTypeString(t *testing.T) {
	tests := map[EventType]string{
		EventNone:      "none",
		EventKey:       "key",
		EventMouse:     "mouse",
		EventResize:    "resize",
		EventInterrupt: "interrupt",
	}
	for et, want := range tests {
		if got := et.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}

func TestMouseButtonIsWheel(t *testing.T) {
	if MouseLeft.IsWheel() {
		t.Error("left button is not a wheel")
	}
	if !MouseWheelDown.IsWheel() {
		t.Error("wheel down is a wheel")
	}
}
