package script

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/consolekit/internal/console"
)

func newTestState(t *testing.T, opts ...Option) (*State, *console.Grid) {
	t.Helper()
	grid, err := console.NewGrid(10, 4, console.DefaultFont())
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	s, err := NewState(grid, opts...)
	if err != nil {
		t.Fatalf("NewState failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, grid
}

func TestNewStateNeedsGrid(t *testing.T) {
	if _, err := NewState(nil); !errors.Is(err, ErrNoGrid) {
		t.Errorf("expected ErrNoGrid, got %v", err)
	}
}

func TestSandboxLibraries(t *testing.T) {
	s, _ := newTestState(t)
	ctx := context.Background()

	if err := s.DoString(ctx, `x = string.upper("ok") .. math.floor(2.5) .. table.concat({"a","b"})`); err != nil {
		t.Fatalf("DoString failed: %v", err)
	}
	if got := s.L.GetGlobal("x").String(); got != "OK2ab" {
		t.Errorf("expected OK2ab, got %q", got)
	}

	for _, name := range []string{"io", "os", "debug", "dofile", "loadfile", "load", "loadstring", "require"} {
		if v := s.L.GetGlobal(name); v != lua.LNil {
			t.Errorf("expected %s to be nil, got %s", name, v.Type())
		}
	}
}

func TestPrintGoesToLogger(t *testing.T) {
	var buf bytes.Buffer
	s, _ := newTestState(t, WithLogger(log.New(&buf)))

	if err := s.DoString(context.Background(), `print("hello", 42)`); err != nil {
		t.Fatalf("DoString failed: %v", err)
	}
	if !strings.Contains(buf.String(), "hello\t42") {
		t.Errorf("expected logged print output, got %q", buf.String())
	}
}

func TestDoFile(t *testing.T) {
	s, grid := newTestState(t)
	path := filepath.Join(t.TempDir(), "scene.lua")
	if err := os.WriteFile(path, []byte(`console.print(0, 0, "file")`), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := s.DoFile(context.Background(), path); err != nil {
		t.Fatalf("DoFile failed: %v", err)
	}
	if got := rowText(grid, 0)[:4]; got != "file" {
		t.Errorf("expected file, got %q", got)
	}
}

func TestDoFileErrors(t *testing.T) {
	s, _ := newTestState(t)
	ctx := context.Background()

	if err := s.DoFile(ctx, filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.lua")
	if err := os.WriteFile(path, []byte(`this is not lua`), 0o600); err != nil {
		t.Fatal(err)
	}
	err := s.DoFile(ctx, path)
	if err == nil || !strings.Contains(err.Error(), "compiling") {
		t.Errorf("expected compile error, got %v", err)
	}
}

func TestTimeout(t *testing.T) {
	s, _ := newTestState(t, WithTimeout(20*time.Millisecond))

	start := time.Now()
	err := s.DoString(context.Background(), `while true do end`)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("expected loop to stop quickly, took %v", elapsed)
	}

	// The state stays usable after a timeout.
	if err := s.DoString(context.Background(), `y = 1`); err != nil {
		t.Errorf("expected state usable after timeout, got %v", err)
	}
}

func TestCall(t *testing.T) {
	s, _ := newTestState(t)
	ctx := context.Background()

	if err := s.DoString(ctx, `function add(a, b) return a + b, "done" end; notfn = 3`); err != nil {
		t.Fatalf("DoString failed: %v", err)
	}

	results, err := s.Call(ctx, "add", lua.LNumber(2), lua.LNumber(3))
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if len(results) != 2 || results[0].String() != "5" || results[1].String() != "done" {
		t.Errorf("expected [5 done], got %v", results)
	}

	results, err = s.Call(ctx, "missing")
	if err != nil || len(results) != 0 {
		t.Errorf("expected no results and no error for missing hook, got %v, %v", results, err)
	}

	if _, err := s.Call(ctx, "notfn"); err == nil {
		t.Error("expected error calling a non-function")
	}
}

func TestClosed(t *testing.T) {
	s, _ := newTestState(t)
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("expected second Close to be nil, got %v", err)
	}

	ctx := context.Background()
	if err := s.DoString(ctx, `x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("expected ErrStateClosed, got %v", err)
	}
	if _, err := s.Call(ctx, "f"); !errors.Is(err, ErrStateClosed) {
		t.Errorf("expected ErrStateClosed from Call, got %v", err)
	}
}

// rowText renders row y through the grid font.
func rowText(g *console.Grid, y int) string {
	var sb strings.Builder
	for x := 0; x < g.Width(); x++ {
		c, _ := g.CellAt(x, y)
		sb.WriteRune(g.Font().Rune(c.Glyph))
	}
	return sb.String()
}
