package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/consolekit/internal/app"
)

func newTestCLI() (*CLI, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	c := New(&out, &errOut)
	c.isTerminal = func() bool { return true }
	c.runApp = func(context.Context, app.Options) error { return nil }
	return c, &out
}

func execute(c *CLI, args ...string) error {
	root := c.RootCommand()
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func TestVersion(t *testing.T) {
	c, out := newTestCLI()
	if err := execute(c, "version"); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "consolekit dev") {
		t.Errorf("expected version line, got %q", out.String())
	}
}

func TestVersionFlag(t *testing.T) {
	c, out := newTestCLI()
	if err := execute(c, "--version"); err != nil {
		t.Fatalf("--version failed: %v", err)
	}
	if !strings.Contains(out.String(), "consolekit dev") {
		t.Errorf("expected version line, got %q", out.String())
	}
}

func TestRunRequiresTerminal(t *testing.T) {
	c, _ := newTestCLI()
	c.isTerminal = func() bool { return false }
	called := false
	c.runApp = func(context.Context, app.Options) error {
		called = true
		return nil
	}

	if err := execute(c, "run"); !errors.Is(err, ErrNotTerminal) {
		t.Errorf("expected ErrNotTerminal, got %v", err)
	}
	if called {
		t.Error("expected session not to start")
	}
}

func TestRunPassesFlags(t *testing.T) {
	c, _ := newTestCLI()
	var got app.Options
	c.runApp = func(_ context.Context, opts app.Options) error {
		got = opts
		return nil
	}

	err := execute(c, "run",
		"--config", "game.toml",
		"--policy", "fit",
		"--script", "scene.lua",
		"--log-file", "session.log",
		"--log-level", "debug")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	want := app.Options{
		ConfigPath: "game.toml",
		Policy:     "fit",
		ScriptPath: "scene.lua",
		LogFile:    "session.log",
		LogLevel:   "debug",
	}
	if got.ConfigPath != want.ConfigPath || got.Policy != want.Policy || got.ScriptPath != want.ScriptPath ||
		got.LogFile != want.LogFile || got.LogLevel != want.LogLevel {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestRunReturnsSessionError(t *testing.T) {
	c, _ := newTestCLI()
	boom := errors.New("boom")
	c.runApp = func(context.Context, app.Options) error { return boom }

	if err := execute(c, "run"); !errors.Is(err, boom) {
		t.Errorf("expected session error, got %v", err)
	}
}
