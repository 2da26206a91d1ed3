package app

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/consolekit/internal/config"
	"github.com/dshills/consolekit/internal/console"
	"github.com/dshills/consolekit/internal/renderer"
	"github.com/dshills/consolekit/internal/renderer/backend"
	"github.com/dshills/consolekit/internal/renderer/core"
	"github.com/dshills/consolekit/internal/renderer/viewport"
)

// reloadRequest carries a config reload from the watcher goroutine.
type reloadRequest struct {
	settings *config.Settings
	err      error
}

// eventLoop renders and handles events until quit or cancellation.
// All grid and view mutations happen here.
func (a *App) eventLoop(ctx context.Context) error {
	if err := a.controller.RenderNow(); err != nil {
		return err
	}

	for {
		ev := a.backend.PollEvent()
		if ctx.Err() != nil {
			return nil
		}
		if err := a.handleEvent(ctx, ev); err != nil {
			return err
		}
	}
}

// handleEvent processes a backend event. Returns ErrQuit if the session
// should end and any fatal render error.
func (a *App) handleEvent(ctx context.Context, ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return a.handleKey(ctx, ev)
	case backend.EventMouse:
		a.handleMouse(ev)
	case backend.EventResize:
		a.refresh()
	case backend.EventInterrupt:
		return a.handleInterrupt(ev)
	}
	return nil
}

func (a *App) handleInterrupt(ev backend.Event) error {
	switch payload := ev.Payload.(type) {
	case frameTick:
		return a.render()
	case reloadRequest:
		if payload.err != nil {
			a.logger.Warn("keeping previous config", "err", payload.err)
			return nil
		}
		if err := a.applySettings(payload.settings); err != nil {
			a.logger.Error("could not apply config", "err", err)
			return renderFatal(err)
		}
	}
	return nil
}

// render draws a frame if one is due. Only allocation failures stop the
// session; anything else is logged.
func (a *App) render() error {
	err := a.controller.Render()
	if err == nil {
		return nil
	}
	if renderer.IsFatal(err) {
		return err
	}
	a.logger.Warn("frame skipped", "err", err)
	return nil
}

func renderFatal(err error) error {
	if renderer.IsFatal(err) {
		return err
	}
	return nil
}

func (a *App) handleKey(ctx context.Context, ev backend.Event) error {
	switch ev.Key {
	case backend.KeyCtrlC, backend.KeyEscape:
		return ErrQuit
	case backend.KeyUp:
		a.pan(0, -1)
	case backend.KeyDown:
		a.pan(0, 1)
	case backend.KeyLeft:
		a.pan(-1, 0)
	case backend.KeyRight:
		a.pan(1, 0)
	case backend.KeyRune:
		switch ev.Rune {
		case 'q', 'Q':
			return ErrQuit
		case 'p', 'P':
			return renderFatal(a.cyclePolicy())
		default:
			a.scriptKey(ctx, ev.Rune)
		}
	}
	return nil
}

// pan moves the camera. A move past the world edge is rejected and the
// camera stays put.
func (a *App) pan(dx, dy int) {
	if err := a.camera.Move(dx, dy); err != nil {
		var bounds *console.BoundsError
		if errors.As(err, &bounds) {
			a.logger.Warn("pan rejected", "edge", bounds.Edge, "window", a.camera.Window())
		} else {
			a.logger.Error("pan failed", "err", err)
		}
		return
	}
	a.hovering = false
	a.refresh()
}

func (a *App) cyclePolicy() error {
	next := viewport.Next(a.controller.State().Policy)
	a.settings.Render.Policy = next.Name()
	a.logger.Info("policy changed", "policy", next.Name())
	err := a.controller.SetPolicy(next)
	a.refresh()
	return err
}

func (a *App) handleMouse(ev backend.Event) {
	if ev.MouseButton.IsWheel() {
		return
	}
	cell, ok := a.controller.PointerToCell(core.NewPoint(ev.MouseX, ev.MouseY), a.camera)
	if ok != a.hovering || cell != a.hover {
		a.hover, a.hovering = cell, ok
		a.refresh()
	}
}

// scriptKey forwards unbound keys to the script's on_key function.
func (a *App) scriptKey(ctx context.Context, r rune) {
	if a.script == nil {
		return
	}
	if _, err := a.script.Call(ctx, "on_key", lua.LString(string(r))); err != nil {
		a.logger.Warn("on_key failed", "err", err)
	}
	a.refresh()
}

// postReload runs on the watcher goroutine and hands the result to the
// event loop.
func (a *App) postReload(settings *config.Settings, err error) {
	a.backend.PostEvent(backend.InterruptEvent(reloadRequest{settings: settings, err: err}))
}

// applySettings switches the session to new settings. Command line
// overrides keep precedence over the file.
func (a *App) applySettings(s *config.Settings) error {
	a.applyOverrides(s)
	if err := s.Validate(); err != nil {
		a.logger.Warn("keeping previous config", "err", err)
		return nil
	}

	if level, err := log.ParseLevel(s.Logging.Level); err == nil {
		a.logger.SetLevel(level)
	}

	font := s.Font()
	if s.WorldSize() != a.world.Size() {
		if err := a.world.Resize(s.View.WorldWidth, s.View.WorldHeight); err != nil {
			return err
		}
	}
	a.world.SetFont(font)
	a.hud.SetFont(font)
	a.highlight.SetFont(font)
	if err := a.applyViewColors(s); err != nil {
		return err
	}
	if a.hud.Width() != s.Render.Columns {
		if err := a.hud.Resize(s.Render.Columns, 1); err != nil {
			return err
		}
	}
	if err := a.camera.SetWindow(s.Window()); err != nil {
		return err
	}
	a.hovering = false

	policy, err := viewport.ParsePolicy(s.Render.Policy)
	if err != nil {
		return err
	}
	letterbox, err := s.LetterboxColor()
	if err != nil {
		return err
	}
	a.controller.SetLetterbox(letterbox)
	if err := a.controller.SetCellSize(font.Size()); err != nil {
		return err
	}
	if err := a.controller.SetLogicalSize(s.LogicalSize()); err != nil {
		return err
	}
	if err := a.controller.SetPolicy(policy); err != nil {
		return err
	}

	a.settings = s
	a.logger.Info("config applied", "policy", s.Render.Policy, "console", s.LogicalSize())
	a.refresh()
	return nil
}
