// Package app runs an interactive console session. It wires the config,
// the world grid and its camera sub-view, the frame controller and the
// host backend together and owns the main event loop.
package app

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/consolekit/internal/config"
	"github.com/dshills/consolekit/internal/console"
	"github.com/dshills/consolekit/internal/renderer"
	"github.com/dshills/consolekit/internal/renderer/backend"
	"github.com/dshills/consolekit/internal/renderer/core"
	"github.com/dshills/consolekit/internal/renderer/viewport"
	"github.com/dshills/consolekit/internal/script"
)

// Options configures the application. Non-empty fields override the
// loaded configuration.
type Options struct {
	// ConfigPath is the TOML or YAML configuration file. Empty uses
	// defaults and the environment only.
	ConfigPath string

	// Policy overrides render.policy.
	Policy string

	// ScriptPath overrides script.path.
	ScriptPath string

	// LogFile overrides logging.file.
	LogFile string

	// LogLevel overrides logging.level.
	LogLevel string

	// LogOutput replaces the log file entirely.
	LogOutput io.Writer

	// Backend is the host display. Nil opens the terminal.
	Backend backend.Backend

	// Allocator provides render surfaces. Nil uses a MemoryAllocator sized
	// by render.surface_max.
	Allocator backend.Allocator

	// ConfigOptions are passed to config.New after the path.
	ConfigOptions []config.Option
}

// App is the interactive console session.
type App struct {
	opts     Options
	cfg      *config.Config
	settings *config.Settings
	watcher  *config.Watcher

	logger  *log.Logger
	logFile io.Closer

	backend    backend.Backend
	controller *renderer.Controller

	world     *console.Grid
	camera    *console.SubView
	hud       *console.Grid
	highlight *console.Grid
	hover     core.Point
	hovering  bool

	script *script.State

	running atomic.Bool
	closed  bool
}

// New loads the configuration, opens the backend and builds the scene.
func New(opts Options) (*App, error) {
	a := &App{opts: opts}
	if err := a.bootstrap(); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func (a *App) bootstrap() error {
	cfgOpts := append([]config.Option{config.WithPath(a.opts.ConfigPath)}, a.opts.ConfigOptions...)
	a.cfg = config.New(cfgOpts...)
	settings, err := a.cfg.Load()
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	a.applyOverrides(settings)
	if err := settings.Validate(); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	a.settings = settings

	if err := a.initLogger(); err != nil {
		return &InitError{Component: "logger", Err: err}
	}

	if err := a.initScene(); err != nil {
		return &InitError{Component: "scene", Err: err}
	}

	if err := a.initBackend(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}

	if err := a.initScript(); err != nil {
		return &InitError{Component: "script", Err: err}
	}

	if a.cfg.Path() != "" {
		a.watcher, err = config.NewWatcher(a.cfg, config.WithLogger(component(a.logger, "config")))
		if err != nil {
			return &InitError{Component: "config watcher", Err: err}
		}
	}

	a.refresh()
	a.logger.Info("session ready",
		"policy", a.settings.Render.Policy,
		"console", a.settings.LogicalSize(),
		"world", a.settings.WorldSize())
	return nil
}

// applyOverrides copies command line options over the loaded settings.
func (a *App) applyOverrides(s *config.Settings) {
	if a.opts.Policy != "" {
		s.Render.Policy = a.opts.Policy
	}
	if a.opts.ScriptPath != "" {
		s.Script.Path = a.opts.ScriptPath
	}
	if a.opts.LogFile != "" {
		s.Logging.File = a.opts.LogFile
	}
	if a.opts.LogLevel != "" {
		s.Logging.Level = a.opts.LogLevel
	}
}

func (a *App) initLogger() error {
	out := a.opts.LogOutput
	if out == nil {
		f, err := openLogFile(a.settings.Logging.File)
		if err != nil {
			return err
		}
		a.logFile = f
		out = f
	}
	logger, err := NewLogger(out, a.settings.Logging)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// initScene builds the world grid, the camera over it, the status line and
// the hover highlight.
func (a *App) initScene() error {
	s := a.settings
	font := s.Font()

	world, err := console.NewGrid(s.View.WorldWidth, s.View.WorldHeight, font)
	if err != nil {
		return err
	}
	a.world = world
	if err := a.applyViewColors(s); err != nil {
		return err
	}

	a.camera, err = console.NewSubView(world, s.Window())
	if err != nil {
		return err
	}

	if a.hud, err = console.NewGrid(s.Render.Columns, 1, font); err != nil {
		return err
	}
	a.hud.SetDefaultColors(core.ColorBlack, core.ColorGray)

	if a.highlight, err = console.NewGrid(1, 1, font); err != nil {
		return err
	}

	drawWorld(world)
	return nil
}

func (a *App) applyViewColors(s *config.Settings) error {
	fg, bg, err := s.Colors()
	if err != nil {
		return err
	}
	tint, err := s.TintValue()
	if err != nil {
		return err
	}
	a.world.SetDefaultColors(fg, bg)
	a.world.SetTint(tint)
	return nil
}

func (a *App) initBackend() error {
	b := a.opts.Backend
	if b == nil {
		term, err := backend.NewTerminal()
		if err != nil {
			return err
		}
		b = term
	}
	if err := b.Init(); err != nil {
		return err
	}
	a.backend = b
	b.EnableMouse()

	policy, err := viewport.ParsePolicy(a.settings.Render.Policy)
	if err != nil {
		return err
	}
	letterbox, err := a.settings.LetterboxColor()
	if err != nil {
		return err
	}

	allocator := a.opts.Allocator
	if allocator == nil {
		allocator = backend.NewMemoryAllocator(a.settings.Render.SurfaceMax)
	}

	a.controller, err = renderer.New(b, allocator, renderer.Options{
		Policy:        policy,
		LogicalSize:   a.settings.LogicalSize(),
		CellSize:      a.world.Font().Size(),
		MinWindowSize: core.NewSize(a.settings.Render.MinWidth, a.settings.Render.MinHeight),
		Letterbox:     letterbox,
		MaxFPS:        a.settings.Render.MaxFPS,
		Logger:        component(a.logger, "renderer"),
	})
	if err != nil {
		return err
	}
	a.controller.OnResized(func(state renderer.RenderState) {
		a.logger.Debug("placement changed",
			"physical", state.PhysicalSize,
			"placement", state.Result.Placement,
			"degenerate", state.Result.Degenerate)
	})
	return nil
}

func (a *App) initScript() error {
	path := a.settings.Script.Path
	if path == "" {
		return nil
	}
	state, err := script.NewState(a.world, script.WithLogger(component(a.logger, "script")))
	if err != nil {
		return err
	}
	a.script = state
	return state.DoFile(context.Background(), path)
}

// Run drives the session until the user quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.close()

	g, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g.Go(func() error {
		defer cancel()
		return a.eventLoop(ctx)
	})
	fps := a.settings.Render.MaxFPS
	g.Go(func() error {
		a.tick(ctx, fps)
		return nil
	})
	if a.watcher != nil {
		w := a.watcher
		a.watcher = nil
		g.Go(func() error {
			return w.Run(ctx, a.postReload)
		})
	}

	err := g.Wait()
	if errors.Is(err, ErrQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// frameTick asks the event loop to render.
type frameTick struct{}

// wakeUp unblocks PollEvent when the session is stopping.
type wakeUp struct{}

// tick posts a frameTick at the configured frame rate. Posting keeps every
// grid access on the event loop goroutine.
func (a *App) tick(ctx context.Context, fps int) {
	fps = max(fps, 1)
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.backend.PostEvent(backend.InterruptEvent(wakeUp{}))
			return
		case <-ticker.C:
			a.backend.PostEvent(backend.InterruptEvent(frameTick{}))
		}
	}
}

// close releases everything New acquired. It is safe to call twice.
func (a *App) close() {
	if a.closed {
		return
	}
	a.closed = true

	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	if a.script != nil {
		_ = a.script.Close()
	}
	if a.backend != nil {
		a.backend.Shutdown()
	}
	if a.logger != nil {
		a.logger.Info("session closed")
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

// Close releases the session without running it.
func (a *App) Close() {
	if a.running.Load() {
		return
	}
	a.close()
}

// Settings returns the active settings.
func (a *App) Settings() *config.Settings {
	return a.settings
}

// Controller returns the frame controller.
func (a *App) Controller() *renderer.Controller {
	return a.controller
}

// World returns the backing grid.
func (a *App) World() *console.Grid {
	return a.world
}

// Camera returns the sub-view presented on screen.
func (a *App) Camera() *console.SubView {
	return a.camera
}

// Hover returns the camera cell under the mouse, if any.
func (a *App) Hover() (core.Point, bool) {
	return a.hover, a.hovering
}
