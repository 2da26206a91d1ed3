package renderer

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dshills/consolekit/internal/renderer/backend"
	"github.com/dshills/consolekit/internal/renderer/core"
	"github.com/dshills/consolekit/internal/renderer/viewport"
)

// timeNow is replaced in tests.
var timeNow = time.Now

// Options configures the controller.
type Options struct {
	// Resolution
	Policy      viewport.Policy // Resize policy (nil = Stretch)
	LogicalSize core.Size       // Console size in cells
	CellSize    core.Size       // Pixel size of one cell (zero = 1x1)

	// Window
	MinWindowSize core.Size  // Smallest physical size enforced on resize (zero = none)
	Letterbox     core.Color // Color of physical pixels outside the placement

	// Performance
	MaxFPS int // Maximum frames per second for Render

	Logger *log.Logger // nil discards
}

// DefaultOptions returns an 80x25 console of 1x1 cells, integer scaled.
func DefaultOptions() Options {
	return Options{
		Policy:      viewport.IntegerScale{},
		LogicalSize: core.NewSize(80, 25),
		CellSize:    core.NewSize(1, 1),
		Letterbox:   core.ColorDefault,
		MaxFPS:      60,
	}
}

// ResizeState is the state of the resize state machine.
type ResizeState int

const (
	// ResizeIdle accepts the next resize notification.
	ResizeIdle ResizeState = iota
	// ResizeApplying suppresses notifications until the current resize
	// has been applied.
	ResizeApplying
)

func (s ResizeState) String() string {
	if s == ResizeApplying {
		return "applying"
	}
	return "idle"
}

// RenderState is the controller's view of the display.
type RenderState struct {
	Policy       viewport.Policy
	LogicalSize  core.Size // cells
	CellSize     core.Size // pixels per cell
	PhysicalSize core.Size
	Result       viewport.Result
	Surface      *backend.Surface
}

// Controller owns the render state and produces frames.
type Controller struct {
	mu sync.Mutex

	backend   backend.Backend
	allocator backend.Allocator
	logger    *log.Logger

	opts  Options
	state RenderState

	resize     ResizeState
	suppressed uint64
	fatal      error

	listeners []func(RenderState)
	layers    []Layer

	// Frame timing
	lastFrame    time.Time
	minFrameTime time.Duration
	frameCount   uint64
	needsRedraw  bool
}

// New creates a controller, registers it for the backend's resize
// notifications and computes the initial placement.
// A nil allocator selects a MemoryAllocator with the default budget.
func New(b backend.Backend, allocator backend.Allocator, opts Options) (*Controller, error) {
	if b == nil {
		return nil, ErrNoBackend
	}
	if allocator == nil {
		allocator = backend.NewMemoryAllocator(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.MaxFPS <= 0 {
		opts.MaxFPS = 60
	}

	c := &Controller{
		backend:      b,
		allocator:    allocator,
		logger:       logger,
		opts:         opts,
		minFrameTime: time.Second / time.Duration(opts.MaxFPS),
		needsRedraw:  true,
		state: RenderState{
			Policy:      opts.Policy,
			LogicalSize: opts.LogicalSize,
			CellSize:    normalizeCell(opts.CellSize),
		},
	}

	b.OnResize(func() {
		if err := c.HandleResize(); err != nil {
			c.logger.Error("resize failed", "err", err)
		}
	})

	if err := c.HandleResize(); err != nil {
		return nil, err
	}
	return c, nil
}

func normalizeCell(cell core.Size) core.Size {
	if !cell.IsPositive() {
		return core.NewSize(1, 1)
	}
	return cell
}

// State returns a copy of the current render state.
func (c *Controller) State() RenderState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ResizeState returns the state of the resize state machine.
func (c *Controller) ResizeState() ResizeState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resize
}

// Suppressed returns how many resize notifications arrived while a resize
// was being applied.
func (c *Controller) Suppressed() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.suppressed
}

// Err returns the fatal error that stopped the controller, if any.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fatal
}

// OnResized registers fn to run after every applied resize.
func (c *Controller) OnResized(fn func(RenderState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// HandleResize is the resize notification entry point. In the Idle state it
// moves to Applying, enforces the minimum window size, recomputes the
// placement, reallocates the surface and returns to Idle. A notification
// received while Applying is counted and otherwise ignored.
func (c *Controller) HandleResize() error {
	c.mu.Lock()
	if c.fatal != nil {
		err := c.fatal
		c.mu.Unlock()
		return err
	}
	if c.resize == ResizeApplying {
		c.suppressed++
		c.mu.Unlock()
		return nil
	}
	c.resize = ResizeApplying
	c.mu.Unlock()

	err := c.apply()

	c.mu.Lock()
	c.resize = ResizeIdle
	state := c.state
	listeners := append([]func(RenderState){}, c.listeners...)
	c.mu.Unlock()

	if err != nil {
		return err
	}
	for _, fn := range listeners {
		fn(state)
	}
	return nil
}

// apply runs with the state machine in Applying. Backend calls are made
// without holding mu since they may raise nested notifications.
func (c *Controller) apply() error {
	c.enforceMinimumSize()

	width, height := c.backend.Size()
	physical := core.NewSize(width, height)

	c.mu.Lock()
	logical, cell, policy := c.state.LogicalSize, c.state.CellSize, c.state.Policy
	c.mu.Unlock()

	result := viewport.Compute(logical, physical, policy, cell)

	// The surface is replaced on every compute, even at an unchanged size.
	var surface *backend.Surface
	if !result.Degenerate {
		allocated, err := c.allocator.AllocateRenderSurface(result.Output.Width, result.Output.Height)
		if err != nil {
			fatal := &AllocationError{Size: result.Output, Err: err}
			c.mu.Lock()
			c.fatal = fatal
			c.mu.Unlock()
			c.logger.Error("render surface allocation failed", "size", result.Output, "err", err)
			return fatal
		}
		surface = allocated
		c.logger.Debug("render surface allocated", "handle", surface.Handle(), "size", result.Output)
	}

	c.mu.Lock()
	c.state.PhysicalSize = physical
	c.state.Result = result
	c.state.Surface = surface
	c.needsRedraw = true
	c.mu.Unlock()

	c.logger.Debug("placement computed",
		"policy", viewport.PolicyName(policy),
		"physical", physical,
		"placement", result.Placement,
		"scale", result.Scale,
		"degenerate", result.Degenerate)
	return nil
}

func (c *Controller) enforceMinimumSize() {
	minimum := c.opts.MinWindowSize
	if minimum.Width <= 0 && minimum.Height <= 0 {
		return
	}
	resizer, ok := c.backend.(backend.Resizer)
	if !ok {
		return
	}

	width, height := c.backend.Size()
	if width >= minimum.Width && height >= minimum.Height {
		return
	}
	if err := resizer.SetSize(max(width, minimum.Width), max(height, minimum.Height)); err != nil {
		c.logger.Warn("could not enforce minimum window size", "min", minimum, "err", err)
	}
}

// SetPolicy changes the resize policy and recomputes the placement.
func (c *Controller) SetPolicy(policy viewport.Policy) error {
	c.mu.Lock()
	c.state.Policy = policy
	c.mu.Unlock()
	return c.HandleResize()
}

// SetLogicalSize changes the console size in cells and recomputes the
// placement.
func (c *Controller) SetLogicalSize(size core.Size) error {
	c.mu.Lock()
	c.state.LogicalSize = size
	c.mu.Unlock()
	return c.HandleResize()
}

// SetCellSize changes the pixel size of one cell and recomputes the
// placement.
func (c *Controller) SetCellSize(cell core.Size) error {
	c.mu.Lock()
	c.state.CellSize = normalizeCell(cell)
	c.mu.Unlock()
	return c.HandleResize()
}

// SetLetterbox changes the color drawn outside the placement.
func (c *Controller) SetLetterbox(color core.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opts.Letterbox = color
	c.needsRedraw = true
}

// ResizeWindowToFit asks the backend for a window of cols x rows cells plus
// extra pixels on each axis, then recomputes the placement.
func (c *Controller) ResizeWindowToFit(cols, rows, extraWidth, extraHeight int) error {
	resizer, ok := c.backend.(backend.Resizer)
	if !ok {
		return ErrNotResizable
	}

	c.mu.Lock()
	cell := c.state.CellSize
	c.mu.Unlock()

	if err := resizer.SetSize(cell.Width*cols+extraWidth, cell.Height*rows+extraHeight); err != nil {
		return err
	}
	return c.HandleResize()
}

// SetLayers replaces the layers drawn by Render, bottom first.
func (c *Controller) SetLayers(layers ...Layer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layers = layers
	c.needsRedraw = true
}

// MarkDirty marks the controller as needing a redraw.
func (c *Controller) MarkDirty() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.needsRedraw = true
}

// NeedsRedraw returns true if the controller needs to redraw.
func (c *Controller) NeedsRedraw() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.needsRedraw
}

// FrameCount returns the number of frames presented.
func (c *Controller) FrameCount() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frameCount
}

// Render composes the layers and presents them if a redraw is pending and
// the frame rate limit allows it.
func (c *Controller) Render() error {
	c.mu.Lock()
	now := timeNow()
	if !c.needsRedraw || now.Sub(c.lastFrame) < c.minFrameTime {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	return c.RenderNow()
}

// RenderNow composes and presents immediately.
func (c *Controller) RenderNow() error {
	c.mu.Lock()
	layers := c.layers
	c.mu.Unlock()

	if err := c.Compose(layers...); err != nil {
		return err
	}
	return c.Present()
}

// PointerToCell maps a physical pixel to the cell of layer under it.
// The returned position is in the layer's own cell coordinates.
func (c *Controller) PointerToCell(p core.Point, layer Layer) (core.Point, bool) {
	c.mu.Lock()
	result := c.state.Result
	c.mu.Unlock()

	if result.Degenerate || layer == nil {
		return core.Point{}, false
	}
	x, y, ok := viewport.PhysicalToLogical(p, result.Placement, result.Scale)
	if !ok {
		return core.Point{}, false
	}
	logical := core.NewPoint(int(x), int(y))
	if !layer.AbsoluteArea().Contains(logical) {
		return core.Point{}, false
	}
	return layer.Locate(logical)
}

// IsFatal reports whether err stopped the controller.
func IsFatal(err error) bool {
	var alloc *AllocationError
	return errors.As(err, &alloc)
}
