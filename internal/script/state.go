// Package script runs Lua scene scripts against a console grid.
//
// Scripts get a sandboxed gopher-lua state: only the base, table, string
// and math libraries are opened, and the file-loading builtins are removed.
// Drawing goes through the global console table (see console.go).
package script

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/consolekit/internal/console"
)

// DefaultTimeout bounds a single DoString or DoFile call.
const DefaultTimeout = 5 * time.Second

// State wraps a gopher-lua state bound to one grid.
//
// gopher-lua's LState is not goroutine-safe; the mutex serializes every
// call made from Go.
type State struct {
	L *lua.LState

	mu      sync.Mutex
	grid    *console.Grid
	timeout time.Duration
	logger  *log.Logger
	closed  bool
}

// Option configures a State.
type Option func(*State)

// WithTimeout sets the execution timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(s *State) {
		s.timeout = d
	}
}

// WithLogger routes the Lua print function to logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *State) {
		s.logger = logger
	}
}

// NewState creates a sandboxed state whose console table draws into grid.
func NewState(grid *console.Grid, opts ...Option) (*State, error) {
	if grid == nil {
		return nil, ErrNoGrid
	}

	s := &State{
		grid:    grid,
		timeout: DefaultTimeout,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(s.L)
	s.sandbox()
	registerConsole(s.L, grid)

	return s, nil
}

// openSafeLibraries opens only the libraries with no host access.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes loaders that reach the file system and replaces print.
func (s *State) sandbox() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.L.SetGlobal("print", s.L.NewFunction(s.luaPrint))
}

func (s *State) luaPrint(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	s.logger.Info(strings.Join(parts, "\t"))
	return 0
}

// Grid returns the grid the console table draws into.
func (s *State) Grid() *console.Grid {
	return s.grid
}

// DoString executes a chunk of Lua source.
func (s *State) DoString(ctx context.Context, code string) error {
	return s.run(ctx, func() error {
		return s.L.DoString(code)
	})
}

// DoFile reads and executes a Lua file. The file is read from Go so the
// sandbox never needs io or package access.
func (s *State) DoFile(ctx context.Context, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	fn, err := s.compile(string(src), path)
	if err != nil {
		return err
	}
	return s.run(ctx, func() error {
		s.L.Push(fn)
		return s.L.PCall(0, lua.MultRet, nil)
	})
}

func (s *State) compile(src, name string) (*lua.LFunction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrStateClosed
	}
	fn, err := s.L.Load(strings.NewReader(src), name)
	if err != nil {
		return nil, fmt.Errorf("compiling %s: %w", name, err)
	}
	return fn, nil
}

// run executes fn under the lock with the timeout context and panic
// recovery.
func (s *State) run(ctx context.Context, fn func() error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Call invokes a global Lua function, returning its results.
// A missing function is not an error; scripts may leave hooks undefined.
func (s *State) Call(ctx context.Context, name string, args ...lua.LValue) ([]lua.LValue, error) {
	var results []lua.LValue
	err := s.run(ctx, func() error {
		fnVal := s.L.GetGlobal(name)
		if fnVal == lua.LNil {
			return nil
		}
		if fnVal.Type() != lua.LTFunction {
			return fmt.Errorf("%q is not a function (got %s)", name, fnVal.Type())
		}

		top := s.L.GetTop()
		s.L.Push(fnVal)
		for _, arg := range args {
			s.L.Push(arg)
		}
		if err := s.L.PCall(len(args), lua.MultRet, nil); err != nil {
			return err
		}

		n := s.L.GetTop() - top
		results = make([]lua.LValue, 0, max(n, 0))
		for i := 1; i <= n; i++ {
			results = append(results, s.L.Get(top+i))
		}
		s.L.Pop(n)
		return nil
	})
	return results, err
}

// Close releases the Lua state. Later calls return ErrStateClosed.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
