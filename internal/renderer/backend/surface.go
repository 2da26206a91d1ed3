package backend

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/consolekit/internal/renderer/core"
)

// ErrSurfaceAllocation indicates the host could not provide a render
// surface. It is fatal to the frame controller and never retried.
var ErrSurfaceAllocation = errors.New("render surface allocation failed")

// DefaultSurfaceBudget is the pixel budget of a MemoryAllocator created
// with a zero budget: a 4096x4096 surface.
const DefaultSurfaceBudget = 4096 * 4096

// Surface is an off-screen buffer of logical pixels. Layers are composed
// into it and it is then presented onto the physical backend.
type Surface struct {
	handle uuid.UUID
	width  int
	height int
	pixels []Content
}

// Handle identifies the surface for logging.
func (s *Surface) Handle() uuid.UUID {
	return s.handle
}

// Size returns the surface dimensions in logical pixels.
func (s *Surface) Size() core.Size {
	return core.NewSize(s.width, s.height)
}

// Bounds returns the surface rectangle anchored at the origin.
func (s *Surface) Bounds() core.Rect {
	return core.NewRect(0, 0, s.width, s.height)
}

// Set writes one logical pixel. Out-of-range positions are ignored.
func (s *Surface) Set(x, y int, c Content) {
	if x >= 0 && y >= 0 && x < s.width && y < s.height {
		s.pixels[y*s.width+x] = c
	}
}

// At returns the logical pixel at (x, y), or EmptyContent when out of range.
func (s *Surface) At(x, y int) Content {
	if x >= 0 && y >= 0 && x < s.width && y < s.height {
		return s.pixels[y*s.width+x]
	}
	return EmptyContent()
}

// Fill sets every pixel inside rect, clipped to the surface.
func (s *Surface) Fill(rect core.Rect, c Content) {
	area := rect.Intersect(s.Bounds())
	for y := area.Top(); y < area.Bottom(); y++ {
		row := s.pixels[y*s.width : (y+1)*s.width]
		for x := area.Left(); x < area.Right(); x++ {
			row[x] = c
		}
	}
}

// Clear sets every pixel to c.
func (s *Surface) Clear(c Content) {
	for i := range s.pixels {
		s.pixels[i] = c
	}
}

// Allocator creates render surfaces.
type Allocator interface {
	AllocateRenderSurface(width, height int) (*Surface, error)
}

// MemoryAllocator allocates surfaces from process memory, refusing any
// surface larger than its pixel budget.
type MemoryAllocator struct {
	mu        sync.Mutex
	budget    int
	allocated int
}

// NewMemoryAllocator creates an allocator with the given pixel budget.
// A budget of zero or less selects DefaultSurfaceBudget.
func NewMemoryAllocator(budget int) *MemoryAllocator {
	if budget <= 0 {
		budget = DefaultSurfaceBudget
	}
	return &MemoryAllocator{budget: budget}
}

// AllocateRenderSurface returns a cleared surface of width x height pixels.
// Failures wrap ErrSurfaceAllocation.
func (a *MemoryAllocator) AllocateRenderSurface(width, height int) (*Surface, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrSurfaceAllocation, width, height)
	}
	if width > a.budget/height {
		return nil, fmt.Errorf("%w: %dx%d exceeds budget of %d pixels",
			ErrSurfaceAllocation, width, height, a.budget)
	}

	s := &Surface{
		handle: uuid.New(),
		width:  width,
		height: height,
		pixels: make([]Content, width*height),
	}
	s.Clear(EmptyContent())

	a.mu.Lock()
	a.allocated++
	a.mu.Unlock()
	return s, nil
}

// Allocated returns the number of surfaces handed out.
func (a *MemoryAllocator) Allocated() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocated
}

var _ Allocator = (*MemoryAllocator)(nil)
