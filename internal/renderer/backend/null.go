package backend

import (
	"sync"
)

// NullBackend is an in-memory backend for tests and headless runs.
// It also implements Resizer.
type NullBackend struct {
	mu            sync.Mutex
	width, height int
	pixels        []Content
	shows         int
	mouse         bool
	resizeHandler func()
	events        chan Event
	done          chan struct{}
	closeOnce     sync.Once
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
		done:   make(chan struct{}),
	}
}

func (b *NullBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.allocate()
	return nil
}

func (b *NullBackend) allocate() {
	b.pixels = make([]Content, max(b.width, 0)*max(b.height, 0))
	for i := range b.pixels {
		b.pixels[i] = EmptyContent()
	}
}

func (b *NullBackend) Shutdown() {
	b.closeOnce.Do(func() { close(b.done) })
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *NullBackend) OnResize(callback func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resizeHandler = callback
}

func (b *NullBackend) SetContent(x, y int, c Content) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x >= 0 && x < b.width && y >= 0 && y < b.height && b.pixels != nil {
		b.pixels[y*b.width+x] = c
	}
}

// ContentAt returns the pixel at (x, y), or EmptyContent when out of range.
func (b *NullBackend) ContentAt(x, y int) Content {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x >= 0 && x < b.width && y >= 0 && y < b.height && b.pixels != nil {
		return b.pixels[y*b.width+x]
	}
	return EmptyContent()
}

// Text returns row y as a string of runes.
func (b *NullBackend) Text(y int) string {
	width, _ := b.Size()
	out := make([]rune, width)
	for x := range out {
		out[x] = b.ContentAt(x, y).Rune
	}
	return string(out)
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.pixels {
		b.pixels[i] = EmptyContent()
	}
}

func (b *NullBackend) Show() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shows++
}

// ShowCount returns how many times Show was called.
func (b *NullBackend) ShowCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows
}

func (b *NullBackend) PollEvent() Event {
	select {
	case ev := <-b.events:
		return ev
	case <-b.done:
		return Event{Type: EventNone}
	}
}

func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

func (b *NullBackend) EnableMouse() {
	b.mu.Lock()
	b.mouse = true
	b.mu.Unlock()
}

func (b *NullBackend) DisableMouse() {
	b.mu.Lock()
	b.mouse = false
	b.mu.Unlock()
}

// MouseEnabled reports whether mouse reporting is on.
func (b *NullBackend) MouseEnabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mouse
}

// SetSize resizes the surface as if the host window had been resized.
func (b *NullBackend) SetSize(width, height int) error {
	b.Resize(width, height)
	return nil
}

// Resize simulates a host resize. The pixels are cleared, the resize
// callback runs, and an EventResize is queued.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width = width
	b.height = height
	b.allocate()
	handler := b.resizeHandler
	b.mu.Unlock()

	if handler != nil {
		handler()
	}
	b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}

// Pixels returns a copy of the surface in row-major order.
func (b *NullBackend) Pixels() []Content {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Content(nil), b.pixels...)
}

var _ Backend = (*NullBackend)(nil)
var _ Resizer = (*NullBackend)(nil)

