package core

import "fmt"

// Size is a width/height pair. Depending on context it is measured in
// cells (logical size) or pixels (physical size, cell size).
type Size struct {
	Width  int
	Height int
}

// NewSize creates a size.
func NewSize(width, height int) Size {
	return Size{Width: width, Height: height}
}

// IsPositive returns true if both dimensions are at least 1.
func (s Size) IsPositive() bool {
	return s.Width > 0 && s.Height > 0
}

// Mul returns the component-wise product of two sizes.
func (s Size) Mul(other Size) Size {
	return Size{Width: s.Width * other.Width, Height: s.Height * other.Height}
}

// Scaled returns the size multiplied by an integer factor.
func (s Size) Scaled(m int) Size {
	return Size{Width: s.Width * m, Height: s.Height * m}
}

// Area returns width * height, or 0 for non-positive sizes.
func (s Size) Area() int {
	if !s.IsPositive() {
		return 0
	}
	return s.Width * s.Height
}

// String returns "WxH".
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Point is a position in either cell or pixel space.
type Point struct {
	X int
	Y int
}

// NewPoint creates a point.
func NewPoint(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by other.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns p translated by -other.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// String returns "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect is an integer rectangle given by its top-left corner and size.
// The right and bottom edges are exclusive.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// NewRect creates a rectangle.
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// RectFromSize creates a rectangle at the origin with the given size.
func RectFromSize(s Size) Rect {
	return Rect{Width: s.Width, Height: s.Height}
}

// Left returns the left edge.
func (r Rect) Left() int { return r.X }

// Top returns the top edge.
func (r Rect) Top() int { return r.Y }

// Right returns the right edge (exclusive).
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the bottom edge (exclusive).
func (r Rect) Bottom() int { return r.Y + r.Height }

// Size returns the rectangle dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Area returns the number of unit squares covered, 0 if empty.
func (r Rect) Area() int {
	return r.Size().Area()
}

// IsEmpty returns true if the rectangle covers no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains returns true if the point lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() &&
		p.Y >= r.Y && p.Y < r.Bottom()
}

// ContainsRect returns true if other lies entirely inside r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.Right() <= r.Right() && other.Bottom() <= r.Bottom()
}

// Center returns the center point, rounded toward the top-left.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Translate returns the rectangle moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Intersect returns the overlapping region of two rectangles.
// Returns an empty rectangle if they don't overlap.
func (r Rect) Intersect(other Rect) Rect {
	left := max(r.X, other.X)
	top := max(r.Y, other.Y)
	right := min(r.Right(), other.Right())
	bottom := min(r.Bottom(), other.Bottom())
	if right <= left || bottom <= top {
		return Rect{}
	}
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// String returns "(x,y wxh)".
func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// Scale is a non-uniform scale factor. Each component is the number of
// logical pixels covered by one physical pixel on that axis.
type Scale struct {
	X float64
	Y float64
}

// Identity is the unit scale.
var Identity = Scale{X: 1, Y: 1}

// IsValid returns true if both components are strictly positive.
func (s Scale) IsValid() bool {
	return s.X > 0 && s.Y > 0
}

// String returns "(x,y)" with four decimals.
func (s Scale) String() string {
	return fmt.Sprintf("(%.4f,%.4f)", s.X, s.Y)
}
