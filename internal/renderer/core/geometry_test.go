package core

import "testing"

func TestSizeIsPositive(t *testing.T) {
	tests := []struct {
		size Size
		want bool
	}{
		{NewSize(80, 25), true},
		{NewSize(1, 1), true},
		{NewSize(0, 25), false},
		{NewSize(80, 0), false},
		{NewSize(-1, 5), false},
	}

	for _, tt := range tests {
		if got := tt.size.IsPositive(); got != tt.want {
			t.Errorf("%v.IsPositive(): expected %v, got %v", tt.size, tt.want, got)
		}
	}
}

func TestSizeMul(t *testing.T) {
	got := NewSize(80, 25).Mul(NewSize(8, 16))
	if got != NewSize(640, 400) {
		t.Errorf("expected 640x400, got %v", got)
	}
	if got := NewSize(640, 400).Scaled(2); got != NewSize(1280, 800) {
		t.Errorf("expected 1280x800, got %v", got)
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 5, 20, 8)

	if r.Left() != 10 || r.Top() != 5 {
		t.Errorf("expected origin (10,5), got (%d,%d)", r.Left(), r.Top())
	}
	if r.Right() != 30 || r.Bottom() != 13 {
		t.Errorf("expected right/bottom (30,13), got (%d,%d)", r.Right(), r.Bottom())
	}
	if r.Area() != 160 {
		t.Errorf("expected area 160, got %d", r.Area())
	}
	if r.Center() != NewPoint(20, 9) {
		t.Errorf("expected center (20,9), got %v", r.Center())
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 10, 10)

	tests := []struct {
		p    Point
		want bool
	}{
		{NewPoint(0, 0), true},
		{NewPoint(9, 9), true},
		{NewPoint(10, 0), false},
		{NewPoint(0, 10), false},
		{NewPoint(-1, 5), false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v): expected %v, got %v", tt.p, tt.want, got)
		}
	}
}

func TestRectEmpty(t *testing.T) {
	if !(Rect{}).IsEmpty() {
		t.Error("zero rect should be empty")
	}
	if (Rect{}).Area() != 0 {
		t.Error("zero rect should have zero area")
	}
	if NewRect(0, 0, 1, 1).IsEmpty() {
		t.Error("1x1 rect should not be empty")
	}
}

func TestRectIntersect(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 10, 10)

	got := a.Intersect(b)
	if got != NewRect(5, 5, 5, 5) {
		t.Errorf("expected (5,5 5x5), got %v", got)
	}

	if !a.Intersect(NewRect(20, 20, 2, 2)).IsEmpty() {
		t.Error("disjoint rects should not intersect")
	}
}

func TestRectContainsRect(t *testing.T) {
	outer := NewRect(0, 0, 80, 25)

	if !outer.ContainsRect(NewRect(10, 5, 20, 10)) {
		t.Error("inner rect should be contained")
	}
	if outer.ContainsRect(NewRect(70, 5, 20, 10)) {
		t.Error("overflowing rect should not be contained")
	}
}

func TestScaleIsValid(t *testing.T) {
	if !Identity.IsValid() {
		t.Error("identity scale should be valid")
	}
	if (Scale{X: 0, Y: 1}).IsValid() {
		t.Error("zero component should be invalid")
	}
}
