// Package core provides the platform types shared by the game and the
// terminal front end: the screen buffer, input frames and runtime config.
// It has no Bubble Tea dependency so game code stays testable.
package core

// Point is a screen position in terminal cells.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned screen area.
type Rect struct {
	X, Y int // top-left corner
	W, H int
}

// NewRect creates a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Cell maps p to a tile index inside a rectangle split into tiles of
// cw x ch cells. ok is false when p is outside the rectangle.
func (r Rect) Cell(p Point, cw, ch int) (col, row int, ok bool) {
	if cw <= 0 || ch <= 0 || !r.Contains(p) {
		return 0, 0, false
	}
	return (p.X - r.X) / cw, (p.Y - r.Y) / ch, true
}

// Centered returns a w x h rectangle centered inside r.
func (r Rect) Centered(w, h int) Rect {
	return Rect{X: r.X + (r.W-w)/2, Y: r.Y + (r.H-h)/2, W: w, H: h}
}

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
