package common

import "github.com/jakecoffman/cp"

// Point is a position in simulation space. The origin is the bottom-left
// corner of the play field and y grows upward; flipping for presentation
// happens at the render boundary.
type Point = cp.Vector

// Rect is an axis-aligned rectangle whose X/Y is the lower-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// BB returns the rectangle as a chipmunk bounding box.
func (r Rect) BB() cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.X + r.Width, T: r.Y + r.Height}
}

// Overlaps reports whether r and other share a region of non-zero area.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(other Rect) bool {
	if r.Width <= 0 || r.Height <= 0 || other.Width <= 0 || other.Height <= 0 {
		return false
	}
	a, b := r.BB(), other.BB()
	if !a.Intersects(b) {
		return false
	}
	// Intersects counts shared edges; drop those
	return a.L != b.R && b.L != a.R && a.B != b.T && b.B != a.T
}

// Contains reports whether other lies entirely inside r.
func (r Rect) Contains(other Rect) bool {
	return r.BB().Contains(other.BB())
}

// TopLeft returns the rectangle's top-left corner in a y-down space of the
// given height. This is the only place simulation y is flipped.
func (r Rect) TopLeft(screenHeight float64) (x, y float64) {
	return r.X, screenHeight - (r.Y + r.Height)
}

// ClampPoint returns the point inside r nearest to p. A zero-height r
// clamps along x only.
func (r Rect) ClampPoint(p Point) Point {
	return r.BB().ClampVect(&p)
}
