// Package clip provides 2D clipping of screen-space primitives against the
// target rectangle.
package clip

// Point represents a 2D point in pixel coordinates.
type Point struct {
	X, Y float32
}

// Pt creates a Point from x, y coordinates.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Lerp performs linear interpolation between p and q.
func (p Point) Lerp(q Point, t float32) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Rect represents a rectangle with inclusive bounds.
type Rect struct {
	X, Y float32 // Top-left corner
	W, H float32 // Width and height
}

// NewRect creates a Rect from position and size.
func NewRect(x, y, w, h float32) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// PixelRect returns the rectangle [0, width-1] x [0, height-1] covering the
// centers of every addressable pixel of a target.
func PixelRect(width, height int) Rect {
	return Rect{W: float32(width - 1), H: float32(height - 1)}
}

// Right returns the right edge x-coordinate.
func (r Rect) Right() float32 {
	return r.X + r.W
}

// Bottom returns the bottom edge y-coordinate.
func (r Rect) Bottom() float32 {
	return r.Y + r.H
}

// Contains returns true if the point is inside the rectangle (edges included).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}
