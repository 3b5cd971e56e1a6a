// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package clip

// Region codes for a point relative to the window.
const (
	codeInside = 0
	codeLeft   = 1
	codeRight  = 2
	codeAbove  = 4
	codeBelow  = 8
)

// Window clips screen-space segments to an inclusive rectangle. The zero
// value clips to the single pixel center (0, 0).
type Window struct {
	r Rect
}

// NewWindow returns a Window clipping to r.
func NewWindow(r Rect) *Window {
	return &Window{r: r}
}

// Rect returns the clip rectangle.
func (w *Window) Rect() Rect {
	return w.r
}

func (w *Window) code(p Point) int {
	c := codeInside
	switch {
	case p.X < w.r.X:
		c |= codeLeft
	case p.X > w.r.Right():
		c |= codeRight
	}
	switch {
	case p.Y < w.r.Y:
		c |= codeAbove
	case p.Y > w.r.Bottom():
		c |= codeBelow
	}
	return c
}

// Clip returns the parameter range [t0, t1] of the segment p0 + (p1-p0)·t,
// t in [0, 1], that lies inside the window. Segments with both endpoints
// inside return (0, 1) without further work; ok is false when nothing of
// the segment is inside.
func (w *Window) Clip(p0, p1 Point) (t0, t1 float32, ok bool) {
	c0, c1 := w.code(p0), w.code(p1)
	if c0|c1 == codeInside {
		return 0, 1, true
	}
	if c0&c1 != codeInside {
		return 0, 0, false
	}

	t0, t1 = 0, 1
	dx, dy := p1.X-p0.X, p1.Y-p0.Y
	// One inequality p·t <= q per window side.
	for _, s := range [4][2]float32{
		{-dx, p0.X - w.r.X},
		{dx, w.r.Right() - p0.X},
		{-dy, p0.Y - w.r.Y},
		{dy, w.r.Bottom() - p0.Y},
	} {
		p, q := s[0], s[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			t0 = max(t0, t)
		} else {
			t1 = min(t1, t)
		}
		if t0 > t1 {
			return 0, 0, false
		}
	}
	return t0, t1, true
}

// ClipLine clips p0-p1 to the window and returns the clipped endpoints.
func (w *Window) ClipLine(p0, p1 Point) (q0, q1 Point, ok bool) {
	t0, t1, ok := w.Clip(p0, p1)
	if !ok {
		return p0, p1, false
	}
	return p0.Lerp(p1, t0), p0.Lerp(p1, t1), true
}
