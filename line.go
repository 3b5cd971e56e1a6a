package softrast

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/softrast/internal/clip"
)

// DrawLine draws a one-pixel line from p0 to p1 in color c.
//
// The points are in the same space as the model matrix input. The segment
// is clipped against the near plane, projected through mvp and the
// viewport, clipped to the target and drawn with an integer error
// accumulator. Lines are not depth-tested; the active blend mode applies.
// UpdateMatrices must have run.
func (ctx *Context) DrawLine(p0, p1 Vec3, c RGBA) {
	assertf(ctx.derivedValid, "DrawLine before UpdateMatrices")
	if p0 == p1 {
		return
	}

	p0, p1, ok := ClipSegmentNear(ctx.nearPlane, p0, p1)
	if !ok {
		return
	}

	s0 := ctx.ToScreen(p0)
	s1 := ctx.ToScreen(p1)
	q0, q1, ok := ctx.screen.ClipLine(clip.Pt(s0.X, s0.Y), clip.Pt(s1.X, s1.Y))
	if !ok {
		return
	}

	ctx.stats.Lines++
	ctx.drawSpan(
		int(math32.Round(q0.X)), int(math32.Round(q0.Y)),
		int(math32.Round(q1.X)), int(math32.Round(q1.Y)),
		c)
}

// ClipSegmentNear clips the segment a-b against plane, keeping the part
// whose signed distance is non-negative. ok is false when the whole segment
// lies behind the plane. An endpoint behind the plane is moved to the
// intersection a + (b-a)·t, t = d_a / (d_a - d_b).
func ClipSegmentNear(plane Vec4, a, b Vec3) (Vec3, Vec3, bool) {
	da := plane.Dot(a.Vec4(1))
	db := plane.Dot(b.Vec4(1))
	switch {
	case da < 0 && db < 0:
		return a, b, false
	case da < 0:
		a = a.Lerp(b, da/(da-db))
	case db < 0:
		b = b.Lerp(a, db/(db-da))
	}
	return a, b, true
}

// drawSpan steps along the dominant axis one pixel at a time, moving the
// minor coordinate when the doubled error term exceeds the major delta.
func (ctx *Context) drawSpan(x0, y0, x1, y1 int, c RGBA) {
	dx, sx := x1-x0, 1
	if dx < 0 {
		dx, sx = -dx, -1
	}
	dy, sy := y1-y0, 1
	if dy < 0 {
		dy, sy = -dy, -1
	}

	x, y := x0, y0
	e := 0
	if dx >= dy {
		for range dx + 1 {
			ctx.plot(x, y, c)
			x += sx
			e += 2 * dy
			if e > dx {
				y += sy
				e -= 2 * dx
			}
		}
		return
	}
	for range dy + 1 {
		ctx.plot(x, y, c)
		y += sy
		e += 2 * dx
		if e > dy {
			x += sx
			e -= 2 * dy
		}
	}
}

func (ctx *Context) plot(x, y int, c RGBA) {
	if uint(x) >= uint(ctx.width) || uint(y) >= uint(ctx.height) {
		return
	}
	ctx.writePixel(y*ctx.width+x, c)
}
