// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package softrast

import "github.com/chewxy/math32"

// Block rasterization parameters.
const (
	blockShift = 3
	blockSize  = 1 << blockShift // 8x8 pixel blocks

	// guardBand bounds screen-space vertex coordinates (pixels) so that Q8
	// coordinates fit in int32 and edge products fit in int64.
	guardBand = 1 << 20

	// insideAll is the corner mask with every edge non-negative.
	insideAll = 0b111
)

// triEdge is one edge function sampled on the integer pixel grid relative
// to the block-grid origin. Values are exact: the function is affine in
// pixel steps with integer increments.
type triEdge struct {
	c    int64 // value at the origin pixel
	xinc int64 // change per pixel step in x
	yinc int64 // change per pixel step in y
}

func newTriEdge(ax, ay, bx, by, ox, oy Q8) triEdge {
	return triEdge{
		c:    edgeQ8(ax, ay, bx, by, ox, oy),
		xinc: int64(ay - by),
		yinc: int64(bx - ax),
	}
}

// at returns the edge value dx, dy pixels away from the origin.
func (e *triEdge) at(dx, dy int) int64 {
	return e.c + int64(dx)*e.xinc + int64(dy)*e.yinc
}

// triSetup is the per-triangle state shared by the block loops.
type triSetup struct {
	// Edge i is opposite vertex i: its value is proportional to weight i.
	e      [3]triEdge
	ox, oy int // block-grid origin in pixels

	rarea   float32
	swapped bool // v1 and v2 were exchanged to normalize orientation

	// Scaled depth d = zBase + (e1*dz1 + e2*dz2) * zScale.
	zBase  float32
	dz1    float32
	dz2    float32
	zScale float32
	dzdx   float32 // change of d per pixel step in x
}

func (t *triSetup) depthAt(e1, e2 int64) float32 {
	return t.zBase + float32((float32(e1)*t.dz1+float32(e2)*t.dz2)*t.zScale)
}

// mask returns the 3-bit inside mask (bit i set when edge i >= 0) at a
// pixel offset from the origin.
func (t *triSetup) mask(dx, dy int) int {
	m := 0
	for i := range t.e {
		if t.e[i].at(dx, dy) >= 0 {
			m |= 1 << i
		}
	}
	return m
}

// DrawTriangle rasterizes the triangle p0, p1, p2 into ctx's target.
//
// The points are in post-projection space: x and y in NDC (mapped to pixels
// by the viewport matrix) and z the normalized depth in [0, 1], 0 nearest.
// Pixels whose integer coordinates lie inside the triangle (an edge value of
// exactly zero counts as inside) are depth-tested against the depth buffer.
// For each pixel that passes, s is called with the pixel's barycentric
// weights, and its result is written according to the alpha test and the
// active blend mode.
//
// Triangles wound clockwise on screen are front-facing. With culling
// enabled, back-facing triangles are skipped; otherwise they are
// rasterized exactly like their reverse-wound counterpart. Degenerate and
// off-screen triangles are skipped.
//
// DrawTriangle is generic over the shader type so that concrete shaders are
// called without dynamic dispatch.
func DrawTriangle[S FragmentShader](ctx *Context, s S, p0, p1, p2 Vec3) {
	ctx.stats.Triangles++

	v0 := p0.Transform(ctx.viewport)
	v1 := p1.Transform(ctx.viewport)
	v2 := p2.Transform(ctx.viewport)
	if !inGuardBand(v0) || !inGuardBand(v1) || !inGuardBand(v2) {
		ctx.stats.Culled++
		return
	}

	x0, y0 := Q8FromFloat(v0.X), Q8FromFloat(v0.Y)
	x1, y1 := Q8FromFloat(v1.X), Q8FromFloat(v1.Y)
	x2, y2 := Q8FromFloat(v2.X), Q8FromFloat(v2.Y)
	z0, z1, z2 := v0.Z, v1.Z, v2.Z

	var t triSetup
	area := edgeQ8(x0, y0, x1, y1, x2, y2)
	if area <= 0 {
		if area == 0 || ctx.cull {
			ctx.stats.Culled++
			return
		}
		x1, y1, z1, x2, y2, z2 = x2, y2, z2, x1, y1, z1
		area = edgeQ8(x0, y0, x1, y1, x2, y2)
		t.swapped = true
	}

	minX := max(min(x0, x1, x2).Ceil(), 0)
	minY := max(min(y0, y1, y2).Ceil(), 0)
	maxX := min(max(x0, x1, x2).Floor(), ctx.width-1)
	maxY := min(max(y0, y1, y2).Floor(), ctx.height-1)
	if minX > maxX || minY > maxY {
		ctx.stats.Culled++
		return
	}

	t.rarea = 1 / float32(area)
	t.ox = minX &^ (blockSize - 1)
	t.oy = minY &^ (blockSize - 1)
	ox, oy := Q8FromInt(t.ox), Q8FromInt(t.oy)
	t.e[0] = newTriEdge(x1, y1, x2, y2, ox, oy)
	t.e[1] = newTriEdge(x2, y2, x0, y0, ox, oy)
	t.e[2] = newTriEdge(x0, y0, x1, y1, ox, oy)

	t.zBase = float32((1 - z0) * maxDepth)
	t.dz1 = z1 - z0
	t.dz2 = z2 - z0
	t.zScale = -maxDepth * t.rarea
	t.dzdx = (float32(t.e[1].xinc)*t.dz1 + float32(t.e[2].xinc)*t.dz2) * t.zScale

	for by := t.oy; by <= maxY; by += blockSize {
		top := by - t.oy
		bottom := top + blockSize
		ys := max(by, minY)
		ye := min(by+blockSize-1, maxY)

		// Corner masks on block boundaries; the right corners of one block
		// are the left corners of the next.
		tl := t.mask(0, top)
		bl := t.mask(0, bottom)
		for bx := t.ox; bx <= maxX; bx += blockSize {
			right := bx - t.ox + blockSize
			tr := t.mask(right, top)
			br := t.mask(right, bottom)
			xs := max(bx, minX)
			xe := min(bx+blockSize-1, maxX)

			switch {
			case tl&tr&bl&br == insideAll:
				ctx.stats.BlocksFull++
				rasterBlock(ctx, s, &t, xs, xe, ys, ye, false)
			case tl|tr|bl|br != insideAll:
				// Some edge is negative at every corner, hence on the
				// whole block.
				ctx.stats.BlocksSkipped++
			default:
				ctx.stats.BlocksPartial++
				rasterBlock(ctx, s, &t, xs, xe, ys, ye, true)
			}
			tl, bl = tr, br
		}
	}
}

// DrawTriangle rasterizes a triangle with a dynamically dispatched shader.
// See the package-level DrawTriangle.
func (ctx *Context) DrawTriangle(s FragmentShader, p0, p1, p2 Vec3) {
	DrawTriangle(ctx, s, p0, p1, p2)
}

// rasterBlock walks the pixels [xs, xe] x [ys, ye] of one block. With test
// set each pixel is first checked against the three edges; otherwise the
// block is known to be inside.
func rasterBlock[S FragmentShader](ctx *Context, s S, t *triSetup, xs, xe, ys, ye int, test bool) {
	e0, e1, e2 := &t.e[0], &t.e[1], &t.e[2]
	for y := ys; y <= ye; y++ {
		dx, dy := xs-t.ox, y-t.oy
		w0 := e0.at(dx, dy)
		w1 := e1.at(dx, dy)
		w2 := e2.at(dx, dy)
		d := t.depthAt(w1, w2)
		i := y*ctx.width + xs
		for x := xs; x <= xe; x++ {
			// The OR of the three values is negative iff one of them is.
			if !test || w0|w1|w2 >= 0 {
				shadePixel(ctx, s, t, x, y, i, w1, w2, d)
			}
			w0 += e0.xinc
			w1 += e1.xinc
			w2 += e2.xinc
			d += t.dzdx
			i++
		}
	}
}

// shadePixel runs the depth test, the fragment shader, the alpha test and
// the write for one covered pixel at buffer index i.
func shadePixel[S FragmentShader](ctx *Context, s S, t *triSetup, x, y, i int, e1, e2 int64, d float32) {
	zbuf := ctx.depth.data
	depth := depthFromScaled(d)
	if depth <= zbuf[i] {
		ctx.stats.DepthRejected++
		return
	}
	ctx.stats.Fragments++
	if ctx.depthOnly {
		zbuf[i] = depth
		return
	}

	b1 := float32(e1) * t.rarea
	b2 := float32(e2) * t.rarea
	b0 := max(1-b1-b2, 0)
	if t.swapped {
		b1, b2 = b2, b1
	}

	c, ok := s.Fragment(ctx, x, y, b0, b1, b2)
	if !ok || c.A <= 0 {
		return
	}
	ctx.writePixel(i, c)
	zbuf[i] = depth
}

func inGuardBand(v Vec3) bool {
	// Written so that NaN fails.
	return math32.Abs(v.X) <= guardBand && math32.Abs(v.Y) <= guardBand
}
