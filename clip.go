// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package softrast

// ClipVertex is a vertex of a near-clipped polygon: its clip-space position
// and its barycentric weights relative to the unclipped input triangle,
// interpolated in clip space.
type ClipVertex struct {
	Pos  Vec4
	Bary Vec3
}

// ClipTriangleNear clips the clip-space triangle c0, c1, c2 against the
// near plane z >= 0 (Sutherland–Hodgman against a single plane). It returns
// a convex polygon of n = 0, 3 or 4 vertices in input winding order.
func ClipTriangleNear(c0, c1, c2 Vec4) (poly [4]ClipVertex, n int) {
	in := [3]ClipVertex{
		{Pos: c0, Bary: V3(1, 0, 0)},
		{Pos: c1, Bary: V3(0, 1, 0)},
		{Pos: c2, Bary: V3(0, 0, 1)},
	}
	for i := range in {
		a, b := in[i], in[(i+1)%3]
		aIn, bIn := a.Pos.Z >= 0, b.Pos.Z >= 0
		if aIn {
			poly[n] = a
			n++
		}
		if aIn != bIn {
			t := a.Pos.Z / (a.Pos.Z - b.Pos.Z)
			p := ClipVertex{
				Pos:  a.Pos.Lerp(b.Pos, t),
				Bary: a.Bary.Lerp(b.Bary, t),
			}
			p.Pos.Z = 0
			poly[n] = p
			n++
		}
	}
	return poly, n
}

// DrawClipped rasterizes the clip-space triangle c0, c1, c2 after clipping
// it against the near plane, so triangles crossing the camera plane keep
// their visible part instead of being dropped.
//
// The clipped polygon is fanned into one or two triangles. Their fragments
// reach s with weights remapped to the input triangle: for a pixel with
// clip-space weights B and interpolated clip w_c, s receives B_j·w_j/w_c,
// the screen-space weights DrawTriangle would produce for the unclipped
// triangle. Shaders that interpolate attributes perspective-correctly
// therefore see consistent values on both sides of the clip seam.
func DrawClipped[S FragmentShader](ctx *Context, s S, c0, c1, c2 Vec4) {
	if c0.Z >= 0 && c1.Z >= 0 && c2.Z >= 0 {
		DrawTriangle(ctx, s, c0.Project(), c1.Project(), c2.Project())
		return
	}

	poly, n := ClipTriangleNear(c0, c1, c2)
	if n < 3 {
		ctx.stats.Triangles++
		ctx.stats.Culled++
		return
	}

	ws := V3(c0.W, c1.W, c2.W)
	var proj [4]Vec3
	var remap [4]Vec3
	for k := range n {
		v := poly[k]
		proj[k] = v.Pos.Project()
		// Weight of each input vertex contributed by this polygon vertex.
		remap[k] = Vec3{
			X: v.Bary.X * ws.X / v.Pos.W,
			Y: v.Bary.Y * ws.Y / v.Pos.W,
			Z: v.Bary.Z * ws.Z / v.Pos.W,
		}
	}

	for k := 1; k+1 < n; k++ {
		r := remapShader[S]{inner: s, r0: remap[0], r1: remap[k], r2: remap[k+1]}
		DrawTriangle(ctx, r, proj[0], proj[k], proj[k+1])
	}
}

// remapShader maps the weights of a sub-triangle of a clipped polygon back
// to the weights of the original triangle.
type remapShader[S FragmentShader] struct {
	inner      S
	r0, r1, r2 Vec3
}

func (m remapShader[S]) Fragment(ctx *Context, x, y int, u0, u1, u2 float32) (RGBA, bool) {
	b := m.r0.Mul(u0).Add(m.r1.Mul(u1)).Add(m.r2.Mul(u2))
	return m.inner.Fragment(ctx, x, y, b.X, b.Y, b.Z)
}
