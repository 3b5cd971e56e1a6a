// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package mesh

import (
	"github.com/gogpu/softrast"
	"github.com/gogpu/softrast/shade"
)

// NearMode selects how triangles crossing the near plane are handled.
type NearMode int

const (
	// NearReject drops every triangle with a vertex behind the near plane.
	NearReject NearMode = iota

	// NearClip clips crossing triangles against the near plane.
	NearClip
)

// String returns the mode name.
func (m NearMode) String() string {
	switch m {
	case NearReject:
		return "reject"
	case NearClip:
		return "clip"
	default:
		return "unknown"
	}
}

// minW replaces a clip w of exactly zero so the perspective divide stays
// finite. Such a vertex lies on the camera plane, behind the near plane.
const minW = -1e-6

// DrawOptions configure Draw.
type DrawOptions struct {
	Tint softrast.RGBA

	// Light is the world-space direction towards the light. The zero vector
	// disables lighting: every vertex gets full diffuse intensity.
	Light   softrast.Vec3
	Ambient float32

	Near        NearMode
	Shadow      *shade.ShadowMap
	AlphaCutoff float32
}

// DefaultDrawOptions returns white, unlit, near-rejecting options.
func DefaultDrawOptions() DrawOptions {
	return DrawOptions{
		Tint:        softrast.White,
		AlphaCutoff: 0.5,
	}
}

// Renderer runs the vertex stage for meshes and reuses its scratch buffers
// across calls. A Renderer must not be used concurrently.
type Renderer struct {
	clip    []softrast.Vec4
	front   []bool
	diffuse []float32
	model   shade.Model
}

// Draw renders m into ctx using the shade.Model shader.
func (r *Renderer) Draw(ctx *softrast.Context, m *Mesh, opts DrawOptions) {
	if !ctx.MatricesValid() {
		ctx.UpdateMatrices()
	}
	r.light(ctx, m, opts)

	r.model.Texture = m.Texture
	r.model.Tint = opts.Tint
	r.model.Ambient = opts.Ambient
	r.model.AlphaCutoff = opts.AlphaCutoff
	r.model.Shadow = opts.Shadow
	if opts.Shadow != nil && !ctx.HasShadow() {
		softrast.Logger().Warn("mesh: shadow map without shadow transform")
		r.model.Shadow = nil
	}

	var uv [2]float32
	DrawWith(r, ctx, m, opts.Near, func(t [3]uint32, clip *[3]softrast.Vec4) *shade.Model {
		for k, idx := range t {
			if len(m.UVs) != 0 {
				uv = m.UVs[idx]
			}
			r.model.SetVertex(k, clip[k], uv, r.diffuse[idx])
		}
		return &r.model
	})
}

// Draw renders m into ctx with a temporary Renderer.
func Draw(ctx *softrast.Context, m *Mesh, opts DrawOptions) {
	var r Renderer
	r.Draw(ctx, m, opts)
}

// light computes per-vertex diffuse intensity into r.diffuse.
func (r *Renderer) light(ctx *softrast.Context, m *Mesh, opts DrawOptions) {
	r.diffuse = grow(r.diffuse, len(m.Positions))
	l := opts.Light.Normalize()
	if l == (softrast.Vec3{}) || len(m.Normals) == 0 {
		for i := range r.diffuse {
			r.diffuse[i] = 1
		}
		return
	}
	nm := ctx.NormalMatrix()
	for i, n := range m.Normals {
		r.diffuse[i] = max(n.TransformDir(nm).Normalize().Dot(l), 0)
	}
}

// BuildFunc prepares the shader for the triangle with vertex indices t and
// clip-space positions clip. It is called only for triangles that reach the
// rasterizer.
type BuildFunc[S softrast.FragmentShader] func(t [3]uint32, clip *[3]softrast.Vec4) S

// DrawWith runs the vertex stage for m and rasterizes every triangle that
// survives the near test with the shader returned by build. Positions are
// transformed by the context's MVP once per vertex. Triangles entirely
// behind the near plane are dropped; triangles crossing it are dropped or
// clipped according to near. The derived matrices are brought up to date
// first if needed. r may be nil.
func DrawWith[S softrast.FragmentShader](r *Renderer, ctx *softrast.Context, m *Mesh, near NearMode, build BuildFunc[S]) {
	if r == nil {
		r = new(Renderer)
	}
	if !ctx.MatricesValid() {
		ctx.UpdateMatrices()
	}

	n := len(m.Positions)
	r.clip = grow(r.clip, n)
	r.front = grow(r.front, n)
	for i, p := range m.Positions {
		c := ctx.ToClip(p)
		if c.W == 0 {
			c.W = minW
		}
		r.clip[i] = c
		r.front[i] = ctx.NearDistance(p) >= 0
	}

	var clip [3]softrast.Vec4
	for i := range m.TriangleCount() {
		t := m.Triangle(i)
		f0, f1, f2 := r.front[t[0]], r.front[t[1]], r.front[t[2]]
		if !f0 && !f1 && !f2 {
			continue
		}
		if !(f0 && f1 && f2) && near == NearReject {
			continue
		}
		clip = [3]softrast.Vec4{r.clip[t[0]], r.clip[t[1]], r.clip[t[2]]}
		s := build(t, &clip)
		if f0 && f1 && f2 {
			softrast.DrawTriangle(ctx, s, clip[0].Project(), clip[1].Project(), clip[2].Project())
		} else {
			softrast.DrawClipped(ctx, s, clip[0], clip[1], clip[2])
		}
	}
}

// DrawWireframe draws every distinct edge of m as a line of color c. Edges
// are matched by position, so faces that duplicate vertices for their own
// normals or UVs still share an edge.
func DrawWireframe(ctx *softrast.Context, m *Mesh, c softrast.RGBA) {
	if !ctx.MatricesValid() {
		ctx.UpdateMatrices()
	}
	seen := make(map[[2]softrast.Vec3]struct{}, len(m.Indices))
	for i := range m.TriangleCount() {
		t := m.Triangle(i)
		for k := range 3 {
			a, b := m.Positions[t[k]], m.Positions[t[(k+1)%3]]
			if vecLess(b, a) {
				a, b = b, a
			}
			key := [2]softrast.Vec3{a, b}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			ctx.DrawLine(a, b, c)
		}
	}
}

func vecLess(a, b softrast.Vec3) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

func grow[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	return s[:n]
}
