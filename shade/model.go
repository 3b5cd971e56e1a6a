// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shade

import (
	"github.com/gogpu/softrast"
)

// ShadowMap is a light-space depth buffer rendered in a depth-only pass,
// with the viewport that maps light NDC to its texels.
type ShadowMap struct {
	Depth    *softrast.DepthBuffer
	Viewport softrast.Mat4

	// Bias is subtracted from the fragment's light-space NDC depth before
	// the comparison, to keep lit surfaces from shadowing themselves.
	Bias float32

	// Strength is the fraction of diffuse light removed in shadow, in [0, 1].
	Strength float32
}

// NewShadowMap allocates a square shadow map of size x size texels.
func NewShadowMap(size int) *ShadowMap {
	return &ShadowMap{
		Depth:    softrast.NewDepthBuffer(size, size),
		Viewport: softrast.ViewportMatrix(size, size),
		Bias:     0.004,
		Strength: 0.6,
	}
}

// Occluded reports whether the light NDC point p lies behind the surface
// recorded in the map. Points outside the map are lit.
func (s *ShadowMap) Occluded(p softrast.Vec3) bool {
	t := p.Transform(s.Viewport)
	x, y := int(t.X), int(t.Y)
	if t.X < 0 || t.Y < 0 || x >= s.Depth.Width() || y >= s.Depth.Height() {
		return false
	}
	// Inverted depth: a larger stored value is nearer to the light.
	return s.Depth.At(x, y) > softrast.DepthValue(p.Z-s.Bias)
}

// Model is the mesh shader: optionally textured, tinted, lit per vertex and
// optionally shadowed, with perspective-correct texture coordinates and
// lighting.
type Model struct {
	Texture *softrast.Texture // nil for untextured
	Tint    softrast.RGBA
	Ambient float32

	// AlphaCutoff declines fragments whose final alpha is below it.
	AlphaCutoff float32

	// Shadow, when set, darkens fragments occluded in the map. The context
	// must have a shadow transform (SetShadowMVP before UpdateMatrices).
	Shadow *ShadowMap

	// Per-vertex data, pre-divided by clip w. See SetVertex.
	uvw     [3][2]float32
	diffuse [3]float32
	invW    [3]float32
	ndc     [3]softrast.Vec3
}

// SetVertex stores vertex i of the next triangle: its clip-space position,
// texture coordinates and diffuse light intensity.
func (m *Model) SetVertex(i int, clip softrast.Vec4, uv [2]float32, diffuse float32) {
	iw := 1 / clip.W
	m.invW[i] = iw
	m.uvw[i] = [2]float32{uv[0] * iw, uv[1] * iw}
	m.diffuse[i] = diffuse * iw
	m.ndc[i] = clip.Project()
}

// Fragment shades one pixel.
func (m *Model) Fragment(ctx *softrast.Context, _, _ int, w0, w1, w2 float32) (softrast.RGBA, bool) {
	iw := lerp1(&m.invW, w0, w1, w2)
	if iw == 0 {
		return softrast.RGBA{}, false
	}
	rw := 1 / iw

	c := m.Tint
	if m.Texture != nil {
		u, v := lerp2(&m.uvw, w0, w1, w2)
		c = c.Mul(m.Texture.Sample(u*rw, v*rw))
	}
	if c.A < m.AlphaCutoff {
		return c, false
	}

	diffuse := lerp1(&m.diffuse, w0, w1, w2) * rw
	if m.Shadow != nil && diffuse > 0 {
		p := m.ndc[0].Mul(w0).Add(m.ndc[1].Mul(w1)).Add(m.ndc[2].Mul(w2))
		lp := p.Vec4(1).Mul(ctx.ShadowTransform()).Project()
		if m.Shadow.Occluded(lp) {
			diffuse *= 1 - m.Shadow.Strength
		}
	}
	return c.Scale(min(m.Ambient+diffuse, 1)), true
}
