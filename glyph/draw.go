// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glyph

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/softrast"
	"github.com/gogpu/softrast/shade"
)

// rectDepth keeps rectangles one depth step behind text, so labels drawn
// over a panel pass the depth test.
const rectDepth = 1.0 / 65535

func roundf(x float32) float32 {
	return math32.Round(x)
}

// DrawString draws s with its top-left corner at pixel (x, y), each atlas
// texel covering scale x scale pixels. '\n' starts a new line.
//
// Glyphs are drawn as two screen-space triangles each, at depth 0 with the
// shade.Text alpha test, so they cover the scene and each other's cells
// never overlap. The context's viewport is replaced with the identity for
// the duration of the call and restored afterwards.
func DrawString(ctx *softrast.Context, a *Atlas, x, y, scale float32, s string, c softrast.RGBA) {
	if scale <= 0 {
		scale = 1
	}
	viewport := ctx.Viewport()
	ctx.SetViewport(softrast.Identity())
	defer ctx.SetViewport(viewport)

	sh := &shade.Text{Atlas: a.Texture, Color: c}
	tw, th := float32(a.Texture.Width), float32(a.Texture.Height)
	cw, ch := float32(a.CellW)*scale, float32(a.CellH)*scale

	x0 := roundf(x)
	penX, penY := x0, roundf(y)
	for _, r := range Fold(s) {
		if r == '\n' {
			penX = x0
			penY += roundf(ch)
			continue
		}
		if r != ' ' {
			cx, cy := a.Cell(r)
			// Pixels penX .. penX+cw-1 are covered; the texel under pixel
			// penX+k is cx + (k+0.5)/scale.
			sx0, sy0 := penX, penY
			sx1, sy1 := penX+cw-0.5, penY+ch-0.5
			u0 := (float32(cx) + 0.5/scale) / tw
			v0 := (float32(cy) + 0.5/scale) / th
			u1 := (float32(cx) + cw/scale) / tw
			v1 := (float32(cy) + ch/scale) / th

			sh.UV = [3][2]float32{{u0, v0}, {u1, v0}, {u1, v1}}
			softrast.DrawTriangle(ctx, sh,
				softrast.V3(sx0, sy0, 0), softrast.V3(sx1, sy0, 0), softrast.V3(sx1, sy1, 0))
			sh.UV = [3][2]float32{{u0, v0}, {u1, v1}, {u0, v1}}
			softrast.DrawTriangle(ctx, sh,
				softrast.V3(sx0, sy0, 0), softrast.V3(sx1, sy1, 0), softrast.V3(sx0, sy1, 0))
		}
		penX += roundf(float32(a.advance(r)) * scale)
	}
}

// FillRect draws a screen-space rectangle covering pixels x0 .. x1-1 and
// y0 .. y1-1 with shade.UI, blended source-over, just behind text depth.
// tex, when non-nil, is stretched over the rectangle and modulates c. The
// context's viewport and blend mode are restored afterwards.
func FillRect(ctx *softrast.Context, x0, y0, x1, y1 float32, c softrast.RGBA, tex *softrast.Texture) {
	if x1 <= x0 || y1 <= y0 {
		return
	}
	viewport, mode := ctx.Viewport(), ctx.BlendMode()
	ctx.SetViewport(softrast.Identity())
	ctx.SetBlendMode(softrast.BlendSourceOver)
	defer func() {
		ctx.SetViewport(viewport)
		ctx.SetBlendMode(mode)
	}()

	sh := &shade.UI{Color: c, Texture: tex}
	x1 -= 0.5
	y1 -= 0.5
	const z = rectDepth
	sh.UV = [3][2]float32{{0, 0}, {1, 0}, {1, 1}}
	softrast.DrawTriangle(ctx, sh, softrast.V3(x0, y0, z), softrast.V3(x1, y0, z), softrast.V3(x1, y1, z))
	sh.UV = [3][2]float32{{0, 0}, {1, 1}, {0, 1}}
	softrast.DrawTriangle(ctx, sh, softrast.V3(x0, y0, z), softrast.V3(x1, y1, z), softrast.V3(x0, y1, z))
}
