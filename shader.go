package softrast

// FragmentShader computes the color of one rasterized pixel.
//
// The rasterizer calls Fragment for every pixel of a triangle that passes
// the depth test, in no particular order. x and y are the pixel
// coordinates; w0, w1, w2 are the screen-space barycentric weights of the
// triangle's vertices p0, p1, p2 as passed to DrawTriangle (they sum to 1
// and are interpolated affinely, so perspective-correct attributes must be
// pre-divided by w at the vertex stage).
//
// The returned color's alpha drives the alpha test and blending: alpha <= 0
// leaves both the color and the depth buffer untouched. Returning ok ==
// false declines the fragment with the same effect.
//
// The shader value itself carries the per-triangle data. Implementations
// must not retain ctx.
type FragmentShader interface {
	Fragment(ctx *Context, x, y int, w0, w1, w2 float32) (c RGBA, ok bool)
}

// FragmentFunc adapts an ordinary function to the FragmentShader interface.
type FragmentFunc func(ctx *Context, x, y int, w0, w1, w2 float32) (RGBA, bool)

// Fragment calls f.
func (f FragmentFunc) Fragment(ctx *Context, x, y int, w0, w1, w2 float32) (RGBA, bool) {
	return f(ctx, x, y, w0, w1, w2)
}

// Solid is a FragmentShader returning one color for every pixel.
type Solid RGBA

// Fragment returns the solid color.
func (s Solid) Fragment(*Context, int, int, float32, float32, float32) (RGBA, bool) {
	return RGBA(s), true
}
