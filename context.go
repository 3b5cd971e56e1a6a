package softrast

import (
	"github.com/gogpu/softrast/internal/blend"
	"github.com/gogpu/softrast/internal/clip"
)

// BlendMode selects how a shaded fragment is combined with the pixel
// already in the framebuffer.
type BlendMode int

const (
	// BlendNone overwrites the destination pixel.
	BlendNone = BlendMode(blend.ModeNone)
	// BlendDecal paints the source over the destination weighted by source
	// alpha and keeps the destination alpha.
	BlendDecal = BlendMode(blend.ModeDecal)
	// BlendSourceOver is Porter-Duff source-over.
	BlendSourceOver = BlendMode(blend.ModeSourceOver)
	// BlendAdditive adds the alpha-weighted source to the destination.
	BlendAdditive = BlendMode(blend.ModeAdditive)
)

// String returns the mode name.
func (m BlendMode) String() string {
	return blend.Mode(m).String()
}

// Stats counts the work done by draw calls since the last ResetStats.
type Stats struct {
	Triangles     int // triangles submitted to the rasterizer
	Culled        int // back-facing, degenerate, off-screen or behind the near plane
	BlocksFull    int // 8x8 blocks drawn with the fast path
	BlocksPartial int // blocks drawn with the per-pixel edge test
	BlocksSkipped int // blocks rejected without touching a pixel
	Fragments     int // fragments that passed the depth test
	DepthRejected int // fragments that failed the depth test
	Lines         int // lines that reached the pixel loop
}

// Context is the rendering context: it borrows a target framebuffer and a
// depth buffer, holds the base transform matrices and the quantities derived
// from them, and carries the rasterizer state (culling, blending, depth-only).
//
// The derived matrices are only valid after UpdateMatrices has run on the
// current base matrices; SetModel, SetView and SetProjection invalidate them.
//
// A Context is not safe for concurrent use: it is owned by the goroutine
// driving the frame loop.
type Context struct {
	width  int
	height int
	target *Framebuffer
	depth  *DepthBuffer
	screen *clip.Window

	// Base matrices, mutated by the caller per frame or per object.
	model      Mat4
	view       Mat4
	projection Mat4
	viewport   Mat4

	// Derived by UpdateMatrices.
	modelView       Mat4
	mvp             Mat4
	normalMatrix    Mat4
	nearPlane       Vec4
	shadowMVP       Mat4
	shadowTransform Mat4
	hasShadow       bool
	derivedValid    bool

	cull      bool
	blend     BlendMode
	depthOnly bool

	stats Stats
}

// NewContext creates a rendering context for a width x height target.
// Buffers not supplied through options are allocated once here.
func NewContext(width, height int, opts ...ContextOption) *Context {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.target == nil {
		o.target = NewFramebuffer(width, height)
	}
	if o.depth == nil {
		o.depth = NewDepthBuffer(width, height)
	}
	assertf(o.target.Width() == width && o.target.Height() == height,
		"target is %dx%d, context is %dx%d", o.target.Width(), o.target.Height(), width, height)
	assertf(o.depth.Width() == width && o.depth.Height() == height,
		"depth buffer is %dx%d, context is %dx%d", o.depth.Width(), o.depth.Height(), width, height)

	ctx := &Context{
		width:      width,
		height:     height,
		target:     o.target,
		depth:      o.depth,
		screen:     clip.NewWindow(clip.PixelRect(width, height)),
		model:      Identity(),
		view:       Identity(),
		projection: Identity(),
		viewport:   ViewportMatrix(width, height),
		cull:       o.cull,
		blend:      o.blend,
	}

	Logger().Debug("softrast: context created",
		"width", width,
		"height", height,
		"cull", o.cull,
		"blend", o.blend.String())
	return ctx
}

// Width returns the target width in pixels.
func (ctx *Context) Width() int {
	return ctx.width
}

// Height returns the target height in pixels.
func (ctx *Context) Height() int {
	return ctx.height
}

// Target returns the framebuffer currently rendered into.
func (ctx *Context) Target() *Framebuffer {
	return ctx.target
}

// DepthBuffer returns the depth buffer.
func (ctx *Context) DepthBuffer() *DepthBuffer {
	return ctx.depth
}

// SetTarget swaps the framebuffer rendered into. The new buffer must have
// the context's dimensions.
func (ctx *Context) SetTarget(fb *Framebuffer) {
	assertf(fb != nil && fb.Width() == ctx.width && fb.Height() == ctx.height,
		"target must be %dx%d", ctx.width, ctx.height)
	ctx.target = fb
	Logger().Debug("softrast: target set", "width", fb.Width(), "height", fb.Height())
}

// ClearDepthBuffer resets the depth buffer to farthest. Call once per frame.
func (ctx *Context) ClearDepthBuffer() {
	ctx.depth.Clear()
}

// Clear fills the target with c and clears the depth buffer.
func (ctx *Context) Clear(c RGBA) {
	ctx.target.Clear(c)
	ctx.depth.Clear()
}

// SetModel sets the model matrix and invalidates the derived matrices.
func (ctx *Context) SetModel(m Mat4) {
	ctx.model = m
	ctx.derivedValid = false
}

// SetView sets the view matrix and invalidates the derived matrices.
func (ctx *Context) SetView(m Mat4) {
	ctx.view = m
	ctx.derivedValid = false
}

// SetProjection sets the projection matrix and invalidates the derived
// matrices.
func (ctx *Context) SetProjection(m Mat4) {
	ctx.projection = m
	ctx.derivedValid = false
}

// SetViewport sets the viewport matrix applied to every rasterized vertex.
// It does not participate in the derived matrices.
func (ctx *Context) SetViewport(m Mat4) {
	ctx.viewport = m
}

// SetShadowMVP sets the light-space model-view-projection used to compose
// ShadowTransform on the next UpdateMatrices.
func (ctx *Context) SetShadowMVP(m Mat4) {
	ctx.shadowMVP = m
	ctx.hasShadow = true
	ctx.derivedValid = false
}

// ClearShadow stops composing a shadow transform.
func (ctx *Context) ClearShadow() {
	ctx.hasShadow = false
	ctx.shadowTransform = Mat4{}
}

// Model returns the model matrix.
func (ctx *Context) Model() Mat4 { return ctx.model }

// View returns the view matrix.
func (ctx *Context) View() Mat4 { return ctx.view }

// Projection returns the projection matrix.
func (ctx *Context) Projection() Mat4 { return ctx.projection }

// Viewport returns the viewport matrix.
func (ctx *Context) Viewport() Mat4 { return ctx.viewport }

// ModelView returns model · view as of the last UpdateMatrices.
func (ctx *Context) ModelView() Mat4 { return ctx.modelView }

// MVP returns model · view · projection as of the last UpdateMatrices.
func (ctx *Context) MVP() Mat4 { return ctx.mvp }

// NormalMatrix returns transpose(inverse(model)) as of the last
// UpdateMatrices. Transform normals with Vec3.TransformDir.
func (ctx *Context) NormalMatrix() Mat4 { return ctx.normalMatrix }

// NearClipPlane returns the camera near plane expressed in the model's
// object space: Dot with (x, y, z, 1) is the signed distance in front of
// the plane, negative behind the camera.
func (ctx *Context) NearClipPlane() Vec4 { return ctx.nearPlane }

// ShadowTransform returns inverse(mvp) · shadowMVP, mapping a camera
// clip-space position to light clip space. It is the zero matrix unless
// SetShadowMVP was called before UpdateMatrices.
func (ctx *Context) ShadowTransform() Mat4 { return ctx.shadowTransform }

// HasShadow reports whether a shadow transform is being composed.
func (ctx *Context) HasShadow() bool { return ctx.hasShadow }

// MatricesValid reports whether the derived matrices match the base ones.
func (ctx *Context) MatricesValid() bool { return ctx.derivedValid }

// SetCulling enables or disables back-face culling.
func (ctx *Context) SetCulling(enabled bool) { ctx.cull = enabled }

// Culling reports whether back-face culling is enabled.
func (ctx *Context) Culling() bool { return ctx.cull }

// SetBlendMode selects the blend function for subsequent draws.
func (ctx *Context) SetBlendMode(m BlendMode) { ctx.blend = m }

// BlendMode returns the active blend mode.
func (ctx *Context) BlendMode() BlendMode { return ctx.blend }

// SetDepthOnly toggles depth-only rendering: triangles update the depth
// buffer but never call their fragment shader or touch the target. Used for
// shadow-map passes.
func (ctx *Context) SetDepthOnly(enabled bool) { ctx.depthOnly = enabled }

// DepthOnly reports whether depth-only rendering is active.
func (ctx *Context) DepthOnly() bool { return ctx.depthOnly }

// Stats returns the counters accumulated since the last ResetStats.
func (ctx *Context) Stats() Stats { return ctx.stats }

// ResetStats zeroes the counters. Call once per frame.
func (ctx *Context) ResetStats() { ctx.stats = Stats{} }

// writePixel stores c at buffer index i (pixel index, not byte offset),
// applying the active blend mode.
func (ctx *Context) writePixel(i int, c RGBA) {
	off := i * 4
	if ctx.blend != BlendNone {
		dst := ctx.target.get(off)
		c = RGBA(blend.Blend(blend.Color(c), blend.Color(dst), blend.Mode(ctx.blend)))
	}
	ctx.target.set(off, c)
}
