package softrast

import "github.com/chewxy/math32"

// UpdateMatrices runs the matrix pipeline. It derives, from the current
// model, view and projection matrices:
//
//	modelView    = model · view
//	mvp          = modelView · projection
//	normalMatrix = transpose(inverse(model))
//	nearPlane    = NearPlane(mvp)
//
// and, when SetShadowMVP has been called, ShadowTransform = inverse(mvp) ·
// shadowMVP. Call it once per frame, and again whenever the model matrix
// changes, before any draw call.
//
// The model matrix must be invertible; a singular one yields an unusable
// normal matrix.
func (ctx *Context) UpdateMatrices() {
	assertf(ctx.model.Determinant() != 0, "singular model matrix")

	ctx.modelView = ctx.model.Multiply(ctx.view)
	ctx.mvp = ctx.modelView.Multiply(ctx.projection)
	ctx.normalMatrix = ctx.model.Inverse().Transpose()
	ctx.nearPlane = NearPlane(ctx.mvp)
	if ctx.hasShadow {
		ctx.shadowTransform = ctx.mvp.Inverse().Multiply(ctx.shadowMVP)
	}
	ctx.derivedValid = true
}

// NearPlane extracts the near clipping plane from a model-view-projection
// matrix, expressed in the matrix's input space.
//
// With row vectors clip-space z is the dot product of (x, y, z, 1) with
// column 2 of m, and a projection that maps the near plane to z = 0 makes
// that dot product zero exactly on the plane. The plane is normalized by
// the length of its xyz part so Dot returns a true distance. A degenerate
// column is returned unnormalized.
func NearPlane(m Mat4) Vec4 {
	p := m.Col(2)
	l := math32.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
	if l == 0 {
		return p
	}
	return p.Scale(1 / l)
}

// NearDistance returns the signed distance of the pre-transform point p
// from the current near plane. Negative means behind the camera.
func (ctx *Context) NearDistance(p Vec3) float32 {
	return ctx.nearPlane.Dot(p.Vec4(1))
}

// ToClip transforms a pre-transform point to clip space with the current
// mvp, without a homogeneous divide.
func (ctx *Context) ToClip(p Vec3) Vec4 {
	return p.Vec4(1).Mul(ctx.mvp)
}

// ToScreen transforms a pre-transform point through mvp and the viewport,
// returning pixel x, y and NDC depth z.
func (ctx *Context) ToScreen(p Vec3) Vec3 {
	return p.Transform(ctx.mvp).Transform(ctx.viewport)
}
