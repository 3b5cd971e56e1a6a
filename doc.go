// Package softrast is a software (CPU) 3D rendering pipeline.
//
// # Overview
//
// softrast rasterizes shaded triangles and clipped lines into a
// caller-visible RGBA framebuffer with a 16-bit depth buffer. Geometry is
// driven by a model/view/projection/viewport transform chain held in a
// [Context]. There is no GPU path: every draw call runs to completion on the
// caller's goroutine and allocates nothing while rasterizing.
//
// # Quick Start
//
//	ctx := softrast.NewContext(640, 480)
//	ctx.SetProjection(softrast.Perspective(math32.Pi/3, 640.0/480, 0.1, 100))
//	ctx.SetView(softrast.LookAt(softrast.V3(0, 2, -5), softrast.Vec3{}, softrast.V3(0, 1, 0)))
//	ctx.SetModel(softrast.Identity())
//	ctx.UpdateMatrices()
//
//	ctx.Clear(softrast.Black)
//	ctx.DrawLine(softrast.Vec3{}, softrast.V3(1, 0, 0), softrast.Red)
//	_ = ctx.Target().SavePNG("out.png")
//
// # Architecture
//
//   - Numeric types: [Vec3], [Vec4], [Mat4] (row-major, row vectors) and the
//     [Q8] fixed-point type used by the triangle edge functions.
//   - Buffers: [Texture], [DepthBuffer], [Framebuffer].
//   - [Context]: base matrices plus the derived model-view, MVP, normal
//     matrix and near-clip plane computed by [Context.UpdateMatrices].
//   - Rasterizers: [Context.DrawLine] and [DrawTriangle], which calls a
//     [FragmentShader] for every covered, depth-passing pixel.
//   - [DrawClipped] clips triangles against the near plane before
//     rasterizing them.
//
// Concrete shaders live in the shade sub-package; vertex streams and the
// vertex stage live in mesh.
//
// # Conventions
//
//   - Vectors are rows: v' = v · M.
//   - Projection maps NDC z into [0, 1]; the stored depth is
//     round((1-z) * 65535), so larger values are nearer.
//   - Screen origin is the top-left pixel, y grows downwards.
//
// # Debug assertions
//
// Contract violations (mismatched buffer sizes, singular model matrices,
// drawing lines before [Context.UpdateMatrices]) panic when built with the
// softrast_debug tag and are unchecked otherwise.
package softrast

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
