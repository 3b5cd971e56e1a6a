// Package shade provides the concrete fragment shaders used by the mesh,
// glyph and demo packages.
//
// Every shader is a plain value implementing softrast.FragmentShader. The
// fields hold per-triangle data filled by the vertex stage before each
// softrast.DrawTriangle call; a shader value is reused across triangles by
// overwriting those fields.
//
// # Perspective correction
//
// The rasterizer interpolates weights affinely in screen space. Shaders
// that need perspective-correct attributes (Model, Floor) expect the
// vertex stage to store each attribute divided by the vertex's clip-space
// w together with 1/w, and divide the interpolated values back per pixel:
//
//	a = (w0*a0/w0c + w1*a1/w1c + w2*a2/w2c) / (w0/w0c + w1/w1c + w2/w2c)
//
// SetVertex helpers on those shaders do the pre-division.
//
// Flat, Gouraud, Text and UI interpolate affinely, which is exact for
// screen-space geometry.
package shade
