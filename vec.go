package softrast

import "github.com/chewxy/math32"

// Vec3 is a 3-component float32 vector used for positions, directions and
// screen-space vertices.
type Vec3 struct {
	X, Y, Z float32
}

// V3 is a convenience function to create a Vec3.
func V3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

// Mul returns the vector scaled by s.
func (v Vec3) Mul(s float32) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Neg returns the negation of the vector.
func (v Vec3) Neg() Vec3 {
	return Vec3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Dot returns the dot product.
func (v Vec3) Dot(w Vec3) float32 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product v × w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Len returns the Euclidean length.
func (v Vec3) Len() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Normalize returns a unit vector in the same direction.
// The zero vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// Lerp interpolates between v (t=0) and w (t=1).
func (v Vec3) Lerp(w Vec3, t float32) Vec3 {
	return Vec3{
		X: v.X + (w.X-v.X)*t,
		Y: v.Y + (w.Y-v.Y)*t,
		Z: v.Z + (w.Z-v.Z)*t,
	}
}

// Vec4 extends v with the given w component.
func (v Vec3) Vec4(w float32) Vec4 {
	return Vec4{X: v.X, Y: v.Y, Z: v.Z, W: w}
}

// Transform returns v · m treating v as a point (w = 1).
// When the resulting w is neither 0 nor 1 the result is divided by it.
func (v Vec3) Transform(m Mat4) Vec3 {
	r := v.Vec4(1).Mul(m)
	if r.W != 1 && r.W != 0 {
		inv := 1 / r.W
		return Vec3{X: r.X * inv, Y: r.Y * inv, Z: r.Z * inv}
	}
	return Vec3{X: r.X, Y: r.Y, Z: r.Z}
}

// TransformDir returns v · m treating v as a direction (w = 0), so the
// translation row of m is ignored. Used for normals.
func (v Vec3) TransformDir(m Mat4) Vec3 {
	return Vec3{
		X: v.X*m[0] + v.Y*m[4] + v.Z*m[8],
		Y: v.X*m[1] + v.Y*m[5] + v.Z*m[9],
		Z: v.X*m[2] + v.Y*m[6] + v.Z*m[10],
	}
}

// Vec4 is a homogeneous 4-component vector. It also represents plane
// equations (a, b, c, d) for which Dot with a point (x, y, z, 1) yields a
// signed distance.
type Vec4 struct {
	X, Y, Z, W float32
}

// V4 is a convenience function to create a Vec4.
func V4(x, y, z, w float32) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

// Add returns the sum of two vectors.
func (v Vec4) Add(w Vec4) Vec4 {
	return Vec4{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z, W: v.W + w.W}
}

// Sub returns the difference of two vectors.
func (v Vec4) Sub(w Vec4) Vec4 {
	return Vec4{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z, W: v.W - w.W}
}

// Scale returns the vector scaled by s.
func (v Vec4) Scale(s float32) Vec4 {
	return Vec4{X: v.X * s, Y: v.Y * s, Z: v.Z * s, W: v.W * s}
}

// Dot returns the 4-component dot product.
func (v Vec4) Dot(w Vec4) float32 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z + v.W*w.W
}

// Lerp interpolates between v (t=0) and w (t=1).
func (v Vec4) Lerp(w Vec4, t float32) Vec4 {
	return v.Add(w.Sub(v).Scale(t))
}

// XYZ drops the w component.
func (v Vec4) XYZ() Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// Project performs the homogeneous divide and drops w.
// A zero w leaves the components undivided.
func (v Vec4) Project() Vec3 {
	if v.W == 0 {
		return v.XYZ()
	}
	inv := 1 / v.W
	return Vec3{X: v.X * inv, Y: v.Y * inv, Z: v.Z * inv}
}

// Mul returns the raw product v · m without a homogeneous divide.
// This is the clip-space transform.
func (v Vec4) Mul(m Mat4) Vec4 {
	return Vec4{
		X: v.X*m[0] + v.Y*m[4] + v.Z*m[8] + v.W*m[12],
		Y: v.X*m[1] + v.Y*m[5] + v.Z*m[9] + v.W*m[13],
		Z: v.X*m[2] + v.Y*m[6] + v.Z*m[10] + v.W*m[14],
		W: v.X*m[3] + v.Y*m[7] + v.Z*m[11] + v.W*m[15],
	}
}

// Transform returns v · m followed by a homogeneous divide when the
// resulting w is neither 0 nor 1. The returned w is always 1.
func (v Vec4) Transform(m Mat4) Vec4 {
	r := v.Mul(m)
	if r.W != 1 && r.W != 0 {
		inv := 1 / r.W
		r.X *= inv
		r.Y *= inv
		r.Z *= inv
	}
	r.W = 1
	return r
}
