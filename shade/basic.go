package shade

import "github.com/gogpu/softrast"

// Flat shades every pixel with one color.
type Flat struct {
	Color softrast.RGBA
}

// Fragment returns the flat color.
func (f Flat) Fragment(*softrast.Context, int, int, float32, float32, float32) (softrast.RGBA, bool) {
	return f.Color, true
}

// Gouraud blends three vertex colors with the barycentric weights.
type Gouraud struct {
	Colors [3]softrast.RGBA
}

// Fragment returns the weighted vertex color.
func (g Gouraud) Fragment(_ *softrast.Context, _, _ int, w0, w1, w2 float32) (softrast.RGBA, bool) {
	return mix3(g.Colors[0], g.Colors[1], g.Colors[2], w0, w1, w2), true
}

func mix3(a, b, c softrast.RGBA, w0, w1, w2 float32) softrast.RGBA {
	return softrast.RGBA{
		R: a.R*w0 + b.R*w1 + c.R*w2,
		G: a.G*w0 + b.G*w1 + c.G*w2,
		B: a.B*w0 + b.B*w1 + c.B*w2,
		A: a.A*w0 + b.A*w1 + c.A*w2,
	}
}

// lerp2 interpolates a per-vertex 2D attribute.
func lerp2(v *[3][2]float32, w0, w1, w2 float32) (float32, float32) {
	return v[0][0]*w0 + v[1][0]*w1 + v[2][0]*w2,
		v[0][1]*w0 + v[1][1]*w1 + v[2][1]*w2
}

// lerp1 interpolates a per-vertex scalar.
func lerp1(v *[3]float32, w0, w1, w2 float32) float32 {
	return v[0]*w0 + v[1]*w1 + v[2]*w2
}
