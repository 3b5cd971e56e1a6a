package shade

import "github.com/gogpu/softrast"

// Text draws glyph quads from a coverage atlas. Texels whose alpha is
// below one half are declined, giving crisp alpha-tested glyph edges that
// neither color nor depth-write.
type Text struct {
	Atlas *softrast.Texture
	Color softrast.RGBA
	UV    [3][2]float32 // atlas coordinates of the triangle's vertices
}

// Fragment shades one pixel.
func (s *Text) Fragment(_ *softrast.Context, _, _ int, w0, w1, w2 float32) (softrast.RGBA, bool) {
	u, v := lerp2(&s.UV, w0, w1, w2)
	if s.Atlas.Sample(u, v).A < 0.5 {
		return softrast.RGBA{}, false
	}
	return s.Color, true
}

// UI draws flat or textured overlay quads. Its alpha is meant for
// softrast.BlendSourceOver.
type UI struct {
	Color   softrast.RGBA
	Texture *softrast.Texture // optional, modulates Color
	UV      [3][2]float32
}

// Fragment shades one pixel.
func (s *UI) Fragment(_ *softrast.Context, _, _ int, w0, w1, w2 float32) (softrast.RGBA, bool) {
	c := s.Color
	if s.Texture != nil {
		u, v := lerp2(&s.UV, w0, w1, w2)
		c = c.Mul(s.Texture.SampleBilinear(u, v))
	}
	return c, true
}
