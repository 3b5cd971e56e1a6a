// Package blend provides the color blending operations applied when a
// shaded fragment is written over an existing framebuffer pixel.
//
// Colors are straight (non-premultiplied) float32 RGBA in [0, 1].
package blend

// Color is a straight-alpha float32 color. It has the same layout as the
// root package's RGBA so values convert directly.
type Color struct {
	R, G, B, A float32
}

// Mode represents a blending mode.
type Mode int

const (
	// ModeNone replaces the destination with the source.
	ModeNone Mode = iota
	// ModeDecal paints the source over the destination weighted by source
	// alpha, keeping the destination alpha.
	ModeDecal
	// ModeSourceOver is Porter-Duff source-over on straight alpha.
	ModeSourceOver
	// ModeAdditive adds the alpha-weighted source to the destination.
	ModeAdditive
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeDecal:
		return "decal"
	case ModeSourceOver:
		return "source-over"
	case ModeAdditive:
		return "additive"
	default:
		return "unknown"
	}
}

// Blend combines src with dst using the specified mode.
func Blend(src, dst Color, mode Mode) Color {
	switch mode {
	case ModeNone:
		return src
	case ModeDecal:
		return decal(src, dst)
	case ModeSourceOver:
		return sourceOver(src, dst)
	case ModeAdditive:
		return additive(src, dst)
	default:
		return src
	}
}

// decal: rgb = src*a + dst*(1-a), alpha = dst alpha.
func decal(src, dst Color) Color {
	a := clamp01(src.A)
	inv := 1 - a
	return Color{
		R: src.R*a + dst.R*inv,
		G: src.G*a + dst.G*inv,
		B: src.B*a + dst.B*inv,
		A: dst.A,
	}
}

// sourceOver blends source over destination using alpha compositing.
func sourceOver(src, dst Color) Color {
	srcA := clamp01(src.A)
	dstA := dst.A
	invSrcA := 1 - srcA

	outA := srcA + dstA*invSrcA
	if outA == 0 {
		return Color{}
	}

	return Color{
		R: (src.R*srcA + dst.R*dstA*invSrcA) / outA,
		G: (src.G*srcA + dst.G*dstA*invSrcA) / outA,
		B: (src.B*srcA + dst.B*dstA*invSrcA) / outA,
		A: outA,
	}
}

// additive: rgb = min(dst + src*a, 1), alpha = max(src, dst).
func additive(src, dst Color) Color {
	a := clamp01(src.A)
	return Color{
		R: min(dst.R+src.R*a, 1),
		G: min(dst.G+src.G*a, 1),
		B: min(dst.B+src.B*a, 1),
		A: max(dst.A, a),
	}
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
