package shade

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/softrast"
)

// Floor draws a procedural checkerboard over world-space XZ that fades
// linearly to a fog color with view distance.
type Floor struct {
	Tile           float32 // checker square size in world units
	ColorA, ColorB softrast.RGBA
	Fog            softrast.RGBA
	FogStart       float32 // view depth where fading begins
	FogEnd         float32 // view depth where only fog remains

	// Shadow, when set, darkens occluded squares; see Model.Shadow.
	Shadow *ShadowMap

	xzw  [3][2]float32
	invW [3]float32
	ndc  [3]softrast.Vec3
}

// DefaultFloor returns a gray checkerboard fading into a dark fog.
func DefaultFloor() *Floor {
	return &Floor{
		Tile:     1,
		ColorA:   softrast.RGB(0.55, 0.55, 0.58),
		ColorB:   softrast.RGB(0.35, 0.35, 0.38),
		Fog:      softrast.RGB(0.08, 0.09, 0.12),
		FogStart: 6,
		FogEnd:   30,
	}
}

// SetVertex stores vertex i of the next triangle from its clip-space
// position and world-space position.
func (f *Floor) SetVertex(i int, clip softrast.Vec4, world softrast.Vec3) {
	iw := 1 / clip.W
	f.invW[i] = iw
	f.xzw[i] = [2]float32{world.X * iw, world.Z * iw}
	f.ndc[i] = clip.Project()
}

// Fragment shades one pixel.
func (f *Floor) Fragment(ctx *softrast.Context, _, _ int, w0, w1, w2 float32) (softrast.RGBA, bool) {
	iw := lerp1(&f.invW, w0, w1, w2)
	if iw <= 0 {
		return softrast.RGBA{}, false
	}
	depth := 1 / iw
	x, z := lerp2(&f.xzw, w0, w1, w2)
	x *= depth
	z *= depth

	c := f.ColorA
	if (int(math32.Floor(x/f.Tile))+int(math32.Floor(z/f.Tile)))&1 != 0 {
		c = f.ColorB
	}
	if f.Shadow != nil {
		p := f.ndc[0].Mul(w0).Add(f.ndc[1].Mul(w1)).Add(f.ndc[2].Mul(w2))
		if f.Shadow.Occluded(p.Vec4(1).Mul(ctx.ShadowTransform()).Project()) {
			c = c.Scale(1 - f.Shadow.Strength)
		}
	}
	return c.Lerp(f.Fog, f.fogAmount(depth)), true
}

func (f *Floor) fogAmount(depth float32) float32 {
	if f.FogEnd <= f.FogStart {
		return 0
	}
	return min(max((depth-f.FogStart)/(f.FogEnd-f.FogStart), 0), 1)
}
