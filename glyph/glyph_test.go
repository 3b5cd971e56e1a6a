package glyph

import (
	"errors"
	"image/color"
	"testing"

	"golang.org/x/image/font/basicfont"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"github.com/gogpu/softrast"
)

// blockFont is a tinyfont.Fonter whose glyphs, except space, are solid
// 3x4 blocks sitting on the baseline with an advance of 4.
type blockFont struct {
	g blockGlyph
}

type blockGlyph struct {
	r rune
}

func (g *blockGlyph) Draw(d drivers.Displayer, x, y int16, c color.RGBA) {
	if g.r == ' ' {
		return
	}
	for row := range int16(4) {
		for col := range int16(3) {
			d.SetPixel(x+col, y-4+row, c)
		}
	}
}

func (g *blockGlyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    3,
		Height:   4,
		XAdvance: 4,
		YOffset:  -4,
	}
}

func (f *blockFont) GetYAdvance() uint8 { return 5 }

func (f *blockFont) GetGlyph(r rune) tinyfont.Glypher {
	f.g.r = r
	return &f.g
}

func cellInk(a *Atlas, r rune) int {
	cx, cy := a.Cell(r)
	n := 0
	for y := cy; y < cy+a.CellH; y++ {
		for x := cx; x < cx+a.CellW; x++ {
			if a.Texture.At(x, y).A > 0 {
				n++
			}
		}
	}
	return n
}

func TestFold(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"Crème brûlée", "Creme brulee"},
		{"naïve café", "naive cafe"},
		{"Ångström", "Angstrom"},
		{"日本", "??"},
		{"tab\there", "tab?here"},
		{"two\nlines", "two\nlines"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Fold(tt.in); got != tt.want {
				t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewFaceAtlas(t *testing.T) {
	a, err := NewFaceAtlas(basicfont.Face7x13)
	if err != nil {
		t.Fatal(err)
	}
	if a.CellW != 7 || a.CellH != 13 {
		t.Errorf("cell = %dx%d, want 7x13", a.CellW, a.CellH)
	}
	if a.Texture.Width != 16*7 || a.Texture.Height != 6*13 {
		t.Errorf("texture = %dx%d", a.Texture.Width, a.Texture.Height)
	}
	if cellInk(a, ' ') != 0 {
		t.Error("space has ink")
	}
	for _, r := range "A#~" {
		if cellInk(a, r) == 0 {
			t.Errorf("%q has no ink", r)
		}
	}
	for _, c := range a.Texture.Texels {
		if c.A > 0 && c.R != 1 {
			t.Fatalf("ink texel %v is not white", c)
		}
	}
	if a.Advance['M'-firstRune] != 7 {
		t.Errorf("advance = %d, want 7", a.Advance['M'-firstRune])
	}
}

func TestNewTinyfontAtlas(t *testing.T) {
	a, err := NewTinyfontAtlas(&blockFont{}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if a.CellW != 4 || a.CellH != 5 {
		t.Fatalf("cell = %dx%d, want 4x5", a.CellW, a.CellH)
	}

	cx, cy := a.Cell('B')
	for y := range 5 {
		for x := range 4 {
			want := x < 3 && y < 4
			if got := a.Texture.At(cx+x, cy+y).A > 0; got != want {
				t.Errorf("texel (%d, %d) inked = %v, want %v", x, y, got, want)
			}
		}
	}
	if cellInk(a, ' ') != 0 {
		t.Error("space has ink")
	}
}

func TestNewTinyfontAtlasProggy(t *testing.T) {
	a, err := NewTinyfontAtlas(&proggy.TinySZ8pt7b, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if a.CellW <= 0 || a.CellH <= 0 {
		t.Fatalf("cell = %dx%d", a.CellW, a.CellH)
	}
	if cellInk(a, 'W') == 0 {
		t.Error("'W' has no ink")
	}
}

func TestNewTinyfontAtlasFixedCell(t *testing.T) {
	a, err := NewTinyfontAtlas(&blockFont{}, 6, 8)
	if err != nil {
		t.Fatal(err)
	}
	if a.Texture.Width != 16*6 || a.Texture.Height != 6*8 {
		t.Errorf("texture = %dx%d", a.Texture.Width, a.Texture.Height)
	}
	if n := cellInk(a, 'x'); n != 12 {
		t.Errorf("ink = %d texels, want 12", n)
	}
}

func TestEmptyFont(t *testing.T) {
	if _, err := NewTinyfontAtlas(&blockFont{}, -1, 0); err != nil {
		t.Errorf("derived cell size rejected: %v", err)
	}
	if _, err := NewFaceAtlas(&basicfont.Face{}); !errors.Is(err, ErrEmptyFont) {
		t.Errorf("err = %v, want ErrEmptyFont", err)
	}
}

func TestMeasure(t *testing.T) {
	a, err := NewTinyfontAtlas(&blockFont{}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		s    string
		w, h float32
	}{
		{"AB", 16, 10},
		{"A\nBBB", 24, 20},
		{"", 0, 10},
	}
	for _, tt := range tests {
		if w, h := a.Measure(tt.s, 2); w != tt.w || h != tt.h {
			t.Errorf("Measure(%q) = %v, %v, want %v, %v", tt.s, w, h, tt.w, tt.h)
		}
	}
}

func TestDrawString(t *testing.T) {
	a, err := NewTinyfontAtlas(&blockFont{}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	ctx := softrast.NewContext(40, 32)
	viewport := ctx.Viewport()
	DrawString(ctx, a, 2, 3, 2, "A B\nC", softrast.Red)

	if ctx.Viewport() != viewport {
		t.Error("viewport not restored")
	}

	// Each glyph covers 8x10 pixels, inked in its top-left 6x8.
	inked := func(x, y int) bool {
		for _, g := range [][2]int{{2, 3}, {18, 3}, {2, 13}} {
			if x >= g[0] && x < g[0]+6 && y >= g[1] && y < g[1]+8 {
				return true
			}
		}
		return false
	}
	fb := ctx.Target()
	for y := range fb.Height() {
		for x := range fb.Width() {
			got := fb.Pixel(x, y) == softrast.Red
			if want := inked(x, y); got != want {
				t.Fatalf("pixel (%d, %d) red = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestDrawStringOverScene(t *testing.T) {
	a, err := NewTinyfontAtlas(&blockFont{}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	ctx := softrast.NewContext(16, 16)
	ctx.SetViewport(softrast.Identity())
	// Scene geometry nearer than anything but the text plane.
	softrast.DrawTriangle(ctx, softrast.Solid(softrast.Blue),
		softrast.V3(0, 0, 0.01), softrast.V3(16, 0, 0.01), softrast.V3(0, 16, 0.01))
	ctx.SetViewport(softrast.ViewportMatrix(16, 16))

	FillRect(ctx, 0, 0, 8, 8, softrast.Black, nil)
	DrawString(ctx, a, 1, 1, 1, "X", softrast.White)
	if got := ctx.Target().Pixel(2, 2); got != softrast.White {
		t.Errorf("text pixel = %v, want white", got)
	}
	if got := ctx.Target().Pixel(5, 5); got != softrast.Black {
		t.Errorf("panel pixel = %v, want black", got)
	}
	if ctx.BlendMode() != softrast.BlendNone {
		t.Error("blend mode not restored")
	}
}

func TestFillRectBlends(t *testing.T) {
	ctx := softrast.NewContext(8, 8)
	ctx.Target().Clear(softrast.White)
	FillRect(ctx, 0, 0, 8, 8, softrast.RGBA2(0, 0, 0, 0.5), nil)
	got := ctx.Target().Pixel(3, 3)
	if got.R < 0.45 || got.R > 0.55 {
		t.Errorf("blended pixel = %v, want mid gray", got)
	}
	if got := ctx.Target().Pixel(7, 7); got.R < 0.45 || got.R > 0.55 {
		t.Errorf("corner pixel = %v, want covered", got)
	}
}

func BenchmarkDrawString(b *testing.B) {
	a, err := NewFaceAtlas(basicfont.Face7x13)
	if err != nil {
		b.Fatal(err)
	}
	ctx := softrast.NewContext(320, 40)
	for b.Loop() {
		ctx.ClearDepthBuffer()
		DrawString(ctx, a, 4, 4, 1, "triangles 1234  fragments 56789", softrast.White)
	}
}
