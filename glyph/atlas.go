// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package glyph bakes bitmap fonts into atlas textures and draws strings as
// alpha-tested screen-space quads.
//
// Atlases cover printable ASCII. Strings are folded to that range first:
// accents are stripped and anything else becomes '?'.
package glyph

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"

	"github.com/gogpu/softrast"
)

// Atlas layout.
const (
	firstRune = ' '
	lastRune  = '~'
	atlasCols = 16
)

// ErrEmptyFont is returned when a font yields no usable cell size.
var ErrEmptyFont = errors.New("glyph: font has no printable glyphs")

// Atlas is a texture holding one fixed-size cell per glyph, laid out in
// rows of 16 starting at First. Covered texels are white with alpha set to
// the glyph coverage.
type Atlas struct {
	Texture      *softrast.Texture
	CellW, CellH int
	First, Last  rune

	// Advance is the pen advance in texels, indexed by r - First.
	Advance []int
}

func newAtlas(cellW, cellH int) *Atlas {
	n := int(lastRune-firstRune) + 1
	rows := (n + atlasCols - 1) / atlasCols
	return &Atlas{
		Texture: softrast.NewTexture(atlasCols*cellW, rows*cellH),
		CellW:   cellW,
		CellH:   cellH,
		First:   firstRune,
		Last:    lastRune,
		Advance: make([]int, n),
	}
}

// Has reports whether r has a cell in the atlas.
func (a *Atlas) Has(r rune) bool {
	return r >= a.First && r <= a.Last
}

// Cell returns the texel origin of r's cell. r must be in the atlas.
func (a *Atlas) Cell(r rune) (x, y int) {
	i := int(r - a.First)
	return (i % atlasCols) * a.CellW, (i / atlasCols) * a.CellH
}

func (a *Atlas) advance(r rune) int {
	if !a.Has(r) {
		return a.CellW
	}
	return a.Advance[r-a.First]
}

// Measure returns the size in pixels of s drawn at scale, after folding.
func (a *Atlas) Measure(s string, scale float32) (w, h float32) {
	lines := 1
	var line float32
	for _, r := range Fold(s) {
		if r == '\n' {
			w = max(w, line)
			line = 0
			lines++
			continue
		}
		line += roundf(float32(a.advance(r)) * scale)
	}
	return max(w, line), float32(lines*a.CellH) * scale
}

// NewFaceAtlas bakes printable ASCII from face. Cells are as wide as the
// widest advance and as tall as ascent plus descent.
func NewFaceAtlas(face font.Face) (*Atlas, error) {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	cellH := ascent + m.Descent.Ceil()
	cellW := 0
	for r := rune(firstRune); r <= lastRune; r++ {
		if adv, ok := face.GlyphAdvance(r); ok {
			cellW = max(cellW, adv.Ceil())
		}
	}
	if cellW <= 0 || cellH <= 0 {
		return nil, fmt.Errorf("%w: cell %dx%d", ErrEmptyFont, cellW, cellH)
	}

	a := newAtlas(cellW, cellH)
	img := image.NewAlpha(image.Rect(0, 0, a.Texture.Width, a.Texture.Height))
	d := font.Drawer{
		Dst:  img,
		Src:  image.Opaque,
		Face: face,
	}
	for r := rune(firstRune); r <= lastRune; r++ {
		x, y := a.Cell(r)
		d.Dot = fixed.P(x, y+ascent)
		d.DrawString(string(r))

		adv, ok := face.GlyphAdvance(r)
		if !ok {
			adv = fixed.I(cellW)
		}
		a.Advance[r-firstRune] = adv.Round()
	}

	// Only the cell rectangle belongs to a glyph; ink spilling past it is
	// dropped.
	for r := rune(firstRune); r <= lastRune; r++ {
		cx, cy := a.Cell(r)
		for y := cy; y < cy+cellH; y++ {
			for x := cx; x < cx+cellW; x++ {
				if c := img.AlphaAt(x, y).A; c != 0 {
					a.Texture.Set(x, y, softrast.White.WithAlpha(float32(c)/255))
				}
			}
		}
	}

	softrast.Logger().Debug("glyph: atlas baked",
		"source", "face",
		"cellW", cellW,
		"cellH", cellH)
	return a, nil
}

// cellDisplay is a drivers.Displayer that draws into one atlas cell.
type cellDisplay struct {
	atlas  *Atlas
	cx, cy int // cell origin in texels
}

var _ drivers.Displayer = (*cellDisplay)(nil)

func (d *cellDisplay) Size() (x, y int16) {
	return int16(d.atlas.CellW), int16(d.atlas.CellH)
}

func (d *cellDisplay) SetPixel(x, y int16, c color.RGBA) {
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.atlas.CellW || iy < 0 || iy >= d.atlas.CellH || c.A == 0 {
		return
	}
	d.atlas.Texture.Set(d.cx+ix, d.cy+iy, softrast.White)
}

func (d *cellDisplay) Display() error { return nil }

// NewTinyfontAtlas bakes printable ASCII from a tinyfont bitmap font. A
// zero cellW or cellH is derived from the font: the widest advance and the
// font's line advance, grown to fit ascent plus descent.
func NewTinyfontAtlas(f tinyfont.Fonter, cellW, cellH int) (*Atlas, error) {
	ascent, descent, widest := 0, 0, 0
	for r := rune(firstRune); r <= lastRune; r++ {
		info := f.GetGlyph(r).Info()
		ascent = max(ascent, -int(info.YOffset))
		descent = max(descent, int(info.YOffset)+int(info.Height))
		_, outbox := tinyfont.LineWidth(f, string(r))
		widest = max(widest, int(outbox))
	}
	if cellW <= 0 {
		cellW = widest
	}
	if cellH <= 0 {
		cellH = max(int(f.GetYAdvance()), ascent+descent)
	}
	if cellW <= 0 || cellH <= 0 {
		return nil, fmt.Errorf("%w: cell %dx%d", ErrEmptyFont, cellW, cellH)
	}

	a := newAtlas(cellW, cellH)
	d := &cellDisplay{atlas: a}
	ink := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for r := rune(firstRune); r <= lastRune; r++ {
		d.cx, d.cy = a.Cell(r)
		// tinyfont positions glyphs on the baseline.
		tinyfont.DrawChar(d, f, 0, int16(ascent), r, ink)

		_, outbox := tinyfont.LineWidth(f, string(r))
		a.Advance[r-firstRune] = int(outbox)
	}

	softrast.Logger().Debug("glyph: atlas baked",
		"source", "tinyfont",
		"cellW", cellW,
		"cellH", cellH)
	return a, nil
}
