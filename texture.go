package softrast

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // register PNG for LoadTexture
	"os"

	"github.com/chewxy/math32"
	_ "golang.org/x/image/bmp" // register BMP for LoadTexture
)

// ErrEmptyTexture is returned when a decoded image has no pixels.
var ErrEmptyTexture = errors.New("softrast: texture has zero width or height")

// Texture is a 2D array of RGBA texels addressed as row*Width + column.
// It is created once at load time and only read while shading.
type Texture struct {
	Width, Height int
	Texels        []RGBA
}

// NewTexture allocates a transparent texture.
func NewTexture(width, height int) *Texture {
	assertf(width > 0 && height > 0, "texture size %dx%d", width, height)
	return &Texture{
		Width:  width,
		Height: height,
		Texels: make([]RGBA, width*height),
	}
}

// TextureFromImage converts any image.Image into a texture.
func TextureFromImage(img image.Image) *Texture {
	b := img.Bounds()
	t := NewTexture(b.Dx(), b.Dy())
	for y := 0; y < t.Height; y++ {
		row := t.Texels[y*t.Width : (y+1)*t.Width]
		for x := range row {
			n := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			row[x] = RGBA{
				R: float32(n.R) / 255,
				G: float32(n.G) / 255,
				B: float32(n.B) / 255,
				A: float32(n.A) / 255,
			}
		}
	}
	return t
}

// LoadTexture decodes a PNG or BMP file into a texture.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("softrast: open texture: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("softrast: decode texture %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: %s", ErrEmptyTexture, path)
	}

	t := TextureFromImage(img)
	Logger().Info("softrast: texture loaded",
		"path", path,
		"format", format,
		"width", t.Width,
		"height", t.Height)
	return t, nil
}

// At returns the texel at (x, y) with coordinates wrapped into range.
func (t *Texture) At(x, y int) RGBA {
	x %= t.Width
	if x < 0 {
		x += t.Width
	}
	y %= t.Height
	if y < 0 {
		y += t.Height
	}
	return t.Texels[y*t.Width+x]
}

// Set writes the texel at (x, y). Out-of-range coordinates are ignored.
func (t *Texture) Set(x, y int, c RGBA) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	t.Texels[y*t.Width+x] = c
}

// Sample returns the nearest texel for normalized coordinates (u, v),
// wrapping outside [0, 1). v = 0 is the top row.
func (t *Texture) Sample(u, v float32) RGBA {
	x := int(math32.Floor(u * float32(t.Width)))
	y := int(math32.Floor(v * float32(t.Height)))
	return t.At(x, y)
}

// SampleBilinear filters the four texels around (u, v), wrapping at the
// borders. Texel centers sit at half-integer coordinates.
func (t *Texture) SampleBilinear(u, v float32) RGBA {
	fx := u*float32(t.Width) - 0.5
	fy := v*float32(t.Height) - 0.5
	x0 := math32.Floor(fx)
	y0 := math32.Floor(fy)
	ax := fx - x0
	ay := fy - y0
	ix, iy := int(x0), int(y0)

	top := t.At(ix, iy).Lerp(t.At(ix+1, iy), ax)
	bottom := t.At(ix, iy+1).Lerp(t.At(ix+1, iy+1), ax)
	return top.Lerp(bottom, ay)
}
