package softrast

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// Framebuffer is the target pixel buffer: 8-bit straight-alpha RGBA,
// 4 bytes per pixel, rows top to bottom.
//
// A Context borrows its framebuffer; ownership stays with the caller.
type Framebuffer struct {
	width  int
	height int
	data   []uint8
}

// NewFramebuffer creates a transparent framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	assertf(width > 0 && height > 0, "framebuffer size %dx%d", width, height)
	return &Framebuffer{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the framebuffer.
func (f *Framebuffer) Width() int {
	return f.width
}

// Height returns the height of the framebuffer.
func (f *Framebuffer) Height() int {
	return f.height
}

// Data returns the raw pixel data (RGBA, 4 bytes per pixel).
func (f *Framebuffer) Data() []uint8 {
	return f.data
}

// SetPixel sets the color of a single pixel.
func (f *Framebuffer) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	f.set((y*f.width+x)*4, c)
}

// Pixel returns the color of a single pixel, or Transparent outside.
func (f *Framebuffer) Pixel(x, y int) RGBA {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return Transparent
	}
	return f.get((y*f.width + x) * 4)
}

func (f *Framebuffer) set(i int, c RGBA) {
	f.data[i+0], f.data[i+1], f.data[i+2], f.data[i+3] = c.bytes()
}

func (f *Framebuffer) get(i int) RGBA {
	return RGBA{
		R: float32(f.data[i+0]) / 255,
		G: float32(f.data[i+1]) / 255,
		B: float32(f.data[i+2]) / 255,
		A: float32(f.data[i+3]) / 255,
	}
}

// Clear fills the entire framebuffer with a color.
func (f *Framebuffer) Clear(c RGBA) {
	r, g, b, a := c.bytes()
	for i := 0; i < len(f.data); i += 4 {
		f.data[i+0] = r
		f.data[i+1] = g
		f.data[i+2] = b
		f.data[i+3] = a
	}
}

// ToImage copies the framebuffer into an image.NRGBA.
func (f *Framebuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.width, f.height))
	copy(img.Pix, f.data)
	return img
}

// SavePNG saves the framebuffer to a PNG file.
func (f *Framebuffer) SavePNG(path string) error {
	file, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	return png.Encode(file, f.ToImage())
}

// At implements the image.Image interface.
func (f *Framebuffer) At(x, y int) color.Color {
	return f.Pixel(x, y).Color()
}

// Bounds implements the image.Image interface.
func (f *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.width, f.height)
}

// ColorModel implements the image.Image interface.
func (f *Framebuffer) ColorModel() color.Model {
	return color.NRGBAModel
}
