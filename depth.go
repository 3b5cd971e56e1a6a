package softrast

// DepthBuffer holds one unsigned 16-bit depth value per target pixel,
// addressed as row*width + column.
//
// The convention is inverted: larger values are nearer to the camera and a
// cleared buffer holds 0 (infinitely far). A fragment passes the depth test
// when its depth is strictly greater than the stored value.
type DepthBuffer struct {
	width  int
	height int
	data   []uint16
}

// NewDepthBuffer allocates a cleared depth buffer.
func NewDepthBuffer(width, height int) *DepthBuffer {
	assertf(width > 0 && height > 0, "depth buffer size %dx%d", width, height)
	return &DepthBuffer{
		width:  width,
		height: height,
		data:   make([]uint16, width*height),
	}
}

// Width returns the width of the buffer.
func (d *DepthBuffer) Width() int {
	return d.width
}

// Height returns the height of the buffer.
func (d *DepthBuffer) Height() int {
	return d.height
}

// Data returns the raw depth values.
func (d *DepthBuffer) Data() []uint16 {
	return d.data
}

// Clear resets every value to 0 (farthest).
func (d *DepthBuffer) Clear() {
	clear(d.data)
}

// At returns the stored depth at (x, y), or 0 outside the buffer.
func (d *DepthBuffer) At(x, y int) uint16 {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return 0
	}
	return d.data[y*d.width+x]
}

// Set stores a depth value. Out-of-range coordinates are ignored.
func (d *DepthBuffer) Set(x, y int, v uint16) {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return
	}
	d.data[y*d.width+x] = v
}

// DepthValue converts a normalized depth z in [0, 1] (0 = near plane) to
// the stored 16-bit value round((1-z) * 65535). Out-of-range z is clamped.
func DepthValue(z float32) uint16 {
	return depthFromScaled(float32((1 - z) * maxDepth))
}

const maxDepth = 65535

// depthFromScaled rounds an already scaled depth and clamps it to uint16.
func depthFromScaled(d float32) uint16 {
	d += 0.5
	if d <= 0 {
		return 0
	}
	if d >= maxDepth {
		return maxDepth
	}
	return uint16(d)
}
