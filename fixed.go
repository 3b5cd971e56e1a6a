// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package softrast

import "github.com/chewxy/math32"

// Q8 is a 24.8 fixed-point number: a signed 32-bit integer with 8
// fractional bits (scale 256).
//
// The triangle rasterizer keeps vertex coordinates and edge-function values
// in Q8 so that block classification and per-pixel stepping compare exact
// integers. Values stay within int32 for targets up to 2048x2048.
type Q8 int32

// Fixed-point constants for Q8 (24.8 format).
const (
	// Q8Shift is the number of fractional bits in Q8.
	Q8Shift = 8
	// Q8One represents 1.0 in Q8 format (256).
	Q8One Q8 = 1 << Q8Shift
	// Q8Half represents 0.5 in Q8 format.
	Q8Half Q8 = Q8One / 2
	// Q8Mask extracts the fractional part.
	Q8Mask = Q8One - 1
)

// Q8FromInt converts an integer to Q8.
func Q8FromInt(i int) Q8 {
	return Q8(i) << Q8Shift
}

// Q8FromFloat converts a float32 to Q8, rounding to the nearest 1/256.
func Q8FromFloat(f float32) Q8 {
	return Q8(math32.Floor(f*float32(Q8One) + 0.5))
}

// Float converts q to float32.
func (q Q8) Float() float32 {
	return float32(q) / float32(Q8One)
}

// Floor returns the largest integer not greater than q.
func (q Q8) Floor() int {
	return int(q >> Q8Shift)
}

// Ceil returns the smallest integer not less than q.
func (q Q8) Ceil() int {
	return int((q + Q8Mask) >> Q8Shift)
}

// Mul multiplies two Q8 values. The product is widened to 64 bits before
// shifting back down so intermediate results cannot overflow.
//
//nolint:gosec // result is bounded by the supported target size
func (q Q8) Mul(o Q8) Q8 {
	return Q8((int64(q) * int64(o)) >> Q8Shift)
}

// edgeQ8 evaluates the edge function of the directed edge a→b at p.
// It is zero on the edge's line, positive on one side and negative on the
// other. Each product is widened and floored separately so that stepping p
// by one pixel changes the result by an exact integer increment. The result
// stays in 64 bits: for vertices inside the guard band a Q8 product fits,
// but the difference of two may not fit in 32.
func edgeQ8(ax, ay, bx, by, px, py Q8) int64 {
	return (int64(bx-ax)*int64(py-ay))>>Q8Shift - (int64(by-ay)*int64(px-ax))>>Q8Shift
}
