// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package softrast

import (
	"bytes"
	"testing"

	"github.com/chewxy/math32"
)

func TestClipTriangleNear(t *testing.T) {
	in := func(x, y float32) Vec4 { return V4(x, y, 1, 2) }
	out := func(x, y float32) Vec4 { return V4(x, y, -1, 0.5) }

	tests := []struct {
		name       string
		c0, c1, c2 Vec4
		n          int
		onPlane    int
	}{
		{"all in front", in(0, 0), in(1, 0), in(0, 1), 3, 0},
		{"all behind", out(0, 0), out(1, 0), out(0, 1), 0, 0},
		{"one behind", out(0, 0), in(1, 0), in(0, 1), 4, 2},
		{"two behind", out(0, 0), out(1, 0), in(0, 1), 3, 2},
		{"vertex on plane", V4(0, 0, 0, 1), in(1, 0), in(0, 1), 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poly, n := ClipTriangleNear(tt.c0, tt.c1, tt.c2)
			if n != tt.n {
				t.Fatalf("n = %d, want %d", n, tt.n)
			}
			onPlane := 0
			for _, v := range poly[:n] {
				if v.Pos.Z < 0 {
					t.Errorf("vertex %v behind the plane", v.Pos)
				}
				if v.Pos.Z == 0 {
					onPlane++
				}
				if s := v.Bary.X + v.Bary.Y + v.Bary.Z; math32.Abs(s-1) > 1e-6 {
					t.Errorf("weights %v sum to %v", v.Bary, s)
				}
				// Weights reproduce the position.
				p := tt.c0.Scale(v.Bary.X).Add(tt.c1.Scale(v.Bary.Y)).Add(tt.c2.Scale(v.Bary.Z))
				if math32.Abs(p.X-v.Pos.X) > 1e-5 || math32.Abs(p.W-v.Pos.W) > 1e-5 {
					t.Errorf("weights %v give %v, vertex is %v", v.Bary, p, v.Pos)
				}
			}
			if onPlane != tt.onPlane {
				t.Errorf("%d vertices on the plane, want %d", onPlane, tt.onPlane)
			}
		})
	}
}

func TestDrawClippedUnclipped(t *testing.T) {
	c0, c1, c2 := V4(-0.5, 0.5, 0.2, 1), V4(1, 1, 0.6, 2), V4(-1, -2, 0.9, 2)

	a := NewContext(48, 48)
	b := NewContext(48, 48)
	DrawClipped(a, Solid(Cyan), c0, c1, c2)
	DrawTriangle(b, Solid(Cyan), c0.Project(), c1.Project(), c2.Project())
	if !bytes.Equal(a.Target().Data(), b.Target().Data()) {
		t.Error("DrawClipped differs from DrawTriangle for an unclipped triangle")
	}
}

func TestDrawClippedCrossingNearPlane(t *testing.T) {
	ctx := NewContext(96, 96, WithCulling(false))
	ctx.SetView(LookAt(V3(0, 2, 0), V3(0, 2, 1), V3(0, 1, 0)))
	ctx.SetProjection(Perspective(math32.Pi/2, 1, 0.5, 50))
	ctx.UpdateMatrices()

	// A floor triangle running from behind the camera to far in front.
	p0, p1, p2 := V3(-4, 0, -3), V3(4, 0, -3), V3(0, 0, 20)
	c0, c1, c2 := ctx.ToClip(p0), ctx.ToClip(p1), ctx.ToClip(p2)
	if c0.Z >= 0 || c2.Z < 0 {
		t.Fatalf("test triangle does not cross the near plane: %v %v", c0, c2)
	}

	const eps = 1e-3
	calls := 0
	shader := FragmentFunc(func(_ *Context, _, _ int, w0, w1, w2 float32) (RGBA, bool) {
		calls++
		// Undo the screen-space weighting: perspective-correct weights must
		// be a convex combination of the original vertices.
		l0, l1, l2 := w0/c0.W, w1/c1.W, w2/c2.W
		s := l0 + l1 + l2
		l0, l1, l2 = l0/s, l1/s, l2/s
		if l0 < -eps || l1 < -eps || l2 < -eps {
			t.Fatalf("clip-space weights (%v, %v, %v) outside the triangle", l0, l1, l2)
		}
		z := c0.Z*l0 + c1.Z*l1 + c2.Z*l2
		if z < -eps {
			t.Fatalf("fragment reconstructs behind the near plane: z = %v", z)
		}
		return White, true
	})
	DrawClipped(ctx, shader, c0, c1, c2)
	if calls == 0 {
		t.Fatal("clipped triangle not rasterized")
	}
	if got := ctx.Target().Pixel(48, 94); got != White {
		t.Errorf("floor below the camera not drawn: %v", got)
	}
}

func TestDrawClippedFullyBehind(t *testing.T) {
	ctx := NewContext(16, 16)
	DrawClipped(ctx, Solid(Red), V4(0, 0, -1, 0.2), V4(1, 0, -2, 0.1), V4(0, 1, -1, 0.3))
	if s := ctx.Stats(); s.Culled != 1 || s.Fragments != 0 {
		t.Errorf("stats = %+v, want one culled triangle", s)
	}
}
