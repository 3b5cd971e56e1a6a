package softrast

import (
	"bytes"
	"math"
	"slices"
	"testing"
)

// newScreenContext returns a context whose viewport is the identity, so
// triangle vertices are given directly in pixel coordinates.
func newScreenContext(w, h int, opts ...ContextOption) *Context {
	ctx := NewContext(w, h, opts...)
	ctx.SetViewport(Identity())
	return ctx
}

// recorder is a shader that remembers the weights it was called with.
type recorder struct {
	color RGBA
	seen  map[[2]int][3]float32
}

func newRecorder(c RGBA) *recorder {
	return &recorder{color: c, seen: make(map[[2]int][3]float32)}
}

func (r *recorder) Fragment(_ *Context, x, y int, w0, w1, w2 float32) (RGBA, bool) {
	r.seen[[2]int{x, y}] = [3]float32{w0, w1, w2}
	return r.color, true
}

func edge64(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// bruteCoverage evaluates the Q8 edge functions at every pixel of the
// target, without any block structure.
func bruteCoverage(w, h int, p0, p1, p2 Vec3) map[[2]int]bool {
	x0, y0 := Q8FromFloat(p0.X), Q8FromFloat(p0.Y)
	x1, y1 := Q8FromFloat(p1.X), Q8FromFloat(p1.Y)
	x2, y2 := Q8FromFloat(p2.X), Q8FromFloat(p2.Y)
	if edgeQ8(x0, y0, x1, y1, x2, y2) < 0 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}
	got := make(map[[2]int]bool)
	for y := range h {
		for x := range w {
			px, py := Q8FromInt(x), Q8FromInt(y)
			if edgeQ8(x1, y1, x2, y2, px, py) >= 0 &&
				edgeQ8(x2, y2, x0, y0, px, py) >= 0 &&
				edgeQ8(x0, y0, x1, y1, px, py) >= 0 {
				got[[2]int{x, y}] = true
			}
		}
	}
	return got
}

func TestDrawTriangleEndToEnd(t *testing.T) {
	ctx := newScreenContext(200, 200)
	p0, p1, p2 := V3(10, 10, 0.5), V3(110, 10, 0.5), V3(60, 110, 0.1)

	DrawTriangle(ctx, Solid(White), p0, p1, p2)

	area := edge64(10, 10, 110, 10, 60, 110)
	fb, db := ctx.Target(), ctx.DepthBuffer()
	covered := 0
	for y := range 200 {
		for x := range 200 {
			fx, fy := float64(x), float64(y)
			b0 := edge64(110, 10, 60, 110, fx, fy) / area
			b1 := edge64(60, 110, 10, 10, fx, fy) / area
			b2 := edge64(10, 10, 110, 10, fx, fy) / area
			inside := b0 >= 0 && b1 >= 0 && b2 >= 0

			c := fb.Pixel(x, y)
			d := db.At(x, y)
			if !inside {
				if c != Transparent || d != 0 {
					t.Fatalf("pixel (%d,%d) outside triangle written: color %v depth %d", x, y, c, d)
				}
				continue
			}
			covered++
			if c != White {
				t.Fatalf("pixel (%d,%d) = %v, want white", x, y, c)
			}
			z := 0.5 + b2*(0.1-0.5)
			want := math.Round((1 - z) * 65535)
			if math.Abs(float64(d)-want) > 1 {
				t.Fatalf("depth (%d,%d) = %d, want %v", x, y, d, want)
			}
		}
	}
	if covered == 0 {
		t.Fatal("no pixels covered")
	}

	for x := 10; x <= 110; x++ {
		if got := db.At(x, 10); got != 32768 {
			t.Fatalf("flat edge depth at x=%d = %d, want 32768", x, got)
		}
	}
	if got := db.At(60, 110); got < 58981 || got > 58983 {
		t.Errorf("apex depth = %d, want 58982", got)
	}

	s := ctx.Stats()
	if s.Triangles != 1 || s.Culled != 0 {
		t.Errorf("stats = %+v, want 1 triangle, 0 culled", s)
	}
	if s.Fragments != covered {
		t.Errorf("Fragments = %d, want %d", s.Fragments, covered)
	}
	if s.BlocksFull == 0 || s.BlocksPartial == 0 {
		t.Errorf("expected both full and partial blocks, got %+v", s)
	}
}

func TestDrawTriangleOcclusion(t *testing.T) {
	ctx := newScreenContext(200, 200)
	p0, p1, p2 := V3(10, 10, 0.5), V3(110, 10, 0.5), V3(60, 110, 0.1)
	DrawTriangle(ctx, Solid(White), p0, p1, p2)

	color := bytes.Clone(ctx.Target().Data())
	depth := slices.Clone(ctx.DepthBuffer().Data())

	far := func(p Vec3) Vec3 { p.Z = 0.9; return p }
	DrawTriangle(ctx, Solid(Red), far(p0), far(p1), far(p2))

	if !bytes.Equal(color, ctx.Target().Data()) {
		t.Error("farther triangle changed the color buffer")
	}
	if !slices.Equal(depth, ctx.DepthBuffer().Data()) {
		t.Error("farther triangle changed the depth buffer")
	}
	if ctx.Stats().DepthRejected == 0 {
		t.Error("expected depth-rejected fragments")
	}
}

func TestDrawTriangleDepthOrder(t *testing.T) {
	near := [3]Vec3{V3(0, 0, 0.2), V3(40, 0, 0.2), V3(0, 40, 0.2)}
	far := [3]Vec3{V3(0, 0, 0.6), V3(40, 0, 0.6), V3(0, 40, 0.6)}

	tests := []struct {
		name  string
		first [3]Vec3
		fc    RGBA
		then  [3]Vec3
		tc    RGBA
	}{
		{"near then far", near, Red, far, Blue},
		{"far then near", far, Blue, near, Red},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newScreenContext(64, 64)
			DrawTriangle(ctx, Solid(tt.fc), tt.first[0], tt.first[1], tt.first[2])
			DrawTriangle(ctx, Solid(tt.tc), tt.then[0], tt.then[1], tt.then[2])
			if got := ctx.Target().Pixel(5, 5); got != Red {
				t.Errorf("pixel = %v, want red (nearer)", got)
			}
			if got, want := ctx.DepthBuffer().At(5, 5), DepthValue(0.2); got != want {
				t.Errorf("depth = %d, want %d", got, want)
			}
		})
	}
}

func TestDrawTriangleAlphaGating(t *testing.T) {
	tests := []struct {
		name   string
		shader FragmentFunc
		writes bool
	}{
		{"alpha zero", func(*Context, int, int, float32, float32, float32) (RGBA, bool) {
			return RGBA2(1, 0, 0, 0), true
		}, false},
		{"negative alpha", func(*Context, int, int, float32, float32, float32) (RGBA, bool) {
			return RGBA2(1, 0, 0, -1), true
		}, false},
		{"declined", func(*Context, int, int, float32, float32, float32) (RGBA, bool) {
			return Red, false
		}, false},
		{"partial alpha", func(*Context, int, int, float32, float32, float32) (RGBA, bool) {
			return RGBA2(1, 0, 0, 0.5), true
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newScreenContext(32, 32)
			ctx.Target().Clear(Blue)
			ctx.DrawTriangle(tt.shader, V3(0, 0, 0.3), V3(30, 0, 0.3), V3(0, 30, 0.3))

			c := ctx.Target().Pixel(4, 4)
			d := ctx.DepthBuffer().At(4, 4)
			if !tt.writes {
				if c != Blue || d != 0 {
					t.Errorf("pixel written: color %v depth %d", c, d)
				}
				return
			}
			if d != DepthValue(0.3) {
				t.Errorf("depth = %d, want %d", d, DepthValue(0.3))
			}
			if c == Blue {
				t.Error("color not written")
			}
		})
	}
}

func TestDrawTriangleCulling(t *testing.T) {
	p0, p1, p2 := V3(3, 5, 0.4), V3(50, 9, 0.3), V3(20, 60, 0.7)

	t.Run("culled when enabled", func(t *testing.T) {
		ctx := newScreenContext(64, 64)
		DrawTriangle(ctx, Solid(White), p0, p2, p1)
		if s := ctx.Stats(); s.Culled != 1 || s.Fragments != 0 {
			t.Errorf("stats = %+v, want culled", s)
		}
		if slices.ContainsFunc(ctx.Target().Data(), func(b uint8) bool { return b != 0 }) {
			t.Error("culled triangle wrote pixels")
		}
	})

	t.Run("reverse wound matches when disabled", func(t *testing.T) {
		fwd := newScreenContext(64, 64, WithCulling(false))
		rev := newScreenContext(64, 64, WithCulling(false))
		rf, rr := newRecorder(White), newRecorder(White)
		DrawTriangle(fwd, rf, p0, p1, p2)
		DrawTriangle(rev, rr, p0, p2, p1)

		if !bytes.Equal(fwd.Target().Data(), rev.Target().Data()) {
			t.Error("color buffers differ")
		}
		if !slices.Equal(fwd.DepthBuffer().Data(), rev.DepthBuffer().Data()) {
			t.Error("depth buffers differ")
		}
		if len(rf.seen) != len(rr.seen) || len(rf.seen) == 0 {
			t.Fatalf("fragment counts %d vs %d", len(rf.seen), len(rr.seen))
		}
		for px, w := range rf.seen {
			r := rr.seen[px]
			if w[0] != r[0] || w[1] != r[2] || w[2] != r[1] {
				t.Fatalf("weights at %v: forward %v, reversed %v", px, w, r)
			}
		}
	})
}

func TestDrawTriangleBarycentricPartition(t *testing.T) {
	ctx := newScreenContext(128, 128, WithCulling(false))
	rec := newRecorder(White)
	DrawTriangle(ctx, rec, V3(2.3, 7.9, 0.5), V3(121.6, 30.2, 0.5), V3(40.1, 117.4, 0.5))
	DrawTriangle(ctx, rec, V3(5, 5, 0.1), V3(5, 120, 0.1), V3(120, 5, 0.1))

	const eps = 1e-5
	for px, w := range rec.seen {
		sum := w[0] + w[1] + w[2]
		if math.Abs(float64(sum-1)) > eps {
			t.Fatalf("weights at %v sum to %v", px, sum)
		}
		for _, wi := range w {
			if wi < -eps || wi > 1+eps {
				t.Fatalf("weight at %v out of range: %v", px, w)
			}
		}
	}
}

func TestDrawTriangleBlockClassification(t *testing.T) {
	tests := []struct {
		name       string
		p0, p1, p2 Vec3
	}{
		{"large", V3(3, 2, 0.5), V3(90, 11, 0.5), V3(40, 95, 0.5)},
		{"fractional", V3(7.3, 4.8, 0.5), V3(77.9, 29.1, 0.5), V3(17.5, 66.6, 0.5)},
		{"sliver", V3(0.5, 1, 0.5), V3(95.5, 40.25, 0.5), V3(94, 44, 0.5)},
		{"clipped by target", V3(-30, -20, 0.5), V3(130, 10, 0.5), V3(20, 140, 0.5)},
		{"block aligned", V3(8, 8, 0.5), V3(72, 8, 0.5), V3(8, 72, 0.5)},
		{"reverse wound", V3(3, 2, 0.5), V3(40, 95, 0.5), V3(90, 11, 0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newScreenContext(100, 100, WithCulling(false))
			rec := newRecorder(White)
			DrawTriangle(ctx, rec, tt.p0, tt.p1, tt.p2)

			want := bruteCoverage(100, 100, tt.p0, tt.p1, tt.p2)
			if len(rec.seen) != len(want) {
				t.Errorf("rasterized %d pixels, brute force %d", len(rec.seen), len(want))
			}
			for px := range want {
				if _, ok := rec.seen[px]; !ok {
					t.Fatalf("pixel %v missed", px)
				}
			}
			for px := range rec.seen {
				if !want[px] {
					t.Fatalf("pixel %v drawn outside the triangle", px)
				}
			}
		})
	}
}

func TestDrawTriangleSkipped(t *testing.T) {
	tests := []struct {
		name       string
		p0, p1, p2 Vec3
	}{
		{"degenerate", V3(0, 0, 0.5), V3(10, 10, 0.5), V3(20, 20, 0.5)},
		{"off screen", V3(100, 100, 0.5), V3(140, 100, 0.5), V3(100, 140, 0.5)},
		{"left of screen", V3(-50, 5, 0.5), V3(-10, 5, 0.5), V3(-30, 30, 0.5)},
		{"outside guard band", V3(0, 0, 0.5), V3(1e7, 0, 0.5), V3(0, 20, 0.5)},
		{"nan", V3(0, 0, 0.5), V3(float32(math.NaN()), 0, 0.5), V3(0, 20, 0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newScreenContext(64, 64, WithCulling(false))
			called := false
			ctx.DrawTriangle(FragmentFunc(func(*Context, int, int, float32, float32, float32) (RGBA, bool) {
				called = true
				return White, true
			}), tt.p0, tt.p1, tt.p2)
			if called {
				t.Error("shader called")
			}
			if s := ctx.Stats(); s.Culled != 1 {
				t.Errorf("Culled = %d, want 1", s.Culled)
			}
		})
	}
}

func TestDrawTriangleDepthOnly(t *testing.T) {
	ctx := newScreenContext(32, 32)
	ctx.SetDepthOnly(true)
	called := false
	ctx.DrawTriangle(FragmentFunc(func(*Context, int, int, float32, float32, float32) (RGBA, bool) {
		called = true
		return White, true
	}), V3(0, 0, 0.25), V3(30, 0, 0.25), V3(0, 30, 0.25))

	if called {
		t.Error("shader called in depth-only mode")
	}
	if got := ctx.DepthBuffer().At(2, 2); got != DepthValue(0.25) {
		t.Errorf("depth = %d, want %d", got, DepthValue(0.25))
	}
	if got := ctx.Target().Pixel(2, 2); got != Transparent {
		t.Errorf("color written in depth-only mode: %v", got)
	}
}

func TestDrawTriangleBlending(t *testing.T) {
	ctx := newScreenContext(16, 16, WithBlendMode(BlendSourceOver))
	ctx.Target().Clear(White)
	DrawTriangle(ctx, Solid(RGBA2(0, 0, 0, 0.5)), V3(0, 0, 0.5), V3(15, 0, 0.5), V3(0, 15, 0.5))

	got := ctx.Target().Pixel(1, 1)
	if math.Abs(float64(got.R-0.5)) > 1.0/255 || got.A != 1 {
		t.Errorf("blended pixel = %v, want half gray opaque", got)
	}
}

func TestDrawTriangleDefaultViewport(t *testing.T) {
	// Default viewport: NDC in, pixels out.
	ctx := NewContext(40, 40)
	rec := newRecorder(Green)
	DrawTriangle(ctx, rec, V3(-1, 1, 0.5), V3(1, 1, 0.5), V3(-1, -1, 0.5))
	if len(rec.seen) == 0 {
		t.Fatal("NDC triangle not rasterized")
	}
	if _, ok := rec.seen[[2]int{1, 1}]; !ok {
		t.Error("top-left pixel not covered")
	}
	if _, ok := rec.seen[[2]int{38, 38}]; ok {
		t.Error("bottom-right pixel covered")
	}
}
