package softrast

import "testing"

func TestNewContextDefaults(t *testing.T) {
	ctx := NewContext(120, 80)
	if ctx.Width() != 120 || ctx.Height() != 80 {
		t.Errorf("size = %dx%d, want 120x80", ctx.Width(), ctx.Height())
	}
	if ctx.Target() == nil || ctx.DepthBuffer() == nil {
		t.Fatal("buffers not allocated")
	}
	if ctx.Target().Width() != 120 || ctx.DepthBuffer().Height() != 80 {
		t.Error("allocated buffers have the wrong size")
	}
	if !ctx.Culling() {
		t.Error("culling disabled by default")
	}
	if ctx.BlendMode() != BlendNone {
		t.Errorf("BlendMode = %v, want none", ctx.BlendMode())
	}
	if ctx.DepthOnly() {
		t.Error("depth-only enabled by default")
	}
	if ctx.Viewport() != ViewportMatrix(120, 80) {
		t.Error("default viewport does not cover the target")
	}
	for _, m := range []Mat4{ctx.Model(), ctx.View(), ctx.Projection()} {
		if m != Identity() {
			t.Errorf("base matrix = %v, want identity", m)
		}
	}
}

func TestNewContextOptions(t *testing.T) {
	fb := NewFramebuffer(16, 8)
	db := NewDepthBuffer(16, 8)
	ctx := NewContext(16, 8,
		WithTarget(fb),
		WithDepthBuffer(db),
		WithCulling(false),
		WithBlendMode(BlendAdditive))

	if ctx.Target() != fb || ctx.DepthBuffer() != db {
		t.Error("context did not borrow the supplied buffers")
	}
	if ctx.Culling() {
		t.Error("WithCulling(false) ignored")
	}
	if ctx.BlendMode() != BlendAdditive {
		t.Errorf("BlendMode = %v, want additive", ctx.BlendMode())
	}
}

func TestContextClear(t *testing.T) {
	ctx := NewContext(8, 8)
	ctx.DepthBuffer().Set(3, 3, 500)
	ctx.Clear(Magenta)
	if ctx.Target().Pixel(7, 7) != Magenta {
		t.Error("target not cleared")
	}
	if ctx.DepthBuffer().At(3, 3) != 0 {
		t.Error("depth not cleared")
	}

	ctx.DepthBuffer().Set(1, 1, 7)
	ctx.ClearDepthBuffer()
	if ctx.DepthBuffer().At(1, 1) != 0 {
		t.Error("ClearDepthBuffer left a value")
	}
	if ctx.Target().Pixel(1, 1) != Magenta {
		t.Error("ClearDepthBuffer touched the target")
	}
}

func TestContextSetTarget(t *testing.T) {
	ctx := newScreenContext(16, 16)
	first := ctx.Target()
	second := NewFramebuffer(16, 16)
	ctx.SetTarget(second)
	if ctx.Target() != second {
		t.Fatal("SetTarget ignored")
	}
	DrawTriangle(ctx, Solid(Yellow), V3(0, 0, 0.5), V3(15, 0, 0.5), V3(0, 15, 0.5))
	if second.Pixel(2, 2) != Yellow {
		t.Error("triangle not drawn into the new target")
	}
	if first.Pixel(2, 2) != Transparent {
		t.Error("triangle drawn into the old target")
	}
}

func TestContextStats(t *testing.T) {
	ctx := newScreenContext(32, 32)
	DrawTriangle(ctx, Solid(White), V3(0, 0, 0.5), V3(31, 0, 0.5), V3(0, 31, 0.5))
	ctx.UpdateMatrices()
	ctx.DrawLine(V3(0, 31, 0), V3(31, 31, 0), Red)

	s := ctx.Stats()
	if s.Triangles != 1 || s.Lines != 1 || s.Fragments == 0 {
		t.Errorf("stats = %+v", s)
	}
	if got := s.BlocksFull + s.BlocksPartial + s.BlocksSkipped; got != 16 {
		t.Errorf("classified %d blocks, want 16", got)
	}
	ctx.ResetStats()
	if ctx.Stats() != (Stats{}) {
		t.Errorf("stats after reset = %+v", ctx.Stats())
	}
}

func TestBlendModeString(t *testing.T) {
	tests := []struct {
		m    BlendMode
		want string
	}{
		{BlendNone, "none"},
		{BlendDecal, "decal"},
		{BlendSourceOver, "source-over"},
		{BlendAdditive, "additive"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
