// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package demo is the procedural scene shared by the front-ends: a grid of
// spinning textured cubes on a fogged checker floor, lit by a directional
// light with an optional shadow map, plus axis lines and a text HUD.
package demo

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"golang.org/x/image/font/basicfont"
	"tinygo.org/x/tinyfont/proggy"

	"github.com/gogpu/softrast"
	"github.com/gogpu/softrast/glyph"
	"github.com/gogpu/softrast/mesh"
	"github.com/gogpu/softrast/shade"
)

// Config selects the scene content.
type Config struct {
	Grid    int     // cubes per side
	Spacing float32 // distance between cube centers

	Shadows    bool
	ShadowSize int // shadow map texels per side

	// NearClip clips triangles crossing the near plane instead of
	// rejecting them.
	NearClip bool

	Axes bool
	HUD  bool

	// Font names the HUD font: FontBasic or FontProggy. Empty selects
	// FontBasic.
	Font string

	// Texture is an optional PNG or BMP for the cubes; empty selects a
	// procedural checker.
	Texture string
}

// DefaultConfig returns the full scene.
func DefaultConfig() Config {
	return Config{
		Grid:       4,
		Spacing:    2.5,
		Shadows:    true,
		ShadowSize: 512,
		NearClip:   true,
		Axes:       true,
		HUD:        true,
		Font:       FontBasic,
	}
}

// HUD fonts.
const (
	FontBasic  = "basic"  // 7x13 x/image basicfont face
	FontProggy = "proggy" // tinyfont ProggyTiny bitmap font
)

// ErrUnknownFont is returned by NewScene for an unrecognized Config.Font.
var ErrUnknownFont = errors.New("demo: unknown font")

// Scene colors.
var (
	Background = softrast.Hex("#14171f")
	hudPanel   = softrast.RGBA2(0, 0, 0, 0.55)
)

// Scene owns the meshes, textures and shadow map of the demo. A Scene is
// not safe for concurrent use.
type Scene struct {
	Config Config
	Camera Orbit

	// Light is the world-space direction towards the light.
	Light softrast.Vec3

	cube    *mesh.Mesh
	floor   *mesh.Mesh
	cubeTex *softrast.Texture
	atlas   *glyph.Atlas

	floorShader *shade.Floor
	shadow      *shade.ShadowMap
	shadowCtx   *softrast.Context
	lightVP     softrast.Mat4

	renderer mesh.Renderer
	frame    int
	stats    softrast.Stats
}

// NewScene builds the scene assets.
func NewScene(cfg Config) (*Scene, error) {
	cfg.Grid = max(cfg.Grid, 1)
	if cfg.Spacing <= 0 {
		cfg.Spacing = DefaultConfig().Spacing
	}
	if cfg.ShadowSize <= 0 {
		cfg.ShadowSize = DefaultConfig().ShadowSize
	}

	s := &Scene{
		Config:      cfg,
		Camera:      DefaultOrbit(),
		Light:       softrast.V3(-0.45, 1, -0.3).Normalize(),
		cube:        mesh.Cube(1),
		floorShader: shade.DefaultFloor(),
	}

	extent := float32(cfg.Grid) * cfg.Spacing
	s.floor = mesh.Plane(2*extent+12, 8)
	s.Camera.Distance = max(s.Camera.Distance, extent*1.6)
	s.floorShader.FogStart = s.Camera.Distance * 0.8
	s.floorShader.FogEnd = s.Camera.Distance * 2.5
	s.floorShader.Fog = Background

	if cfg.Texture != "" {
		tex, err := softrast.LoadTexture(cfg.Texture)
		if err != nil {
			return nil, fmt.Errorf("demo: cube texture: %w", err)
		}
		s.cubeTex = tex
	} else {
		s.cubeTex = Checker(8, softrast.White, softrast.RGB(0.55, 0.55, 0.6))
	}
	s.cube.Texture = s.cubeTex

	atlas, err := hudAtlas(cfg.Font)
	if err != nil {
		return nil, fmt.Errorf("demo: hud font: %w", err)
	}
	s.atlas = atlas

	if cfg.Shadows {
		s.shadow = shade.NewShadowMap(cfg.ShadowSize)
		s.shadowCtx = softrast.NewContext(cfg.ShadowSize, cfg.ShadowSize,
			softrast.WithDepthBuffer(s.shadow.Depth))
		s.shadowCtx.SetDepthOnly(true)
	}

	softrast.Logger().Info("demo: scene ready",
		"grid", cfg.Grid,
		"triangles", cfg.Grid*cfg.Grid*s.cube.TriangleCount()+s.floor.TriangleCount(),
		"shadows", cfg.Shadows,
		"nearClip", cfg.NearClip)
	return s, nil
}

func hudAtlas(name string) (*glyph.Atlas, error) {
	switch name {
	case "", FontBasic:
		return glyph.NewFaceAtlas(basicfont.Face7x13)
	case FontProggy:
		return glyph.NewTinyfontAtlas(&proggy.TinySZ8pt7b, 0, 0)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFont, name)
	}
}

// Checker returns an n x n texture of alternating a and b texels with a
// one-texel b border.
func Checker(n int, a, b softrast.RGBA) *softrast.Texture {
	t := softrast.NewTexture(n, n)
	for y := range n {
		for x := range n {
			c := a
			if (x+y)&1 != 0 || x == 0 || y == 0 || x == n-1 || y == n-1 {
				c = b
			}
			t.Set(x, y, c)
		}
	}
	return t
}

// Stats returns the statistics of the last rendered frame, excluding the
// HUD.
func (s *Scene) Stats() softrast.Stats {
	return s.stats
}

// cubeModel returns the model matrix of cube (i, j) at time t.
func (s *Scene) cubeModel(i, j int, t float32) softrast.Mat4 {
	half := float32(s.Config.Grid-1) / 2
	x := (float32(i) - half) * s.Config.Spacing
	z := (float32(j) - half) * s.Config.Spacing
	phase := float32(i*7+j*3) * 0.37
	y := 0.75 + 0.25*math32.Sin(t*2+phase)
	return softrast.RotateY(t*0.8 + phase).
		Multiply(softrast.RotateX(0.3 * math32.Sin(t+phase))).
		Multiply(softrast.Translate(x, y, z))
}

func (s *Scene) cubeTint(i, j int) softrast.RGBA {
	n := s.Config.Grid
	return softrast.HSL(360*float32(i*n+j)/float32(n*n), 0.55, 0.65)
}

func (s *Scene) nearMode() mesh.NearMode {
	if s.Config.NearClip {
		return mesh.NearClip
	}
	return mesh.NearReject
}

// renderShadowMap draws the cubes' depth as seen from the light.
func (s *Scene) renderShadowMap(t float32) {
	extent := float32(s.Config.Grid)*s.Config.Spacing/2 + 3
	const dist = 30
	view := softrast.LookAt(s.Light.Mul(dist), softrast.Vec3{}, softrast.V3(0, 1, 0))
	proj := softrast.Ortho(-extent, extent, -extent, extent, 1, 2*dist)
	s.lightVP = view.Multiply(proj)

	ctx := s.shadowCtx
	ctx.ClearDepthBuffer()
	ctx.ResetStats()
	ctx.SetView(view)
	ctx.SetProjection(proj)
	opts := mesh.DefaultDrawOptions()
	for i := range s.Config.Grid {
		for j := range s.Config.Grid {
			ctx.SetModel(s.cubeModel(i, j, t))
			ctx.UpdateMatrices()
			s.renderer.Draw(ctx, s.cube, opts)
		}
	}
}

// Render draws one frame at time t (seconds) into ctx, clearing it first.
func (s *Scene) Render(ctx *softrast.Context, t float32) {
	s.frame++
	if s.shadow != nil {
		s.renderShadowMap(t)
	}

	ctx.ResetStats()
	ctx.Clear(Background)
	ctx.SetCulling(true)
	ctx.SetBlendMode(softrast.BlendNone)
	ctx.SetView(s.Camera.View())
	ctx.SetProjection(s.Camera.Projection(float32(ctx.Width()) / float32(ctx.Height())))

	s.drawFloor(ctx)

	opts := mesh.DrawOptions{
		Light:       s.Light,
		Ambient:     0.3,
		Near:        s.nearMode(),
		Shadow:      s.shadow,
		AlphaCutoff: 0.5,
	}
	for i := range s.Config.Grid {
		for j := range s.Config.Grid {
			model := s.cubeModel(i, j, t)
			s.setModel(ctx, model)
			opts.Tint = s.cubeTint(i, j)
			s.renderer.Draw(ctx, s.cube, opts)
		}
	}

	if s.Config.Axes {
		ctx.SetModel(softrast.Identity())
		ctx.ClearShadow()
		ctx.UpdateMatrices()
		o := softrast.V3(0, 0.01, 0)
		ctx.DrawLine(o, softrast.V3(2, 0.01, 0), softrast.Red)
		ctx.DrawLine(o, softrast.V3(0, 2.01, 0), softrast.Green)
		ctx.DrawLine(o, softrast.V3(0, 0.01, 2), softrast.Blue)
	}

	s.stats = ctx.Stats()
	if s.Config.HUD {
		s.drawHUD(ctx)
	}
}

// setModel installs a model matrix and, with shadows on, the matching
// light-space transform.
func (s *Scene) setModel(ctx *softrast.Context, model softrast.Mat4) {
	ctx.SetModel(model)
	if s.shadow != nil {
		ctx.SetShadowMVP(model.Multiply(s.lightVP))
	} else {
		ctx.ClearShadow()
	}
	ctx.UpdateMatrices()
}

func (s *Scene) drawFloor(ctx *softrast.Context) {
	s.setModel(ctx, softrast.Identity())
	f := s.floorShader
	f.Shadow = s.shadow
	positions := s.floor.Positions
	mesh.DrawWith(&s.renderer, ctx, s.floor, s.nearMode(), func(t [3]uint32, clip *[3]softrast.Vec4) *shade.Floor {
		for k, idx := range t {
			f.SetVertex(k, clip[k], positions[idx])
		}
		return f
	})
}

func (s *Scene) drawHUD(ctx *softrast.Context) {
	st := s.stats
	text := fmt.Sprintf("frame %d\ntris %d  culled %d\nfrags %d  zfail %d",
		s.frame, st.Triangles, st.Culled, st.Fragments, st.DepthRejected)
	w, h := s.atlas.Measure(text, 1)
	glyph.FillRect(ctx, 4, 4, 4+w+8, 4+h+8, hudPanel, nil)
	glyph.DrawString(ctx, s.atlas, 8, 8, 1, text, softrast.White)
}
