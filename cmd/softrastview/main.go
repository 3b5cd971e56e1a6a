// Command softrastview shows the demo scene in a window.
//
// Arrow keys orbit the camera, W and S zoom, Escape quits.
package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/softrast"
	"github.com/gogpu/softrast/demo"
)

const (
	tps       = 60
	orbitRate = 1.5 // radians per second
	zoomRate  = 1.02
)

// Game presents the software framebuffer through ebiten.
type Game struct {
	scene *demo.Scene
	ctx   *softrast.Context
	t     float32
}

// Update advances the animation and handles input.
func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	const dt = 1.0 / tps
	cam := &g.scene.Camera
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		cam.Rotate(-orbitRate*dt, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		cam.Rotate(orbitRate*dt, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		cam.Rotate(0, orbitRate*dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		cam.Rotate(0, -orbitRate*dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		cam.Zoom(1 / zoomRate)
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		cam.Zoom(zoomRate)
	}
	g.t += dt
	return nil
}

// Draw renders one frame and uploads it.
func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Render(g.ctx, g.t)
	// Frames are cleared to an opaque color, so straight and premultiplied
	// alpha agree.
	screen.WritePixels(g.ctx.Target().Data())
}

// Layout fixes the logical screen to the framebuffer size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.ctx.Width(), g.ctx.Height()
}

func main() {
	var (
		width   = flag.Int("width", 640, "framebuffer width")
		height  = flag.Int("height", 400, "framebuffer height")
		scale   = flag.Int("scale", 2, "window pixels per framebuffer pixel")
		grid    = flag.Int("grid", 4, "cubes per side")
		shadows = flag.Bool("shadows", true, "render the shadow map")
		clip    = flag.Bool("clip", true, "clip triangles at the near plane")
		font    = flag.String("font", demo.FontBasic, "HUD font: basic or proggy")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	softrast.SetLogger(logger)

	cfg := demo.DefaultConfig()
	cfg.Grid = *grid
	cfg.Shadows = *shadows
	cfg.NearClip = *clip
	cfg.Font = *font
	scene, err := demo.NewScene(cfg)
	if err != nil {
		logger.Error("scene setup failed", "err", err)
		os.Exit(1)
	}

	g := &Game{
		scene: scene,
		ctx:   softrast.NewContext(*width, *height),
	}

	ebiten.SetWindowSize(*width*(*scale), *height*(*scale))
	ebiten.SetWindowTitle("softrast")
	ebiten.SetTPS(tps)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("run failed", "err", err)
		os.Exit(1)
	}
}
