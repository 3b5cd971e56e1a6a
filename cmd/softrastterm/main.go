// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command softrastterm shows the demo scene in a terminal. Each character
// cell holds two pixels stacked vertically, drawn as an upper half block
// with the top pixel as foreground and the bottom one as background.
//
// Arrow keys orbit the camera, + and - zoom, q or Escape quits.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/softrast"
	"github.com/gogpu/softrast/demo"
)

const (
	upperHalf = '▀'
	orbitStep = 0.08
	zoomStep  = 1.1
)

type viewer struct {
	screen tcell.Screen
	scene  *demo.Scene
	ctx    *softrast.Context
	start  time.Time
}

func newViewer(screen tcell.Screen, scene *demo.Scene) *viewer {
	v := &viewer{
		screen: screen,
		scene:  scene,
		start:  time.Now(),
	}
	v.resize()
	return v
}

// resize matches the framebuffer to the terminal.
func (v *viewer) resize() {
	w, h := v.screen.Size()
	w, h = max(w, 1), max(h, 1)
	v.ctx = softrast.NewContext(min(w, 2048), min(2*h, 2048))
}

// handle applies one event and reports whether to keep running.
func (v *viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		cam := &v.scene.Camera
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			cam.Rotate(-orbitStep, 0)
		case tcell.KeyRight:
			cam.Rotate(orbitStep, 0)
		case tcell.KeyUp:
			cam.Rotate(0, orbitStep)
		case tcell.KeyDown:
			cam.Rotate(0, -orbitStep)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case '+', '=':
				cam.Zoom(1 / zoomStep)
			case '-':
				cam.Zoom(zoomStep)
			}
		}
	case *tcell.EventResize:
		v.resize()
		v.screen.Sync()
	}
	return true
}

func (v *viewer) draw() {
	v.scene.Render(v.ctx, float32(time.Since(v.start).Seconds()))
	present(v.screen, v.ctx.Target())
	v.screen.Show()
}

// present copies fb into screen cells, two rows of pixels per cell.
func present(screen tcell.Screen, fb *softrast.Framebuffer) {
	w, h := screen.Size()
	w = min(w, fb.Width())
	h = min(h, fb.Height()/2)
	for y := range h {
		for x := range w {
			style := tcell.StyleDefault.
				Foreground(cellColor(fb.Pixel(x, 2*y))).
				Background(cellColor(fb.Pixel(x, 2*y+1)))
			screen.SetContent(x, y, upperHalf, nil, style)
		}
	}
}

func cellColor(c softrast.RGBA) tcell.Color {
	r, g, b, _ := c.Color().RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

func (v *viewer) run() {
	ticker := time.NewTicker(33 * time.Millisecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			if !v.handle(ev) {
				return
			}
		case <-ticker.C:
			v.draw()
		}
	}
}

func main() {
	var (
		grid    = flag.Int("grid", 3, "cubes per side")
		shadows = flag.Bool("shadows", true, "render the shadow map")
		clip    = flag.Bool("clip", true, "clip triangles at the near plane")
		logPath = flag.String("log", "", "write logs to this file")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	// The terminal belongs to the viewer; logs go to a file or nowhere.
	if *logPath != "" {
		f, err := os.Create(*logPath) //nolint:gosec // path is user-provided intentionally
		if err != nil {
			slog.Error("open log", "err", err)
			os.Exit(1)
		}
		defer func() {
			_ = f.Close()
		}()
		level := slog.LevelInfo
		if *verbose {
			level = slog.LevelDebug
		}
		softrast.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	}

	cfg := demo.DefaultConfig()
	cfg.Grid = *grid
	cfg.Shadows = *shadows
	cfg.NearClip = *clip
	cfg.HUD = false
	scene, err := demo.NewScene(cfg)
	if err != nil {
		slog.Error("scene setup failed", "err", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		slog.Error("terminal unavailable", "err", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		slog.Error("terminal init failed", "err", err)
		os.Exit(1)
	}
	defer screen.Fini()

	newViewer(screen, scene).run()
}
