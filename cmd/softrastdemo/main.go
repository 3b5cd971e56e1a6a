// Command softrastdemo renders frames of the demo scene to PNG files.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gogpu/softrast"
	"github.com/gogpu/softrast/demo"
)

func main() {
	var (
		width   = flag.Int("width", 640, "image width")
		height  = flag.Int("height", 480, "image height")
		frames  = flag.Int("frames", 1, "number of frames to render")
		fps     = flag.Float64("fps", 30, "animation frames per second")
		grid    = flag.Int("grid", 4, "cubes per side")
		output  = flag.String("output", "frame.png", "output file; frames after the first get a numeric suffix")
		texture = flag.String("texture", "", "PNG or BMP texture for the cubes")
		shadows = flag.Bool("shadows", true, "render the shadow map")
		clip    = flag.Bool("clip", true, "clip triangles at the near plane instead of rejecting them")
		hud     = flag.Bool("hud", true, "draw the statistics overlay")
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

	if *width <= 0 || *height <= 0 || *width > 2048 || *height > 2048 {
		logger.Error("image size out of range", "width", *width, "height", *height)
		os.Exit(2)
	}

	cfg := demo.DefaultConfig()
	cfg.Grid = *grid
	cfg.Shadows = *shadows
	cfg.NearClip = *clip
	cfg.HUD = *hud
	cfg.Font = *font
	cfg.Texture = *texture
	scene, err := demo.NewScene(cfg)
	if err != nil {
		logger.Error("scene setup failed", "err", err)
		os.Exit(1)
	}

	ctx := softrast.NewContext(*width, *height)
	for i := range *frames {
		start := time.Now()
		scene.Render(ctx, float32(float64(i) / *fps))
		elapsed := time.Since(start)

		path := framePath(*output, i, *frames)
		if err := ctx.Target().SavePNG(path); err != nil {
			logger.Error("save failed", "path", path, "err", err)
			os.Exit(1)
		}

		st := scene.Stats()
		logger.Info("frame rendered",
			"frame", i,
			"path", path,
			"elapsed", elapsed,
			"triangles", st.Triangles,
			"culled", st.Culled,
			"fragments", st.Fragments,
			"depthRejected", st.DepthRejected,
			"blocksFull", st.BlocksFull,
			"blocksPartial", st.BlocksPartial,
			"blocksSkipped", st.BlocksSkipped)
	}
}

// framePath returns output for a single frame and inserts a zero-padded
// frame number before the extension otherwise.
func framePath(output string, i, n int) string {
	if n <= 1 {
		return output
	}
	ext := filepath.Ext(output)
	return fmt.Sprintf("%s_%04d%s", strings.TrimSuffix(output, ext), i, ext)
}
