package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"os/signal"

	"github.com/gekko3d/phong/pipeline"
	"github.com/gekko3d/phong/scene"
	"github.com/schollz/progressbar/v3"
)

func main() {
	configPath := flag.String("config", "", "Scene file (.yaml, .yml or .toml); defaults are used when empty")
	out := flag.String("out", "phong.png", "Output PNG path")
	width := flag.Int("width", 0, "Override image width")
	height := flag.Int("height", 0, "Override image height")
	ss := flag.Int("ss", 0, "Override supersampling factor")
	workers := flag.Int("workers", 0, "Render goroutines (0 = GOMAXPROCS)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger := pipeline.NewDefaultLogger("phongdemo", *debug)
	if err := run(logger, *configPath, *out, *width, *height, *ss, *workers); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(logger pipeline.Logger, configPath, out string, width, height, ss, workers int) error {
	cfg := scene.Default()
	if configPath != "" {
		var err error
		if cfg, err = scene.Load(configPath); err != nil {
			return err
		}
	}
	if width > 0 {
		cfg.Image.Width = width
	}
	if height > 0 {
		cfg.Image.Height = height
	}
	if ss > 0 {
		cfg.Image.Supersample = ss
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bar := progressbar.Default(-1, "rendering")
	defer bar.Close()
	renderer := pipeline.NewRenderer(pipeline.Options{
		Logger:  logger,
		Workers: workers,
		Progress: func(done, total int) {
			bar.ChangeMax(total)
			_ = bar.Set(done)
		},
	})

	img, stats, err := cfg.Render(ctx, renderer)
	if err != nil {
		return err
	}
	_ = bar.Finish()

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", out, err)
	}

	logger.Infof("wrote %s (%dx%d, %d triangles, %d fragments)",
		out, img.Bounds().Dx(), img.Bounds().Dy(), stats.Triangles, stats.Fragments)
	return nil
}
