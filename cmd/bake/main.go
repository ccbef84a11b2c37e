package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ao-lightmap-baker/internal/batch"
	"ao-lightmap-baker/internal/config"
	"ao-lightmap-baker/internal/logger"
	"ao-lightmap-baker/internal/mathutil"
	"ao-lightmap-baker/internal/scene"
	"ao-lightmap-baker/internal/texture"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	outputDir := flag.String("output", "", "Output directory (default: lightmaps)")
	samples := flag.Int("samples", 0, "Accumulation samples per scene (default: 512)")
	seed := flag.Int64("seed", 0, "Sample-direction seed (same seed = same bake)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	format := flag.String("format", "", "Output format: webp or png (default: webp)")
	textureDir := flag.String("textures", "", "Directory of base-color textures for previews")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		OutputDir: *outputDir,
		Samples:   *samples,
		Seed:      *seed,
		Workers:   *workers,
		Format:    *format,
	})

	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	scenes := flag.Args()
	if len(scenes) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: bake [flags] <scene.json | demo name>...\n")
		fmt.Fprintf(os.Stderr, "Built-in demos: %s\n", strings.Join(scene.DemoNames(), ", "))
		os.Exit(1)
	}

	var texResolver texture.Resolver
	if *textureDir != "" {
		idx := texture.BuildIndex(*textureDir)
		texResolver = texture.NewCache(idx)
		logger.Sugar.Infof("textures: %d indexed under %s", idx.Len(), *textureDir)
	}

	logger.Sugar.Infof("baking %d scene(s), %d samples each, %d workers",
		len(scenes), cfg.Samples, cfg.Workers)
	logger.Sugar.Infof("output: %s (%s)", cfg.OutputDir, cfg.Format)

	start := time.Now()

	results := batch.Run(batch.Config{
		OutputDir:     cfg.OutputDir,
		Format:        cfg.Format,
		TexelsPerCell: cfg.TexelsPerCell,
		DepthSize:     cfg.DepthSize,
		Samples:       cfg.Samples,
		Seed:          cfg.Seed,
		KeyLight:      mathutil.Vec3(cfg.KeyLight),
		Jitter:        cfg.Jitter,
		SlopeOffset:   cfg.SlopeOffset,
		DepthBias:     cfg.DepthBias,
		PreviewSize:   cfg.PreviewSize,
		Supersample:   cfg.Supersample,
		ViewDir:       mathutil.Vec3(cfg.ViewDir),
		TexResolver:   texResolver,
		Workers:       cfg.Workers,
	}, scenes)

	elapsed := time.Since(start)

	success, failed := 0, 0
	for _, r := range results {
		if r.Success {
			success++
			logger.Sugar.Infof("baked %s → %s (%d samples)", r.Name, r.Lightmap, r.Samples)
		} else {
			failed++
			logger.Sugar.Errorf("failed %s: %s", r.Scene, r.Error)
		}
	}
	logger.Sugar.Infof("done: %d/%d scenes in %.1fs", success, len(scenes), elapsed.Seconds())

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		logger.Sugar.Warnf("manifest write failed: %v", err)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
