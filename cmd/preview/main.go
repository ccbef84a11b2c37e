package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"strings"

	"ao-lightmap-baker/internal/baker"
	"ao-lightmap-baker/internal/config"
	"ao-lightmap-baker/internal/export"
	"ao-lightmap-baker/internal/logger"
	"ao-lightmap-baker/internal/mathutil"
	"ao-lightmap-baker/internal/raster"
	"ao-lightmap-baker/internal/scene"
	"ao-lightmap-baker/internal/texture"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	scenePath := flag.String("scene", "courtyard", "Scene file or demo name")
	samples := flag.Int("samples", 128, "Accumulation samples before rendering")
	out := flag.String("out", "preview.png", "Output image path (.png or .webp)")
	texPath := flag.String("texture", "", "Base-color texture file to modulate the preview")

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
	cfg.Resolve(config.Flags{Samples: *samples})

	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var sc *scene.Scene
	var err error
	if _, statErr := os.Stat(*scenePath); statErr == nil {
		sc, err = scene.Load(*scenePath)
	} else {
		sc, err = scene.Demo(*scenePath)
	}
	if err != nil {
		logger.Sugar.Fatalf("scene: %v", err)
	}

	mesh, lightmap, err := sc.Build(cfg.TexelsPerCell)
	if err != nil {
		logger.Sugar.Fatalf("build: %v", err)
	}

	b, err := baker.New(mesh, lightmap, baker.Params{
		DepthSize: cfg.DepthSize,
		KeyLight:  mathutil.Vec3(cfg.KeyLight),
		Jitter:    cfg.Jitter,
		Seed:      cfg.Seed,
		Occlusion: raster.OcclusionParams{
			SlopeOffset: cfg.SlopeOffset,
			DepthBias:   cfg.DepthBias,
		},
	})
	if err != nil {
		logger.Sugar.Fatalf("baker: %v", err)
	}

	logger.Sugar.Infof("baking %s: %d quads, %d texel atlas, %d samples",
		sc.Name, mesh.QuadCount, mesh.TextureSize(), cfg.Samples)
	b.Bake(cfg.Samples)

	var baseTex *image.NRGBA
	if *texPath != "" {
		baseTex, err = texture.LoadTexture(*texPath)
		if err != nil {
			logger.Sugar.Fatalf("texture: %v", err)
		}
	}

	renderSize := cfg.PreviewSize * cfg.Supersample
	img := export.RenderPreview(mesh, lightmap, baseTex, mathutil.Vec3(cfg.ViewDir), renderSize)
	if cfg.Supersample > 1 {
		img = export.Downsample(img, cfg.PreviewSize)
	}

	format := "png"
	if strings.HasSuffix(strings.ToLower(*out), ".webp") {
		format = "webp"
	}
	if err := export.WriteImage(*out, format, img); err != nil {
		logger.Sugar.Fatalf("write: %v", err)
	}
	logger.Sugar.Infof("wrote %s", *out)
}
