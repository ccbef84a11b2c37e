// Package batch bakes many scenes with a worker pool. Each scene gets its own
// baker, lightmap, and depth buffer, so workers never share mutable state.
package batch

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"ao-lightmap-baker/internal/baker"
	"ao-lightmap-baker/internal/export"
	"ao-lightmap-baker/internal/mathutil"
	"ao-lightmap-baker/internal/raster"
	"ao-lightmap-baker/internal/scene"
	"ao-lightmap-baker/internal/texture"
)

// Config holds all shared settings for a batch run.
type Config struct {
	OutputDir     string
	Format        string
	TexelsPerCell int
	DepthSize     int
	Samples       int
	Seed          int64
	KeyLight      mathutil.Vec3
	Jitter        float64
	SlopeOffset   float64
	DepthBias     float64
	PreviewSize   int
	Supersample   int
	ViewDir       mathutil.Vec3
	TexResolver   texture.Resolver
	Workers       int
}

// Result holds the outcome of baking one scene.
type Result struct {
	Scene    string
	Name     string
	Lightmap string
	Preview  string
	Samples  int
	Success  bool
	Error    string
}

// Run bakes all scenes using a worker pool and reports sample throughput
// while running.
func Run(cfg Config, scenes []string) []Result {
	total := int64(len(scenes)) * int64(cfg.Samples)
	results := make([]Result, len(scenes))
	var processed atomic.Int64

	start := time.Now()

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					fmt.Printf("  [%d/%d samples] %.0f samples/sec\n", p, total, float64(p)/elapsed)
				}
			}
		}
	}()

	sceneChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range sceneChan {
				results[idx] = bakeScene(cfg, scenes[idx], &processed)
			}
		}()
	}

	for i := range scenes {
		sceneChan <- i
	}
	close(sceneChan)

	wg.Wait()
	close(done)

	return results
}

// loadScene resolves a path to a scene file, falling back to built-in demo
// names for arguments that are not files.
func loadScene(path string) (*scene.Scene, error) {
	if _, err := os.Stat(path); err == nil {
		return scene.Load(path)
	}
	return scene.Demo(path)
}

func bakeScene(cfg Config, scenePath string, processed *atomic.Int64) Result {
	sc, err := loadScene(scenePath)
	if err != nil {
		return Result{Scene: scenePath, Error: err.Error()}
	}

	name := sc.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(scenePath), filepath.Ext(scenePath))
	}

	mesh, lightmap, err := sc.Build(cfg.TexelsPerCell)
	if err != nil {
		return Result{Scene: scenePath, Name: name, Error: err.Error()}
	}

	b, err := baker.New(mesh, lightmap, baker.Params{
		DepthSize: cfg.DepthSize,
		KeyLight:  cfg.KeyLight,
		Jitter:    cfg.Jitter,
		Seed:      cfg.Seed,
		Occlusion: raster.OcclusionParams{
			SlopeOffset: cfg.SlopeOffset,
			DepthBias:   cfg.DepthBias,
		},
	})
	if err != nil {
		return Result{Scene: scenePath, Name: name, Error: err.Error()}
	}

	for i := 0; i < cfg.Samples; i++ {
		b.Step()
		processed.Add(1)
	}

	ext := cfg.Format
	lmPath := filepath.Join(cfg.OutputDir, name+"."+ext)
	if err := export.WriteImage(lmPath, cfg.Format, export.LightmapImage(lightmap)); err != nil {
		return Result{Scene: scenePath, Name: name, Error: err.Error()}
	}

	var baseTex *image.NRGBA
	if cfg.TexResolver != nil {
		baseTex = cfg.TexResolver.Resolve(name)
	}
	renderSize := cfg.PreviewSize * cfg.Supersample
	preview := export.RenderPreview(mesh, lightmap, baseTex, cfg.ViewDir, renderSize)
	if cfg.Supersample > 1 {
		preview = export.Downsample(preview, cfg.PreviewSize)
	}
	pvPath := filepath.Join(cfg.OutputDir, name+"_preview."+ext)
	if err := export.WriteImage(pvPath, cfg.Format, preview); err != nil {
		return Result{Scene: scenePath, Name: name, Error: err.Error()}
	}

	return Result{
		Scene:    scenePath,
		Name:     name,
		Lightmap: lmPath,
		Preview:  pvPath,
		Samples:  cfg.Samples,
		Success:  true,
	}
}
