package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
)

// Config holds all bake and output settings.
type Config struct {
	// Output
	OutputDir string `json:"output_dir"`
	Format    string `json:"format"` // "webp" or "png"

	// Atlas / bake
	TexelsPerCell int   `json:"texels_per_cell"`
	DepthSize     int   `json:"depth_size"`
	Samples       int   `json:"samples"`
	Seed          int64 `json:"seed"`

	// Lighting. Bias constants are scale-dependent: the defaults suit scenes
	// around unit size.
	KeyLight    [3]float64 `json:"key_light"`
	Jitter      float64    `json:"jitter"`
	SlopeOffset float64    `json:"slope_offset"`
	DepthBias   float64    `json:"depth_bias"`

	// Preview
	PreviewSize int        `json:"preview_size"`
	Supersample int        `json:"supersample"`
	ViewDir     [3]float64 `json:"view_dir"`

	// Batch
	Workers int `json:"workers"`

	// Logging
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir string
	Samples   int
	Seed      int64
	Workers   int
	Format    string
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Samples > 0 {
		c.Samples = flags.Samples
	}
	if flags.Seed != 0 {
		c.Seed = flags.Seed
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}

	if c.OutputDir == "" {
		c.OutputDir = "lightmaps"
	}
	if c.Format == "" {
		c.Format = "webp"
	}
	if c.TexelsPerCell <= 0 {
		c.TexelsPerCell = 16
	}
	if c.DepthSize <= 0 {
		c.DepthSize = 512
	}
	if c.Samples <= 0 {
		c.Samples = 512
	}
	if c.KeyLight == ([3]float64{}) {
		c.KeyLight = [3]float64{180, 260, 140}
	}
	if c.Jitter == 0 {
		c.Jitter = 0.3
	}
	if c.SlopeOffset == 0 {
		c.SlopeOffset = 0.02
	}
	if c.DepthBias == 0 {
		c.DepthBias = -0.0025
	}
	if c.PreviewSize <= 0 {
		c.PreviewSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.ViewDir == ([3]float64{}) {
		c.ViewDir = [3]float64{1, 1.3, 0.9}
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
