package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	BaseDir    string `json:"base_dir"`
	SceneList  string `json:"scene_list"`
	PatternDir string `json:"pattern_dir"`
	OutputDir  string `json:"output_dir"`

	// Render settings
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	PatternWidth  int    `json:"pattern_width"`
	MaxDepth      int    `json:"max_depth"`
	Format        string `json:"format"`
	Quality       int    `json:"jpeg_quality"` // WebP output is lossless
	Workers       int    `json:"workers"`
	RenderWorkers int    `json:"render_workers"`
	Seed          int64  `json:"seed"`
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

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.BaseDir != "" {
		c.BaseDir = flags.BaseDir
	}
	if flags.SceneList != "" {
		c.SceneList = flags.SceneList
	}
	if flags.PatternDir != "" {
		c.PatternDir = flags.PatternDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.PatternWidth > 0 {
		c.PatternWidth = flags.PatternWidth
	}
	if flags.MaxDepth != 0 {
		c.MaxDepth = flags.MaxDepth
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Quality > 0 {
		c.Quality = flags.Quality
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.RenderWorkers > 0 {
		c.RenderWorkers = flags.RenderWorkers
	}
	if flags.Seed != 0 {
		c.Seed = flags.Seed
	}

	if c.BaseDir == "" {
		c.BaseDir, _ = os.Getwd()
	}

	// Resolve relative paths against base dir
	c.SceneList = c.abs(c.SceneList)
	c.PatternDir = c.abs(c.PatternDir)
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.BaseDir, "stereograms")
	} else {
		c.OutputDir = c.abs(c.OutputDir)
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 600
	}
	if c.PatternWidth <= 0 {
		c.PatternWidth = 100
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = 30
	}
	if c.Format == "" {
		c.Format = "webp"
	}
	if c.Quality <= 0 {
		c.Quality = 90
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.RenderWorkers <= 0 {
		c.RenderWorkers = 1
	}
}

func (c *Config) abs(p string) string {
	if p == "" || filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	BaseDir       string
	SceneList     string
	PatternDir    string
	OutputDir     string
	Width         int
	Height        int
	PatternWidth  int
	MaxDepth      int
	Format        string
	Quality       int
	Workers       int
	RenderWorkers int
	Seed          int64
}
