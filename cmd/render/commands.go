package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"sirds-renderer/internal/batch"
	"sirds-renderer/internal/depth"
	"sirds-renderer/internal/encode"
	"sirds-renderer/internal/pattern"
	"sirds-renderer/internal/scenelist"
	"sirds-renderer/internal/texture"
)

type SingleCmd struct {
	RenderFlags

	Depth   string         `help:"Grayscale depth image, white is nearest" type:"path"`
	Image   string         `help:"Pattern source image; random noise when omitted" type:"path"`
	Out     string         `help:"Output file" type:"path" short:"o" required:""`
	Stroke  []string       `help:"Brush stroke as x,y,radius[,shape[,value]] (repeatable)" sep:"none"`
	Strokes []depth.Stroke `kong:"-"`
}

func (c *SingleCmd) Validate(kctx *kong.Context) error {
	if err := c.RenderFlags.validate(); err != nil {
		return err
	}
	c.Strokes = c.Strokes[:0]
	for _, s := range c.Stroke {
		st, err := parseStroke(s)
		if err != nil {
			return fmt.Errorf("invalid stroke %q: %w", s, err)
		}
		c.Strokes = append(c.Strokes, st)
	}
	return nil
}

func (c *SingleCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig(c.flags())
	if err != nil {
		return err
	}

	name := strings.TrimSuffix(filepath.Base(c.Out), filepath.Ext(c.Out))
	results := batch.Run(batch.Config{
		OutputDir:     filepath.Dir(c.Out),
		Images:        texture.NewCache(nil),
		Width:         cfg.Width,
		Height:        cfg.Height,
		PatternWidth:  cfg.PatternWidth,
		MaxDepth:      cfg.MaxDepth,
		Format:        cfg.Format,
		Quality:       cfg.Quality,
		Workers:       1,
		RenderWorkers: cfg.Workers,
		Seed:          cfg.Seed,
	}, []scenelist.Scene{{
		Name:    name,
		Depth:   c.Depth,
		Pattern: c.Image,
		Output:  c.Out,
		Strokes: c.Strokes,
	}})

	r := results[0]
	if !r.Success {
		return errors.New(r.Error)
	}
	slog.Info("rendered", "output", r.Output, "width", r.Width, "height", r.Height,
		"mode", r.Mode, "elapsed", r.Elapsed)
	return nil
}

type BatchCmd struct {
	RenderFlags

	Scenes        string `help:"XML scene list" type:"path"`
	Patterns      string `help:"Directory of pattern images referenced by name" type:"path"`
	Output        string `help:"Output directory (default: stereograms)" type:"path" short:"o"`
	RenderWorkers int    `help:"Goroutines per scene render (default: 1)"`
	Test          int    `help:"Render only the first N scenes"`
}

func (c *BatchCmd) Validate(kctx *kong.Context) error {
	if c.Test < 0 {
		return fmt.Errorf("invalid test count: %d", c.Test)
	}
	return c.RenderFlags.validate()
}

func (c *BatchCmd) Run(g *Globals) error {
	flags := c.flags()
	flags.SceneList = c.Scenes
	flags.PatternDir = c.Patterns
	flags.OutputDir = c.Output
	flags.RenderWorkers = c.RenderWorkers
	cfg, err := g.loadConfig(flags)
	if err != nil {
		return err
	}
	if cfg.SceneList == "" {
		return fmt.Errorf("no scene list given; use --scenes or scene_list in config")
	}

	scenes, err := scenelist.Parse(cfg.SceneList)
	if err != nil {
		return err
	}
	if c.Test > 0 && c.Test < len(scenes) {
		scenes = scenes[:c.Test]
	}
	if len(scenes) == 0 {
		slog.Info("no scenes to render", "scene_list", cfg.SceneList)
		return nil
	}

	index := texture.BuildIndex(cfg.PatternDir)
	slog.Info("starting batch",
		"scenes", len(scenes),
		"patterns", index.Len(),
		"workers", cfg.Workers,
		"output", cfg.OutputDir)

	start := time.Now()
	results := batch.Run(batch.Config{
		SceneDir:      filepath.Dir(cfg.SceneList),
		OutputDir:     cfg.OutputDir,
		Images:        texture.NewCache(index),
		Width:         cfg.Width,
		Height:        cfg.Height,
		PatternWidth:  cfg.PatternWidth,
		MaxDepth:      cfg.MaxDepth,
		Format:        cfg.Format,
		Quality:       cfg.Quality,
		Workers:       cfg.Workers,
		RenderWorkers: cfg.RenderWorkers,
		Seed:          cfg.Seed,
	}, scenes)

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}
	slog.Info("batch finished",
		"rendered", len(results)-failed,
		"failed", failed,
		"elapsed", time.Since(start).Round(time.Millisecond))

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output dir %s: %w", cfg.OutputDir, err)
	}
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	m := batch.NewManifest(cfg.OutputDir, results)
	if err := batch.WriteManifest(manifestPath, m); err != nil {
		slog.Warn("manifest write failed", "path", manifestPath, "error", err)
	} else {
		slog.Info("manifest written", "path", manifestPath, "run_id", m.RunID)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d scenes failed", failed, len(results))
	}
	return nil
}

type PatternCmd struct {
	RenderFlags

	Image string `help:"Source image to sample; random noise when omitted" type:"path"`
	Out   string `help:"Output file" type:"path" short:"o" required:""`
}

func (c *PatternCmd) Validate(kctx *kong.Context) error {
	return c.RenderFlags.validate()
}

func (c *PatternCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig(c.flags())
	if err != nil {
		return err
	}

	rng := pattern.NewSource(cfg.Seed)
	var tile *pattern.Tile
	if c.Image != "" {
		img, err := texture.LoadImage(c.Image)
		if err != nil {
			return err
		}
		if tile, err = pattern.FromImage(rng, img, cfg.PatternWidth, cfg.Height); err != nil {
			return err
		}
	} else {
		tile = pattern.Noise(rng, cfg.PatternWidth, cfg.Height)
	}

	format := encode.FormatFromPath(c.Out)
	if format == "" {
		format = cfg.Format
	}
	if err := encode.WriteFile(c.Out, tile.Image(), format, encode.Options{Quality: cfg.Quality}); err != nil {
		return err
	}
	slog.Info("pattern written", "output", c.Out, "width", tile.Width, "height", tile.Height)
	return nil
}

// parseStroke reads "x,y,radius[,shape[,value]]". Shape defaults to circle
// and value to 10.
func parseStroke(s string) (depth.Stroke, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 3 || len(parts) > 5 {
		return depth.Stroke{}, fmt.Errorf("want 3 to 5 fields, got %d", len(parts))
	}

	nums := make([]int, 0, 4)
	for i, p := range parts {
		if i == 3 {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return depth.Stroke{}, err
		}
		nums = append(nums, v)
	}

	st := depth.Stroke{X: nums[0], Y: nums[1], Radius: nums[2], Value: 10}
	if st.Radius < 0 {
		return depth.Stroke{}, fmt.Errorf("negative radius %d", st.Radius)
	}
	if len(parts) > 3 {
		shape, err := depth.ParseShape(parts[3])
		if err != nil {
			return depth.Stroke{}, err
		}
		st.Shape = shape
	}
	if len(nums) > 3 {
		st.Value = nums[3]
	}
	return st, nil
}
