package main

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/alecthomas/kong"

	"sirds-renderer/internal/config"
	"sirds-renderer/internal/encode"
)

// Globals are flags shared by every subcommand.
type Globals struct {
	Config  string `help:"Path to config.json file" type:"path"`
	Base    string `help:"Base directory for relative paths (default: current directory)" type:"path"`
	Verbose bool   `help:"Enable debug logging" short:"v"`
}

type CLI struct {
	Globals

	Single  SingleCmd  `cmd:"" help:"Render one stereogram from a depth image and/or brush strokes"`
	Batch   BatchCmd   `cmd:"" help:"Render every scene of an XML scene list"`
	Pattern PatternCmd `cmd:"" help:"Write a pattern tile to an image file"`
}

// RenderFlags are render settings that every subcommand can override.
type RenderFlags struct {
	Width        int    `help:"Output width in pixels"`
	Height       int    `help:"Output height in pixels"`
	PatternWidth int    `help:"Width of the repeating pattern strip"`
	MaxDepth     int    `help:"Depth assigned to white in a depth image"`
	Seed         int64  `help:"Random seed (0 = time based)"`
	Format       string `help:"Output format when the file name has no known extension (webp, png, bmp, tiff are lossless; jpeg and gif alter dot colours)"`
	Quality      int    `help:"JPEG quality 1-100"`
	Workers      int    `help:"Worker goroutines (default: NumCPU)"`
}

func (s RenderFlags) flags() config.Flags {
	return config.Flags{
		Width:        s.Width,
		Height:       s.Height,
		PatternWidth: s.PatternWidth,
		MaxDepth:     s.MaxDepth,
		Seed:         s.Seed,
		Format:       s.Format,
		Quality:      s.Quality,
		Workers:      s.Workers,
	}
}

// loadConfig reads the optional config file and applies flag overrides.
func (g *Globals) loadConfig(flags config.Flags) (config.Config, error) {
	var cfg config.Config
	if g.Config != "" {
		var err error
		if cfg, err = config.Load(g.Config); err != nil {
			return config.Config{}, err
		}
	}
	flags.BaseDir = g.Base
	cfg.Resolve(flags)
	return cfg, nil
}

func (s RenderFlags) validate() error {
	if s.Format != "" && !slices.Contains(encode.Formats, s.Format) {
		return fmt.Errorf("unsupported format %q", s.Format)
	}
	if s.Format != "" && !encode.Lossless(s.Format) {
		slog.Warn("lossy output format, dot colours will not be exact", "format", s.Format)
	}
	if s.Width < 0 || s.Height < 0 || s.PatternWidth < 0 {
		return fmt.Errorf("negative dimensions")
	}
	return nil
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("render"),
		kong.Description("Random-dot stereogram renderer."),
		kong.UsageOnError(),
	)

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := kctx.Run(&cli.Globals); err != nil {
		slog.Error("render failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}
