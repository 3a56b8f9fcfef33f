package batch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"sirds-renderer/internal/depth"
	"sirds-renderer/internal/encode"
	"sirds-renderer/internal/pattern"
	"sirds-renderer/internal/scenelist"
	"sirds-renderer/internal/session"
	"sirds-renderer/internal/texture"
)

// Config holds all shared resources for a batch run. Scene fields left at
// zero fall back to the values here.
type Config struct {
	SceneDir      string // base for relative depth and pattern paths
	OutputDir     string
	Images        texture.Resolver
	Width         int
	Height        int
	PatternWidth  int
	MaxDepth      int
	Format        string
	Quality       int
	Workers       int
	RenderWorkers int
	Seed          int64 // 0 = time-seeded; otherwise scene i uses Seed+i
	Logger        *slog.Logger
}

// Result holds the outcome of processing one scene.
type Result struct {
	Name    string
	Output  string
	Width   int
	Height  int
	Mode    string
	Success bool
	Error   string
	Elapsed time.Duration
}

// Run processes all scenes using a worker pool.
func Run(cfg Config, scenes []scenelist.Scene) []Result {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	total := len(scenes)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
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
					logger.Info("progress", "done", p, "total", total, "scenes_per_sec", float64(p)/elapsed)
				}
			}
		}
	}()

	// Worker pool
	sceneChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range sceneChan {
				results[idx] = processScene(cfg, logger, idx, scenes[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range scenes {
		sceneChan <- i
	}
	close(sceneChan)

	wg.Wait()
	close(done)

	return results
}

func processScene(cfg Config, logger *slog.Logger, idx int, sc scenelist.Scene) Result {
	start := time.Now()
	logger = logger.With("scene", sc.Name)
	res := Result{Name: sc.Name}
	fail := func(err error) Result {
		res.Error = err.Error()
		res.Elapsed = time.Since(start)
		logger.Error("scene failed", "error", err)
		return res
	}

	w, h := pick(sc.Width, cfg.Width), pick(sc.Height, cfg.Height)
	res.Width, res.Height = w, h

	seed := sc.Seed
	if seed == 0 && cfg.Seed != 0 {
		seed = cfg.Seed + int64(idx)
	}

	sess, err := session.New(session.Options{
		Width:        w,
		Height:       h,
		PatternWidth: cfg.PatternWidth,
		Rand:         pattern.NewSource(seed),
		Logger:       logger,
	})
	if err != nil {
		return fail(err)
	}

	if sc.Depth != "" {
		img, err := texture.LoadImage(resolveRef(cfg.SceneDir, sc.Depth))
		if err != nil {
			return fail(err)
		}
		field := depth.FromImage(img, w, h, pick(sc.MaxDepth, cfg.MaxDepth))
		if err := sess.SetDepth(field); err != nil {
			return fail(err)
		}
	}
	for _, st := range sc.Strokes {
		sess.Paint(st)
	}

	if sc.Pattern != "" {
		if cfg.Images == nil {
			return fail(fmt.Errorf("pattern %q requested but no image resolver configured", sc.Pattern))
		}
		img, err := cfg.Images.Resolve(resolveRef(cfg.SceneDir, sc.Pattern))
		if err != nil {
			return fail(err)
		}
		if err := sess.UseImage(img); err != nil {
			return fail(err)
		}
	}
	res.Mode = sess.Mode().String()

	fb, err := sess.RenderParallel(cfg.RenderWorkers)
	if err != nil {
		return fail(err)
	}

	outPath, format := outputPath(cfg, sc)
	if !encode.Lossless(format) {
		logger.Warn("lossy output format", "output", outPath, "format", format)
	}
	res.Output = outPath
	if err := encode.WriteFile(outPath, fb.Image(), format, encode.Options{Quality: cfg.Quality}); err != nil {
		return fail(err)
	}

	res.Success = true
	res.Elapsed = time.Since(start)
	logger.Debug("scene rendered", "output", outPath, "mode", res.Mode, "elapsed", res.Elapsed)
	return res
}

// outputPath returns where a scene is written and in which format. An
// explicit output extension wins over the configured format.
func outputPath(cfg Config, sc scenelist.Scene) (string, string) {
	format := cfg.Format
	if format == "" {
		format = "webp"
	}
	out := sc.Output
	if out == "" {
		out = sc.Name + encode.Extension(format)
	} else if f := encode.FormatFromPath(out); f != "" {
		format = f
	} else {
		out += encode.Extension(format)
	}
	if !filepath.IsAbs(out) {
		out = filepath.Join(cfg.OutputDir, out)
	}
	return out, format
}

// resolveRef joins ref onto dir when that names an existing file. Anything
// else is returned unchanged so the image resolver can treat it as an index
// name or a path of its own.
func resolveRef(dir, ref string) string {
	if dir == "" || filepath.IsAbs(ref) {
		return ref
	}
	candidate := filepath.Join(dir, ref)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ref
}

func pick(v, def int) int {
	if v != 0 {
		return v
	}
	return def
}
