// Package session holds the editing state around a stereogram: canvas size,
// depth field, current pattern tile and whether the tile comes from noise or
// from a source image. Callers own a Session and decide when to render.
package session

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"sirds-renderer/internal/depth"
	"sirds-renderer/internal/pattern"
	"sirds-renderer/internal/raster"
)

// DefaultPatternWidth is the width of the repeating strip.
const DefaultPatternWidth = 100

var (
	ErrCanvasSize   = errors.New("session: canvas dimensions must be positive")
	ErrPatternWidth = errors.New("session: pattern width must be positive and narrower than the canvas")
)

// Mode reports where the current tile comes from.
type Mode int

const (
	ModeNoise Mode = iota
	ModeImage
)

func (m Mode) String() string {
	if m == ModeImage {
		return "image"
	}
	return "noise"
}

// Options configures New.
type Options struct {
	Width        int
	Height       int
	PatternWidth int            // 0 uses DefaultPatternWidth
	Rand         pattern.Source // nil uses a time-seeded source
	Logger       *slog.Logger   // nil uses slog.Default()
}

// Session replaces the module-level state of an interactive editor.
type Session struct {
	width        int
	height       int
	patternWidth int

	field *depth.Field
	tile  *pattern.Tile
	mode  Mode
	image image.Image // source for ModeImage

	rng    pattern.Source
	logger *slog.Logger
}

// New creates a session with a zero depth field and a noise tile.
func New(opts Options) (*Session, error) {
	s := &Session{
		patternWidth: opts.PatternWidth,
		rng:          opts.Rand,
		logger:       opts.Logger,
	}
	if s.patternWidth == 0 {
		s.patternWidth = DefaultPatternWidth
	}
	if s.rng == nil {
		s.rng = pattern.NewSource(0)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	if err := s.Resize(opts.Width, opts.Height); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) Width() int             { return s.width }
func (s *Session) Height() int            { return s.height }
func (s *Session) PatternWidth() int      { return s.patternWidth }
func (s *Session) Mode() Mode             { return s.mode }
func (s *Session) Depth() *depth.Field    { return s.field }
func (s *Session) Pattern() *pattern.Tile { return s.tile }

// Resize replaces the depth field with a zero field of the new size and
// rebuilds the tile at the new height.
func (s *Session) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrCanvasSize, w, h)
	}
	if s.patternWidth <= 0 || s.patternWidth >= w {
		return fmt.Errorf("%w: pattern %d, canvas %d", ErrPatternWidth, s.patternWidth, w)
	}

	tile, err := s.buildTile(s.mode, s.image, h)
	if err != nil {
		return err
	}
	s.width, s.height = w, h
	s.field = depth.New(w, h)
	s.tile = tile

	s.logger.Debug("session resized", "width", w, "height", h, "mode", s.mode)
	return nil
}

// Reset discards all painted depth and rebuilds the tile.
func (s *Session) Reset() error {
	tile, err := s.buildTile(s.mode, s.image, s.height)
	if err != nil {
		return err
	}
	s.field = depth.New(s.width, s.height)
	s.tile = tile
	return nil
}

// Clear zeroes the depth field in place. The tile is kept.
func (s *Session) Clear() {
	s.field.Clear()
}

// Paint applies one brush stroke to the depth field. It does not render.
func (s *Session) Paint(st depth.Stroke) {
	s.field.Paint(st)
}

// SetDepth replaces the depth field, e.g. with one loaded from an image.
func (s *Session) SetDepth(f *depth.Field) error {
	if f.Width != s.width || f.Height != s.height {
		return fmt.Errorf("session: depth field %dx%d does not match canvas %dx%d",
			f.Width, f.Height, s.width, s.height)
	}
	s.field = f
	return nil
}

// UseImage switches to image mode with img as the pattern source. On error
// the session is left unchanged.
func (s *Session) UseImage(img image.Image) error {
	tile, err := s.buildTile(ModeImage, img, s.height)
	if err != nil {
		return err
	}
	s.mode, s.image, s.tile = ModeImage, img, tile
	s.logger.Debug("pattern image selected", "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return nil
}

// RemoveImage returns to noise mode with a fresh noise tile.
func (s *Session) RemoveImage() {
	s.mode, s.image = ModeNoise, nil
	s.tile = pattern.Noise(s.rng, s.patternWidth, s.height)
}

// Render draws the current depth field through the current tile.
func (s *Session) Render() (*raster.FrameBuffer, error) {
	return raster.Render(s.field, s.tile)
}

// RenderParallel is Render with rows spread over workers.
func (s *Session) RenderParallel(workers int) (*raster.FrameBuffer, error) {
	return raster.RenderParallel(s.field, s.tile, workers)
}

func (s *Session) buildTile(m Mode, img image.Image, h int) (*pattern.Tile, error) {
	if m == ModeImage {
		return pattern.FromImage(s.rng, img, s.patternWidth, h)
	}
	return pattern.Noise(s.rng, s.patternWidth, h), nil
}
