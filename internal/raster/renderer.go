package raster

import (
	"fmt"

	"sirds-renderer/internal/depth"
	"sirds-renderer/internal/parallel"
	"sirds-renderer/internal/pattern"
)

// DegeneratePatternError is returned when the pattern tile has no columns or
// no rows to sample from.
type DegeneratePatternError struct {
	Width  int
	Height int
}

func (e *DegeneratePatternError) Error() string {
	return fmt.Sprintf("raster: degenerate pattern tile %dx%d", e.Width, e.Height)
}

func checkTile(tile *pattern.Tile) error {
	if tile == nil {
		return &DegeneratePatternError{}
	}
	if tile.Width <= 0 || tile.Height <= 0 {
		return &DegeneratePatternError{Width: tile.Width, Height: tile.Height}
	}
	return nil
}

// Render synthesises a stereogram the size of the depth field. Output pixel
// (x, y) copies tile cell ((x - depth) mod tile.Width, y mod tile.Height), so
// positive depth pulls the pattern left and the repeated strips fuse at that
// disparity. This is the single-pass algorithm: depth edges produce hard
// pattern discontinuities and no occlusion search is done.
//
// The tile is checked before the buffer is allocated; on error no buffer is
// returned.
func Render(field *depth.Field, tile *pattern.Tile) (*FrameBuffer, error) {
	if err := checkTile(tile); err != nil {
		return nil, err
	}

	fb := NewFrameBuffer(field.Width, field.Height)
	for y := 0; y < field.Height; y++ {
		renderRow(fb, field, tile, y)
	}
	return fb, nil
}

// RenderParallel produces the same output as Render with the rows split into
// one contiguous band per worker. Each row only reads its own depth row, so rows are independent.
// workers < 1 uses GOMAXPROCS.
func RenderParallel(field *depth.Field, tile *pattern.Tile, workers int) (*FrameBuffer, error) {
	if err := checkTile(tile); err != nil {
		return nil, err
	}
	if workers == 1 {
		return Render(field, tile)
	}

	fb := NewFrameBuffer(field.Width, field.Height)
	parallel.Rows(field.Height, workers, func(lo, hi int) {
		for y := lo; y < hi; y++ {
			renderRow(fb, field, tile, y)
		}
	})
	return fb, nil
}

func renderRow(fb *FrameBuffer, field *depth.Field, tile *pattern.Tile, y int) {
	out := fb.Row(y)
	src := tile.Row(y % tile.Height)
	for x, d := range field.Row(y) {
		c := src[PatternColumn(x, d, tile.Width)]
		i := x * 4
		out[i] = c.R
		out[i+1] = c.G
		out[i+2] = c.B
		out[i+3] = 255
	}
}
