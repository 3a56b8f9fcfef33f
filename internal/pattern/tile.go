package pattern

import (
	"image"
	"image/color"
)

// RGB is one opaque pattern cell.
type RGB struct {
	R, G, B uint8
}

// Tile is the repeating strip sampled by the renderer. Cells are stored
// row-major, index y*Width + x.
type Tile struct {
	Width  int
	Height int
	Pix    []RGB
}

// NewTile allocates a black w×h tile.
func NewTile(w, h int) *Tile {
	return &Tile{
		Width:  w,
		Height: h,
		Pix:    make([]RGB, w*h),
	}
}

// At returns the cell at (x, y). Coordinates must be in bounds.
func (t *Tile) At(x, y int) RGB {
	return t.Pix[y*t.Width+x]
}

// Set writes the cell at (x, y). Coordinates must be in bounds.
func (t *Tile) Set(x, y int, c RGB) {
	t.Pix[y*t.Width+x] = c
}

// Row returns row y, sharing memory with the tile.
func (t *Tile) Row(y int) []RGB {
	return t.Pix[y*t.Width : (y+1)*t.Width]
}

// Image converts the tile into an opaque NRGBA image, used when dumping a
// pattern to disk.
func (t *Tile) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.Width, t.Height))
	for y := 0; y < t.Height; y++ {
		for x, c := range t.Row(y) {
			img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return img
}
