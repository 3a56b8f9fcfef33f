package pattern

import (
	"fmt"
	"image"
	"image/color"
)

// InvalidImageError is returned when a source image has no pixels.
type InvalidImageError struct {
	Width  int
	Height int
}

func (e *InvalidImageError) Error() string {
	return fmt.Sprintf("pattern: invalid source image %dx%d", e.Width, e.Height)
}

// FromImage builds a w×h tile by sampling img with a fresh random offset per
// cell: cell (x, y) reads ((x+jx) mod imgW, (y+jy) mod imgH). This scrambles
// the image into texture that works as stereogram noise while keeping its
// colours.
func FromImage(rng Source, img image.Image, w, h int) (*Tile, error) {
	b := img.Bounds()
	iw, ih := b.Dx(), b.Dy()
	if iw <= 0 || ih <= 0 {
		return nil, &InvalidImageError{Width: iw, Height: ih}
	}

	at := pixelReader(img)
	t := NewTile(w, h)
	for y := 0; y < h; y++ {
		row := t.Row(y)
		for x := range row {
			sx := (x + rng.Intn(iw)) % iw
			sy := (y + rng.Intn(ih)) % ih
			row[x] = at(b.Min.X+sx, b.Min.Y+sy)
		}
	}
	return t, nil
}

// pixelReader reads straight colour channels. NRGBA, which the texture loader
// produces, is read directly; everything else, including premultiplied RGBA,
// goes through NRGBA conversion.
func pixelReader(img image.Image) func(x, y int) RGB {
	switch src := img.(type) {
	case *image.NRGBA:
		return func(x, y int) RGB {
			i := src.PixOffset(x, y)
			return RGB{R: src.Pix[i], G: src.Pix[i+1], B: src.Pix[i+2]}
		}
	}
	return func(x, y int) RGB {
		c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
		return RGB{R: c.R, G: c.G, B: c.B}
	}
}
