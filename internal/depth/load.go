package depth

import (
	"image"

	"golang.org/x/image/draw"
)

// FromImage builds a w×h field from a depth image. The image is scaled to the
// field size with nearest-neighbour sampling so depth edges stay hard, then
// luminance 0..255 maps linearly onto 0..maxDepth.
func FromImage(img image.Image, w, h, maxDepth int) *Field {
	f := New(w, h)
	sb := img.Bounds()
	if sb.Empty() || w <= 0 || h <= 0 {
		return f
	}

	gray := image.NewGray(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(gray, gray.Bounds(), img, sb, draw.Src, nil)

	for y := 0; y < h; y++ {
		row := f.Row(y)
		pix := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		for x, g := range pix {
			row[x] = (int(g)*maxDepth + 127) / 255
		}
	}
	return f
}
