package raster

import "image"

// FrameBuffer holds a rendered stereogram as tightly packed RGBA rows.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8 // RGBA interleaved, len = W*H*4
}

// NewFrameBuffer allocates a zeroed (transparent) buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, w*h*4),
	}
}

// Row returns the RGBA bytes of row y.
func (fb *FrameBuffer) Row(y int) []uint8 {
	stride := fb.Width * 4
	return fb.Color[y*stride : (y+1)*stride]
}

// Image wraps the buffer as an NRGBA image without copying. Every pixel the
// renderer writes is opaque, so NRGBA and RGBA views are identical.
func (fb *FrameBuffer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    fb.Color,
		Stride: fb.Width * 4,
		Rect:   image.Rect(0, 0, fb.Width, fb.Height),
	}
}
