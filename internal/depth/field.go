package depth

import (
	"fmt"
	"strings"
)

// Field is a per-pixel depth map stored as flat row-major slice.
// 0 is the neutral plane, positive values protrude towards the viewer.
type Field struct {
	Width  int
	Height int
	Values []int // len = Width*Height, index y*Width + x
}

// New allocates a zero-filled field.
func New(w, h int) *Field {
	return &Field{
		Width:  w,
		Height: h,
		Values: make([]int, w*h),
	}
}

// At returns the depth at (x, y). Coordinates must be in bounds.
func (f *Field) At(x, y int) int {
	return f.Values[y*f.Width+x]
}

// Set writes the depth at (x, y). Coordinates must be in bounds.
func (f *Field) Set(x, y, v int) {
	f.Values[y*f.Width+x] = v
}

// In reports whether (x, y) lies inside the field.
func (f *Field) In(x, y int) bool {
	return x >= 0 && x < f.Width && y >= 0 && y < f.Height
}

// Row returns the depth values of row y, sharing memory with the field.
func (f *Field) Row(y int) []int {
	return f.Values[y*f.Width : (y+1)*f.Width]
}

// Clear resets every cell to 0.
func (f *Field) Clear() {
	clear(f.Values)
}

// Shape selects the brush footprint used by Paint.
type Shape int

const (
	Circle Shape = iota
	Square
)

func (s Shape) String() string {
	switch s {
	case Circle:
		return "circle"
	case Square:
		return "square"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// ParseShape converts "circle" or "square" (case-insensitive) to a Shape.
func ParseShape(s string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "circle", "":
		return Circle, nil
	case "square":
		return Square, nil
	}
	return Circle, fmt.Errorf("depth: unknown brush shape %q", s)
}

// Stroke is one brush dab: every cell within Radius of (X, Y) that matches
// Shape receives Value.
type Stroke struct {
	X      int
	Y      int
	Radius int
	Shape  Shape
	Value  int
}

// Paint applies a stroke in place. Cells outside the field are skipped and
// overlapping strokes overwrite each other (last write wins).
func (f *Field) Paint(s Stroke) {
	r := s.Radius
	r2 := r * r
	for dy := -r; dy <= r; dy++ {
		y := s.Y + dy
		if y < 0 || y >= f.Height {
			continue
		}
		row := f.Row(y)
		for dx := -r; dx <= r; dx++ {
			x := s.X + dx
			if x < 0 || x >= f.Width {
				continue
			}
			if s.Shape == Circle && dx*dx+dy*dy > r2 {
				continue
			}
			row[x] = s.Value
		}
	}
}
