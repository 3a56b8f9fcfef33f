package pattern

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

// fixedSource returns the same value for every draw (clamped to n-1) and
// counts calls.
type fixedSource struct {
	v     int
	calls int
}

func (s *fixedSource) Intn(n int) int {
	s.calls++
	if s.v >= n {
		return n - 1
	}
	return s.v
}

func TestNoiseDimensions(t *testing.T) {
	tile := Noise(NewSource(1), 13, 7)
	if tile.Width != 13 || tile.Height != 7 {
		t.Fatalf("Noise size = %dx%d; want 13x7", tile.Width, tile.Height)
	}
	if len(tile.Pix) != 13*7 {
		t.Fatalf("len(Pix) = %d; want %d", len(tile.Pix), 13*7)
	}
}

func TestNoiseDrawsThreeChannelsPerCell(t *testing.T) {
	src := &fixedSource{v: 200}
	tile := Noise(src, 4, 3)
	if src.calls != 4*3*3 {
		t.Errorf("Intn calls = %d; want %d", src.calls, 4*3*3)
	}
	for i, c := range tile.Pix {
		if c != (RGB{200, 200, 200}) {
			t.Fatalf("Pix[%d] = %v; want {200 200 200}", i, c)
		}
	}
}

func TestNoiseSeeded(t *testing.T) {
	a := Noise(NewSource(42), 16, 16)
	b := Noise(NewSource(42), 16, 16)
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("Pix[%d] differs for the same seed: %v vs %v", i, a.Pix[i], b.Pix[i])
		}
	}

	// 256 cells of uniform noise should not collapse onto a handful of values.
	seen := make(map[uint8]bool)
	for _, c := range a.Pix {
		seen[c.R] = true
	}
	if len(seen) < 64 {
		t.Errorf("red channel used only %d distinct values", len(seen))
	}
}

func TestFromImageZeroOffset(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), B: 7, A: 255})
		}
	}

	tile, err := FromImage(&fixedSource{v: 0}, img, 5, 4)
	if err != nil {
		t.Fatalf("FromImage() error = %v", err)
	}
	// With zero jitter, cell (x, y) reads (x mod 3, y mod 2).
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			want := RGB{R: uint8((x % 3) * 10), G: uint8((y % 2) * 10), B: 7}
			if got := tile.At(x, y); got != want {
				t.Errorf("At(%d, %d) = %v; want %v", x, y, got, want)
			}
		}
	}
}

func TestFromImageJitterWraps(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}

	// Intn(4) always returns 3: x reads (x+3) mod 4, y reads (y+3) mod 4.
	tile, err := FromImage(&fixedSource{v: 3}, img, 6, 2)
	if err != nil {
		t.Fatalf("FromImage() error = %v", err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 6; x++ {
			want := RGB{R: uint8((x + 3) % 4), G: uint8((y + 3) % 4)}
			if got := tile.At(x, y); got != want {
				t.Errorf("At(%d, %d) = %v; want %v", x, y, got, want)
			}
		}
	}
}

func TestFromImageOffsetBounds(t *testing.T) {
	// Sub-image whose bounds do not start at the origin.
	base := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	base.SetNRGBA(2, 2, color.NRGBA{R: 99, A: 255})
	sub := base.SubImage(image.Rect(2, 2, 3, 3))

	tile, err := FromImage(NewSource(3), sub, 3, 3)
	if err != nil {
		t.Fatalf("FromImage() error = %v", err)
	}
	for i, c := range tile.Pix {
		if c.R != 99 {
			t.Fatalf("Pix[%d] = %v; want red 99", i, c)
		}
	}
}

func TestFromImageGeneric(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1, 1))
	img.SetGray(0, 0, color.Gray{Y: 128})
	tile, err := FromImage(NewSource(5), img, 2, 2)
	if err != nil {
		t.Fatalf("FromImage() error = %v", err)
	}
	if got := tile.At(1, 1); got != (RGB{128, 128, 128}) {
		t.Errorf("At(1, 1) = %v; want {128 128 128}", got)
	}
}

func TestFromImageInvalid(t *testing.T) {
	tests := []struct {
		name string
		rect image.Rectangle
	}{
		{"zero width", image.Rect(0, 0, 0, 5)},
		{"zero height", image.Rect(0, 0, 5, 0)},
		{"empty", image.Rectangle{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fixedSource{}
			tile, err := FromImage(src, image.NewNRGBA(tt.rect), 10, 10)
			if tile != nil {
				t.Error("FromImage() returned a tile for an empty image")
			}
			var invalid *InvalidImageError
			if !errors.As(err, &invalid) {
				t.Fatalf("FromImage() error = %v; want *InvalidImageError", err)
			}
			if invalid.Width != tt.rect.Dx() || invalid.Height != tt.rect.Dy() {
				t.Errorf("error size = %dx%d; want %dx%d", invalid.Width, invalid.Height, tt.rect.Dx(), tt.rect.Dy())
			}
			if src.calls != 0 {
				t.Errorf("Intn called %d times before the guard", src.calls)
			}
		})
	}
}

func TestFromImageTranslucentRGBAMatchesNRGBA(t *testing.T) {
	c := color.NRGBA{R: 200, G: 100, B: 50, A: 128}
	straight := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	premul := image.NewRGBA(image.Rect(0, 0, 3, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			straight.SetNRGBA(x, y, c)
			premul.Set(x, y, c)
		}
	}

	a, err := FromImage(&fixedSource{v: 1}, straight, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	b, err := FromImage(&fixedSource{v: 1}, premul, 4, 4)
	if err != nil {
		t.Fatal(err)
	}

	near := func(x, y uint8) bool { return x-y <= 1 || y-x <= 1 }
	for i := range a.Pix {
		p, q := a.Pix[i], b.Pix[i]
		if !near(p.R, q.R) || !near(p.G, q.G) || !near(p.B, q.B) {
			t.Fatalf("cell %d: NRGBA source gives %v, RGBA source gives %v", i, p, q)
		}
	}
	if got := a.Pix[0]; got != (RGB{R: 200, G: 100, B: 50}) {
		t.Errorf("NRGBA cell = %v; want {200 100 50}", got)
	}
}

func TestTileImage(t *testing.T) {
	tile := NewTile(2, 1)
	tile.Set(1, 0, RGB{R: 1, G: 2, B: 3})
	img := tile.Image()
	if got := img.NRGBAAt(1, 0); got != (color.NRGBA{R: 1, G: 2, B: 3, A: 255}) {
		t.Errorf("NRGBAAt(1, 0) = %v", got)
	}
	if got := img.NRGBAAt(0, 0); got.A != 255 {
		t.Errorf("alpha at (0, 0) = %d; want 255", got.A)
	}
}
