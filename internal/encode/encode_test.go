package encode

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	_ "golang.org/x/image/webp"
)

func sample() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 9, 5))
	for y := 0; y < 5; y++ {
		for x := 0; x < 9; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 20), G: uint8(y * 40), B: 90, A: 255})
		}
	}
	return img
}

func TestEncodeDecodesBack(t *testing.T) {
	src := sample()

	for _, format := range Formats {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, src, format, Options{Quality: 90}); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			img, got, err := image.Decode(&buf)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != format {
				t.Errorf("decoded format = %q; want %q", got, format)
			}
			if img.Bounds().Dx() != 9 || img.Bounds().Dy() != 5 {
				t.Errorf("bounds = %v; want 9x5", img.Bounds())
			}
			if Lossless(format) {
				c := color.NRGBAModel.Convert(img.At(4, 2)).(color.NRGBA)
				if c != src.NRGBAAt(4, 2) {
					t.Errorf("pixel (4, 2) = %v; want %v", c, src.NRGBAAt(4, 2))
				}
			}
		})
	}
}

func TestEncodeUnsupported(t *testing.T) {
	if err := Encode(&bytes.Buffer{}, sample(), "xcf", Options{}); err == nil {
		t.Error("Encode() accepted an unknown format")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"out.webp":     "webp",
		"OUT.PNG":      "png",
		"a/b/c.jpg":    "jpeg",
		"x.jpeg":       "jpeg",
		"x.gif":        "gif",
		"x.bmp":        "bmp",
		"x.tif":        "tiff",
		"x.tiff":       "tiff",
		"x.raw":        "",
		"no-extension": "",
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q; want %q", path, got, want)
		}
	}
	if Extension("jpeg") != ".jpg" || Extension("webp") != ".webp" {
		t.Error("Extension() returned an unexpected suffix")
	}
}

func TestLossless(t *testing.T) {
	for _, format := range Formats {
		want := format != "jpeg" && format != "gif"
		if got := Lossless(format); got != want {
			t.Errorf("Lossless(%q) = %v; want %v", format, got, want)
		}
	}
	if Lossless("xcf") {
		t.Error("Lossless(\"xcf\") = true for an unknown format")
	}
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	path := filepath.Join(dir, "stereo.png")
	if err := WriteFile(path, sample(), "png", Options{}); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "stereo.png" {
		t.Errorf("directory holds %d entries, want only stereo.png", len(entries))
	}

	if err := WriteFile(filepath.Join(dir, "bad.xcf"), sample(), "xcf", Options{}); err == nil {
		t.Error("WriteFile() accepted an unknown format")
	}
	entries, _ = os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("failed WriteFile left %d entries behind", len(entries)-1)
	}
}
