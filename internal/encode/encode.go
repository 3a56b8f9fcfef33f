package encode

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Formats lists the supported output formats.
var Formats = []string{"webp", "png", "jpeg", "gif", "bmp", "tiff"}

// Options tune encoders that take parameters. Zero values pick defaults.
type Options struct {
	Quality int // JPEG quality 1-100
}

// FormatFromPath maps a file extension to a format name, or "" if unknown.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".webp":
		return "webp"
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	}
	return ""
}

// Lossless reports whether format stores every pixel exactly. JPEG blurs
// the dots and GIF quantises them to a 256 colour palette, which weakens the
// depth effect.
func Lossless(format string) bool {
	switch format {
	case "webp", "png", "bmp", "tiff":
		return true
	}
	return false
}

// Extension returns the canonical file extension for a format.
func Extension(format string) string {
	if format == "jpeg" {
		return ".jpg"
	}
	return "." + format
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format string, opts Options) error {
	var err error
	switch format {
	case "webp":
		// nativewebp writes lossless VP8L; lossless keeps the dots exact.
		err = nativewebp.Encode(w, img, nil)
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		err = enc.Encode(w, img)
	case "jpeg":
		q := opts.Quality
		if q <= 0 || q > 100 {
			q = 100
		}
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: q})
	case "gif":
		// Quantised to the Plan 9 palette.
		err = gif.Encode(w, img, nil)
	case "bmp":
		err = bmp.Encode(w, img)
	case "tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("encode: unsupported format %q", format)
	}
	if err != nil {
		return fmt.Errorf("encode: %s: %w", format, err)
	}
	return nil
}

// WriteFile encodes img to path through a temporary file in the same
// directory, renamed into place only after a successful encode.
func WriteFile(path string, img image.Image, format string, opts Options) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("encode: create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("encode: create temporary for %s: %w", path, err)
	}
	canRename := false
	defer func() {
		if defErr := tmp.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("encode: flush %s: %w", path, defErr)
		}
		if defErr := tmp.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("encode: close %s: %w", path, defErr)
		}
		if canRename && err == nil {
			if defErr := os.Rename(tmp.Name(), path); defErr != nil {
				err = fmt.Errorf("encode: rename %s: %w", path, defErr)
			}
		}
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if err = Encode(tmp, img, format, opts); err != nil {
		return err
	}
	canRename = true
	return nil
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
