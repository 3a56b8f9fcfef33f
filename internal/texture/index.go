package texture

import (
	"os"
	"path/filepath"
	"strings"
)

// extPriority ranks lossless formats above lossy ones when two files share a
// stem.
var extPriority = map[string]int{
	".png":  6,
	".tga":  5,
	".bmp":  4,
	".tif":  3,
	".tiff": 3,
	".webp": 2,
	".gif":  1,
	".jpg":  0,
	".jpeg": 0,
}

// Index maps lowercase file stems to paths of pattern images.
type Index struct {
	entries map[string]string // stem.lower() → full path
}

// BuildIndex scans dir and its subdirectories for supported image files. A
// missing directory yields an empty index.
func BuildIndex(dir string) *Index {
	idx := &Index{entries: make(map[string]string)}
	if dir == "" {
		return idx
	}

	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		prio, ok := extPriority[ext]
		if !ok {
			return nil
		}
		stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

		existing, exists := idx.entries[stem]
		if !exists || prio > extPriority[strings.ToLower(filepath.Ext(existing))] {
			idx.entries[stem] = path
		}
		return nil
	})

	return idx
}

// ResolvePath returns the filesystem path for a pattern name, or ("", false).
// Only bare names are looked up; anything with a directory component is left
// to the caller as a path.
func (idx *Index) ResolvePath(name string) (string, bool) {
	name = strings.ReplaceAll(name, "\\", "/")
	if strings.Contains(name, "/") {
		return "", false
	}
	stem := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))

	path, ok := idx.entries[stem]
	return path, ok
}

// Len returns the number of indexed images.
func (idx *Index) Len() int {
	return len(idx.entries)
}
