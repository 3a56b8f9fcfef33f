package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Manifest describes one batch run.
type Manifest struct {
	RunID   string          `json:"run_id"`
	Created time.Time       `json:"created"`
	Scenes  []ManifestEntry `json:"scenes"`
}

// ManifestEntry represents one scene in the output manifest.
type ManifestEntry struct {
	Name      string  `json:"name"`
	Image     string  `json:"image,omitempty"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Mode      string  `json:"mode,omitempty"`
	Success   bool    `json:"success"`
	Error     string  `json:"error,omitempty"`
	ElapsedMS float64 `json:"elapsed_ms"`
}

// NewManifest builds a manifest for results under a fresh run id. Image
// paths are made relative to outputDir where possible.
func NewManifest(outputDir string, results []Result) Manifest {
	m := Manifest{
		RunID:   uuid.NewString(),
		Created: time.Now().UTC(),
		Scenes:  make([]ManifestEntry, len(results)),
	}
	for i, r := range results {
		img := r.Output
		if rel, err := filepath.Rel(outputDir, r.Output); err == nil && r.Output != "" {
			img = filepath.ToSlash(rel)
		}
		m.Scenes[i] = ManifestEntry{
			Name:      r.Name,
			Image:     img,
			Width:     r.Width,
			Height:    r.Height,
			Mode:      r.Mode,
			Success:   r.Success,
			Error:     r.Error,
			ElapsedMS: float64(r.Elapsed.Microseconds()) / 1000,
		}
	}
	return m
}

// WriteManifest writes manifest.json to path.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
