package scenelist

import "sirds-renderer/internal/depth"

// Scene holds one stereogram job parsed from a scene list.
type Scene struct {
	Name     string
	Width    int    // 0 = config default
	Height   int    // 0 = config default
	Depth    string // depth image path, "" = flat
	MaxDepth int    // 0 = config default
	Pattern  string // pattern image name or path, "" = noise
	Output   string // output file, "" = <Name>.<format>
	Seed     int64
	Strokes  []depth.Stroke
}
