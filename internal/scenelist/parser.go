package scenelist

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"sirds-renderer/internal/depth"
)

// xmlSceneList matches the scene list schema.
type xmlSceneList struct {
	Scenes []xmlScene `xml:"Scene"`
}

type xmlScene struct {
	Name     string      `xml:"Name,attr"`
	Width    string      `xml:"Width,attr"`
	Height   string      `xml:"Height,attr"`
	Depth    string      `xml:"Depth,attr"`
	MaxDepth string      `xml:"MaxDepth,attr"`
	Pattern  string      `xml:"Pattern,attr"`
	Output   string      `xml:"Output,attr"`
	Seed     string      `xml:"Seed,attr"`
	Strokes  []xmlStroke `xml:"Stroke"`
}

type xmlStroke struct {
	X      string `xml:"X,attr"`
	Y      string `xml:"Y,attr"`
	Radius string `xml:"Radius,attr"`
	Shape  string `xml:"Shape,attr"`
	Value  string `xml:"Value,attr"`
}

// Parse reads a scene list file. Scenes with malformed attributes are
// skipped with a warning; the file itself failing to parse is an error.
func Parse(path string) ([]Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenelist: read %s: %w", path, err)
	}

	var list xmlSceneList
	if err := xml.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("scenelist: parse %s: %w", path, err)
	}

	var scenes []Scene
	for i, xs := range list.Scenes {
		sc, err := convert(xs)
		if err != nil {
			slog.Warn("skipping scene", "file", path, "scene", i, "name", xs.Name, "error", err)
			continue
		}
		if sc.Name == "" {
			sc.Name = fmt.Sprintf("scene%03d", i)
		}
		scenes = append(scenes, sc)
	}

	return scenes, nil
}

func convert(xs xmlScene) (Scene, error) {
	sc := Scene{
		Name:    xs.Name,
		Depth:   xs.Depth,
		Pattern: xs.Pattern,
		Output:  xs.Output,
	}

	var err error
	if sc.Width, err = optInt(xs.Width, "Width"); err != nil {
		return Scene{}, err
	}
	if sc.Height, err = optInt(xs.Height, "Height"); err != nil {
		return Scene{}, err
	}
	if sc.MaxDepth, err = optInt(xs.MaxDepth, "MaxDepth"); err != nil {
		return Scene{}, err
	}
	if sc.Width < 0 || sc.Height < 0 {
		return Scene{}, fmt.Errorf("negative size %dx%d", sc.Width, sc.Height)
	}
	if xs.Seed != "" {
		if sc.Seed, err = strconv.ParseInt(xs.Seed, 10, 64); err != nil {
			return Scene{}, fmt.Errorf("Seed: %w", err)
		}
	}

	for j, xst := range xs.Strokes {
		st, err := convertStroke(xst)
		if err != nil {
			return Scene{}, fmt.Errorf("stroke %d: %w", j, err)
		}
		sc.Strokes = append(sc.Strokes, st)
	}
	return sc, nil
}

func convertStroke(xs xmlStroke) (depth.Stroke, error) {
	var st depth.Stroke
	var err error
	if st.X, err = strconv.Atoi(xs.X); err != nil {
		return st, fmt.Errorf("X: %w", err)
	}
	if st.Y, err = strconv.Atoi(xs.Y); err != nil {
		return st, fmt.Errorf("Y: %w", err)
	}
	if st.Radius, err = optInt(xs.Radius, "Radius"); err != nil {
		return st, err
	}
	if st.Radius < 0 {
		return st, fmt.Errorf("negative radius %d", st.Radius)
	}
	if st.Value, err = strconv.Atoi(xs.Value); err != nil {
		return st, fmt.Errorf("Value: %w", err)
	}
	if st.Shape, err = depth.ParseShape(xs.Shape); err != nil {
		return st, err
	}
	return st, nil
}

func optInt(s, field string) (int, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return v, nil
}
