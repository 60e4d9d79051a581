package geometry

import "github.com/paulmach/orb"

// Window is an axis-aligned rectangle in the projected frame.
// Bounds are exclusive, so a centroid exactly on the edge is dropped.
type Window struct {
	XMin float64 `yaml:"xmin" json:"xmin"`
	XMax float64 `yaml:"xmax" json:"xmax"`
	YMin float64 `yaml:"ymin" json:"ymin"`
	YMax float64 `yaml:"ymax" json:"ymax"`
}

// DefaultWindow is a 5000 km × 4000 km map centred on the AlbersUSA origin.
var DefaultWindow = Window{XMin: -2.5e6, XMax: 2.5e6, YMin: -2.0e6, YMax: 2.0e6}

// Contains reports whether p lies strictly inside w.
func (w Window) Contains(p orb.Point) bool {
	return p[0] > w.XMin && p[0] < w.XMax && p[1] > w.YMin && p[1] < w.YMax
}

// Bound returns w as an orb.Bound.
func (w Window) Bound() orb.Bound {
	return orb.Bound{Min: orb.Point{w.XMin, w.YMin}, Max: orb.Point{w.XMax, w.YMax}}
}

// Visibility decides whether a unit with the given centroid becomes a node.
type Visibility func(c Centroid) bool

// InWindow returns a Visibility keeping centroids projected inside w.
func InWindow(w Window) Visibility {
	return func(c Centroid) bool { return w.Contains(c.Projected) }
}

// AllVisible keeps every centroid.
func AllVisible(Centroid) bool { return true }
