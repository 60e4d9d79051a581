package geometry

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Mode selects how multi-part shapes are reduced to one centroid.
type Mode int

const (
	// AreaWeighted averages ring centroids by signed area (holes subtract).
	AreaWeighted Mode = iota

	// ConcatenatedRing chains all boundary points into a single ring.
	ConcatenatedRing
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case AreaWeighted:
		return "area-weighted"
	case ConcatenatedRing:
		return "concatenated-ring"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// minRingPoints is the smallest vertex count that can enclose area.
const minRingPoints = 3

// Options configures Extract.
type Options struct {
	// Mode selects the multi-part reduction. Default AreaWeighted.
	Mode Mode
}

// Option configures Options.
type Option func(*Options)

// WithMode sets the multi-part reduction mode.
func WithMode(m Mode) Option {
	return func(o *Options) { o.Mode = m }
}

// WithConcatenatedRing is shorthand for WithMode(ConcatenatedRing).
func WithConcatenatedRing() Option {
	return WithMode(ConcatenatedRing)
}

// DefaultOptions returns Options{Mode: AreaWeighted}.
func DefaultOptions() Options {
	return Options{Mode: AreaWeighted}
}

// Centroid is the result of Extract.
type Centroid struct {
	// Projected is the centroid in the planar frame of the projection.
	Projected orb.Point

	// Location is the centroid mapped back to (longitude, latitude) degrees.
	Location orb.Point

	// Area is the absolute enclosed area in projected units².
	Area float64
}

// Extract computes the area-weighted centroid of g.
//
// Steps:
//  1. Collect rings of g (Polygon, MultiPolygon or a bare Ring).
//  2. Project every vertex with p.Forward.
//  3. Reduce the rings per opts (AreaWeighted or ConcatenatedRing).
//  4. Map the planar centroid back with p.Inverse.
//
// Errors:
//   - ErrEmptyGeometry       : nil geometry or no rings.
//   - ErrUnsupportedGeometry : g has no area (points, lines, ...).
//   - ErrDegeneratePolygon   : total enclosed area is zero.
//   - ErrProjection          : p failed on a vertex or on the centroid.
//
// Complexity: O(V) time and space where V is the number of vertices.
func Extract(g orb.Geometry, p Projection, opts ...Option) (Centroid, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if p == nil {
		p = Identity{}
	}

	polys, err := polygonsOf(g)
	if err != nil {
		return Centroid{}, err
	}

	projected, err := projectPolygons(polys, p)
	if err != nil {
		return Centroid{}, err
	}

	var c orb.Point
	var area float64
	switch o.Mode {
	case ConcatenatedRing:
		c, area, err = concatenatedCentroid(projected)
	default:
		c, area, err = weightedCentroid(projected)
	}
	if err != nil {
		return Centroid{}, err
	}

	lon, lat, err := p.Inverse(c[0], c[1])
	if err != nil {
		return Centroid{}, fmt.Errorf("inverse %v: %w: %v", c, ErrProjection, err)
	}

	return Centroid{Projected: c, Location: orb.Point{lon, lat}, Area: area}, nil
}

// polygonsOf normalizes the supported geometry types into a polygon list.
func polygonsOf(g orb.Geometry) ([]orb.Polygon, error) {
	if g == nil {
		return nil, ErrEmptyGeometry
	}
	var polys []orb.Polygon
	switch v := g.(type) {
	case orb.Ring:
		polys = []orb.Polygon{{v}}
	case orb.Polygon:
		polys = []orb.Polygon{v}
	case orb.MultiPolygon:
		polys = v
	default:
		return nil, fmt.Errorf("%T: %w", g, ErrUnsupportedGeometry)
	}
	for _, poly := range polys {
		if len(poly) > 0 {
			return polys, nil
		}
	}

	return nil, ErrEmptyGeometry
}

// projectPolygons returns a deep copy of polys in projected coordinates.
func projectPolygons(polys []orb.Polygon, p Projection) ([]orb.Polygon, error) {
	out := make([]orb.Polygon, len(polys))
	for i, poly := range polys {
		out[i] = make(orb.Polygon, len(poly))
		for j, ring := range poly {
			r := make(orb.Ring, len(ring))
			for k, pt := range ring {
				x, y, err := p.Forward(pt[0], pt[1])
				if err != nil {
					return nil, fmt.Errorf("forward %v: %w: %v", pt, ErrProjection, err)
				}
				r[k] = orb.Point{x, y}
			}
			out[i][j] = r
		}
	}

	return out, nil
}

// ringMoments returns the signed area A of the ring together with the raw
// first moments Sx = Σ(x_i+x_{i+1})·cross_i and Sy likewise, so that the
// ring centroid is (Sx/6A, Sy/6A). The ring wraps, so closed and open rings
// give the same result.
func ringMoments(ring []orb.Point) (a, sx, sy float64) {
	n := len(ring)
	var (
		i        int
		cur, nxt orb.Point
		cross    float64
	)
	for i = 0; i < n; i++ {
		cur = ring[i]
		nxt = ring[(i+1)%n]
		cross = cur[0]*nxt[1] - nxt[0]*cur[1]
		a += cross
		sx += (cur[0] + nxt[0]) * cross
		sy += (cur[1] + nxt[1]) * cross
	}

	return a * 0.5, sx, sy
}

// weightedCentroid averages the ring centroids of every polygon part by area.
// The first ring of each polygon is the outer boundary; the others are holes.
// Ring orientation is ignored: outer rings add |A|, holes subtract |A|.
func weightedCentroid(polys []orb.Polygon) (orb.Point, float64, error) {
	var total, mx, my float64
	for _, poly := range polys {
		for j, ring := range poly {
			if len(ring) < minRingPoints {
				continue
			}
			a, sx, sy := ringMoments(ring)
			if a == 0 {
				continue
			}
			// Centroid of this ring, then weight by its unsigned area.
			cx, cy := sx/(6*a), sy/(6*a)
			w := math.Abs(a)
			if j > 0 {
				w = -w
			}
			total += w
			mx += w * cx
			my += w * cy
		}
	}
	if total == 0 || math.IsNaN(total) {
		return orb.Point{}, 0, ErrDegeneratePolygon
	}
	c := orb.Point{mx / total, my / total}
	if math.IsNaN(c[0]) || math.IsNaN(c[1]) || math.IsInf(c[0], 0) || math.IsInf(c[1], 0) {
		return orb.Point{}, 0, ErrDegeneratePolygon
	}

	return c, math.Abs(total), nil
}

// concatenatedCentroid chains the points of every ring of every part into a
// single ring and applies the shoelace formula once.
func concatenatedCentroid(polys []orb.Polygon) (orb.Point, float64, error) {
	var pts []orb.Point
	for _, poly := range polys {
		for _, ring := range poly {
			pts = append(pts, ring...)
		}
	}
	if len(pts) < minRingPoints {
		return orb.Point{}, 0, ErrDegeneratePolygon
	}
	a, sx, sy := ringMoments(pts)
	if a == 0 || math.IsNaN(a) {
		return orb.Point{}, 0, ErrDegeneratePolygon
	}

	return orb.Point{sx / (6 * a), sy / (6 * a)}, math.Abs(a), nil
}
