package geometry

import (
	"fmt"

	"github.com/ctessum/geom/proj"
)

// Projection maps geographic coordinates to a planar frame and back.
// Longitude and latitude are in degrees; planar units are projection-defined.
type Projection interface {
	Forward(lon, lat float64) (x, y float64, err error)
	Inverse(x, y float64) (lon, lat float64, err error)
}

// Identity is the no-op projection: coordinates are already planar.
type Identity struct{}

// Forward returns (lon, lat) unchanged.
func (Identity) Forward(lon, lat float64) (float64, float64, error) { return lon, lat, nil }

// Inverse returns (x, y) unchanged.
func (Identity) Inverse(x, y float64) (float64, float64, error) { return x, y, nil }

// WGS84 is the geographic source frame of every Proj4 projection.
const WGS84 = "+proj=longlat +datum=WGS84 +no_defs"

// AlbersUSA is the Albers equal-area conic frame centred on the contiguous
// United States (lon_0 = -96, lat_0 = 37.5), in metres.
const AlbersUSA = "+proj=aea +lat_1=29.5 +lat_2=45.5 +lat_0=37.5 +lon_0=-96 +x_0=0 +y_0=0 +ellps=WGS84 +units=m +no_defs"

// Proj4 is a Projection defined by a proj4 string.
type Proj4 struct {
	def string
	fwd proj.Transformer
	inv proj.Transformer
}

var _ Projection = (*Proj4)(nil)

// NewProj4 builds forward and inverse transforms between WGS84 and def.
func NewProj4(def string) (*Proj4, error) {
	src, err := proj.Parse(WGS84)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w: %v", WGS84, ErrProjection, err)
	}
	dst, err := proj.Parse(def)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w: %v", def, ErrProjection, err)
	}
	fwd, err := src.NewTransform(dst)
	if err != nil {
		return nil, fmt.Errorf("forward transform: %w: %v", ErrProjection, err)
	}
	inv, err := dst.NewTransform(src)
	if err != nil {
		return nil, fmt.Errorf("inverse transform: %w: %v", ErrProjection, err)
	}

	return &Proj4{def: def, fwd: fwd, inv: inv}, nil
}

// Definition returns the proj4 string the projection was built from.
func (p *Proj4) Definition() string { return p.def }

// Forward projects (lon, lat) degrees into the planar frame.
func (p *Proj4) Forward(lon, lat float64) (float64, float64, error) {
	return p.fwd(lon, lat)
}

// Inverse maps planar (x, y) back to (lon, lat) degrees.
func (p *Proj4) Inverse(x, y float64) (float64, float64, error) {
	return p.inv(x, y)
}
