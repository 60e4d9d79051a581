package geodist

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// minSegments is the smallest sample count: the two endpoints.
const minSegments = 2

// Intermediate returns n points evenly spaced along the great circle from a to
// b, endpoints included. n < 2 is treated as 2.
//
// Each sample steps Distance(a, b)/(n-1) from a along the initial bearing.
// Coincident points yield n copies of a. For (nearly) antipodal points the
// great circle is not unique and the samples fall back to linear interpolation
// in longitude/latitude.
func Intermediate(a, b orb.Point, n int) []orb.Point {
	if n < minSegments {
		n = minSegments
	}
	out := make([]orb.Point, n)
	if a == b {
		for i := range out {
			out[i] = a
		}
		return out
	}

	var (
		delta      = Distance(a, b) / EarthRadiusKm // central angle
		bearing    = geo.Bearing(a, b)
		last       = float64(n - 1)
		degenerate = math.Sin(delta) < 1e-12
	)
	for i := range out {
		f := float64(i) / last
		if degenerate {
			out[i] = orb.Point{a[0] + f*(b[0]-a[0]), a[1] + f*(b[1]-a[1])}
			continue
		}
		// orb/geo measures in metres on its own sphere; scale the angle to it.
		p := geo.PointAtBearingAndDistance(a, bearing, f*delta*orb.EarthRadius)
		p[0] = wrapLon(p[0])
		out[i] = p
	}
	// Pin the endpoints against rounding.
	out[0], out[n-1] = a, b

	return out
}

// Arc is Intermediate as an orb.LineString.
func Arc(a, b orb.Point, n int) orb.LineString {
	return orb.LineString(Intermediate(a, b, n))
}

// wrapLon maps a longitude into [-180, 180).
func wrapLon(lon float64) float64 {
	if lon >= -180 && lon < 180 {
		return lon
	}
	return math.Mod(math.Mod(lon+180, 360)+360, 360) - 180
}
