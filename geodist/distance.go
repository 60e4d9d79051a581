package geodist

import (
	"fmt"
	"math"

	"github.com/katalvlaran/railnet/matrix"
	"github.com/paulmach/orb"
)

// EarthRadiusKm is the mean Earth radius used for every distance, in km.
const EarthRadiusKm = 6371.0

const deg2rad = math.Pi / 180

// Distance returns the great-circle distance in km between a and b,
// both given as (longitude, latitude) in degrees.
//
// The result is never NaN: a NaN from non-finite input is reported as 0.
func Distance(a, b orb.Point) float64 {
	phiA, phiB := a[1]*deg2rad, b[1]*deg2rad
	dLambda := (a[0] - b[0]) * deg2rad

	cosC := math.Sin(phiA)*math.Sin(phiB) + math.Cos(phiA)*math.Cos(phiB)*math.Cos(dLambda)
	if cosC > 1 {
		cosC = 1
	} else if cosC < -1 {
		cosC = -1
	}

	d := EarthRadiusKm * math.Acos(cosC)
	if math.IsNaN(d) {
		return 0
	}

	return d
}

// Matrix returns the n×n great-circle distance matrix for points, in km.
//
// Contract:
//   - D[i][j] == D[j][i] bit for bit (each pair is computed once).
//   - D[i][i] == 0 exactly.
//   - No NaN entries.
//
// Errors:
//   - matrix.ErrBadShape if points is empty.
//
// Complexity: O(n²) time and space.
func Matrix(points []orb.Point) (*matrix.Dense, error) {
	n := len(points)
	d, err := matrix.NewSquare(n)
	if err != nil {
		return nil, fmt.Errorf("geodist: %d points: %w", n, err)
	}

	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if err = d.SetSym(i, j, Distance(points[i], points[j])); err != nil {
				return nil, err
			}
		}
	}

	return d, nil
}
