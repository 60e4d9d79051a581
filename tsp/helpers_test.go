package tsp_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/railnet/matrix"
	"github.com/stretchr/testify/require"
)

// euclid builds the Euclidean distance matrix of pts.
func euclid(t testing.TB, pts [][2]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewSquare(len(pts))
	require.NoError(t, err)
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			d := math.Hypot(pts[i][0]-pts[j][0], pts[i][1]-pts[j][1])
			require.NoError(t, m.SetSym(i, j, d))
		}
	}

	return m
}

// circle places n points on the unit circle, listed in a shuffled order so
// that the identity tour is far from optimal. perm[i] is the angular slot of
// point i.
func circle(n int, seed int64) (pts [][2]float64, perm []int) {
	perm = rand.New(rand.NewSource(seed)).Perm(n)
	pts = make([][2]float64, n)
	for i, slot := range perm {
		a := 2 * math.Pi * float64(slot) / float64(n)
		pts[i] = [2]float64{math.Cos(a), math.Sin(a)}
	}

	return pts, perm
}

// randomPoints returns n uniform points in the unit square.
func randomPoints(n int, seed int64) [][2]float64 {
	r := rand.New(rand.NewSource(seed))
	pts := make([][2]float64, n)
	for i := range pts {
		pts[i] = [2]float64{r.Float64(), r.Float64()}
	}

	return pts
}
