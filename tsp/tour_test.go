package tsp_test

import (
	"context"
	"math"
	"testing"

	"github.com/katalvlaran/railnet/tsp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTour(t *testing.T) {
	assert.NoError(t, tsp.ValidateTour([]int{2, 0, 1, 3, 2}, 4, 2))

	bad := map[string][]int{
		"short":      {0, 1, 2, 0},
		"not closed": {0, 1, 2, 3, 1},
		"duplicate":  {0, 1, 1, 3, 0},
		"range":      {0, 1, 2, 7, 0},
	}
	for name, tour := range bad {
		assert.ErrorIs(t, tsp.ValidateTour(tour, 4, 0), tsp.ErrDimensionMismatch, name)
	}
	assert.ErrorIs(t, tsp.ValidateTour([]int{0, 1, 2, 3, 0}, 4, 4), tsp.ErrStartOutOfRange)
}

func TestRotateTourToStart(t *testing.T) {
	got, err := tsp.RotateTourToStart([]int{0, 1, 2, 3, 0}, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 0, 1, 2}, got)

	got, err = tsp.RotateTourToStart([]int{3, 1, 0, 2}, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 3, 1, 0}, got)

	_, err = tsp.RotateTourToStart([]int{0, 1, 2, 0}, 5)
	assert.ErrorIs(t, err, tsp.ErrStartOutOfRange)
}

func TestCanonicalizeOrientation(t *testing.T) {
	a := []int{0, 3, 2, 1, 0}
	require.NoError(t, tsp.CanonicalizeOrientationInPlace(a))
	assert.Equal(t, []int{0, 1, 2, 3, 0}, a)

	b := []int{0, 1, 2, 3, 0}
	require.NoError(t, tsp.CanonicalizeOrientationInPlace(b))
	assert.Equal(t, []int{0, 1, 2, 3, 0}, b)

	assert.ErrorIs(t, tsp.CanonicalizeOrientationInPlace([]int{0, 1}), tsp.ErrDimensionMismatch)
}

func TestEqualToursModuloRotation(t *testing.T) {
	assert.True(t, tsp.EqualToursModuloRotation([]int{0, 1, 2, 0}, []int{1, 2, 0, 1}))
	assert.False(t, tsp.EqualToursModuloRotation([]int{0, 1, 2, 3, 0}, []int{0, 3, 2, 1, 0}))
	assert.False(t, tsp.EqualToursModuloRotation([]int{0, 1, 0}, []int{0, 1, 2, 0}))
}

func TestShortcutEulerianToHamiltonian(t *testing.T) {
	tour, err := tsp.ShortcutEulerianToHamiltonian([]int{1, 0, 2, 0, 3, 1}, 4, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 3, 1, 0}, tour)

	_, err = tsp.ShortcutEulerianToHamiltonian([]int{0, 1, 0}, 3, 0)
	assert.ErrorIs(t, err, tsp.ErrDimensionMismatch)
	_, err = tsp.ShortcutEulerianToHamiltonian([]int{0, 9}, 3, 0)
	assert.ErrorIs(t, err, tsp.ErrDimensionMismatch)
}

func TestDebugString(t *testing.T) {
	assert.Equal(t, "[0 3 1 2 | 0]", tsp.DebugString([]int{0, 3, 1, 2, 0}))
	assert.Equal(t, "[]", tsp.DebugString(nil))
}

func TestTourCost(t *testing.T) {
	m := euclid(t, [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}})

	c, err := tsp.TourCost(m, []int{0, 1, 2, 3, 0})
	require.NoError(t, err)
	assert.Equal(t, 4.0, c)

	c, err = tsp.TourCost(m, []int{0, 2, 1, 3, 0})
	require.NoError(t, err)
	assert.InDelta(t, 2+2*math.Sqrt2, c, 1e-9)

	_, err = tsp.TourCost(m, []int{0, 4})
	assert.ErrorIs(t, err, tsp.ErrDimensionMismatch)
	_, err = tsp.TourCost(nil, []int{0, 1})
	assert.ErrorIs(t, err, tsp.ErrNonSquare)
}

// TestTwoOpt_UncrossesSquare applies 2-opt to the crossing tour of a square.
func TestTwoOpt_UncrossesSquare(t *testing.T) {
	m := euclid(t, [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
	in := []int{0, 2, 1, 3, 0}

	out, cost, err := tsp.TwoOpt(context.Background(), m, in, tsp.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 0}, out)
	assert.Equal(t, 4.0, cost)
	assert.Equal(t, []int{0, 2, 1, 3, 0}, in, "input must not be modified")

	_, _, err = tsp.TwoOpt(context.Background(), m, []int{0, 1, 0}, tsp.DefaultOptions())
	assert.ErrorIs(t, err, tsp.ErrDimensionMismatch)
}
