package tsp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/railnet/matrix"
)

// roundScale controls final cost stabilization precision (1e-9).
const roundScale = 1e9

// TourCost sums dist along the cycle edges tour[i]→tour[i+1].
//
// Errors:
//   - ErrNonSquare for a nil or non-square dist.
//   - ErrDimensionMismatch for a short tour or an index out of range.
//   - ErrIncompleteGraph for NaN/Inf edges, ErrNegativeWeight for negative ones.
//
// Complexity: O(n).
func TourCost(dist matrix.Matrix, tour []int) (float64, error) {
	if err := matrix.ValidateSquare(dist); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNonSquare, err)
	}
	if len(tour) < 2 {
		return 0, ErrDimensionMismatch
	}
	n := dist.Rows()

	var sum float64
	for i := 0; i+1 < len(tour); i++ {
		u, v := tour[i], tour[i+1]
		if u < 0 || u >= n || v < 0 || v >= n {
			return 0, fmt.Errorf("edge %d→%d: %w", u, v, ErrDimensionMismatch)
		}
		w, err := dist.At(u, v)
		if err != nil {
			return 0, fmt.Errorf("edge %d→%d: %w", u, v, ErrDimensionMismatch)
		}
		switch {
		case math.IsNaN(w) || math.IsInf(w, 0):
			return 0, fmt.Errorf("edge %d→%d: %w", u, v, ErrIncompleteGraph)
		case w < 0:
			return 0, fmt.Errorf("edge %d→%d: %w", u, v, ErrNegativeWeight)
		}
		sum += w
	}

	return round1e9(sum), nil
}

// tourCostFlat is TourCost over a prefetched, already validated buffer.
func tourCostFlat(w []float64, n int, tour []int) float64 {
	var sum float64
	for i := 0; i+1 < len(tour); i++ {
		sum += w[tour[i]*n+tour[i+1]]
	}

	return sum
}

// round1e9 returns x rounded to 1e-9 absolute precision.
func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}
