package tsp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/railnet/matrix"
)

// symTol is a structural tolerance for symmetry/diagonal checks.
// It is independent from Options.Eps (which governs "improvement" in local search).
const symTol = 1e-9

// validateOptions checks internal consistency of Options without
// referencing matrices or tours.
//
// Complexity: O(1).
func validateOptions(opts Options) error {
	if opts.TimeLimit < 0 || opts.Eps < 0 || math.IsNaN(opts.Eps) ||
		opts.TwoOptMaxIters < 0 || opts.Restarts < 0 {
		return ErrInvalidOptions
	}
	switch opts.Algo {
	case Christofides, NearestNeighbor:
		return nil
	default:
		return fmt.Errorf("%v: %w", opts.Algo, ErrUnsupportedAlgorithm)
	}
}

// prefetchDist validates dist and returns its order n and its row-major
// buffer w[i*n+j].
//
// Checks, in order:
//   - non-nil and square            (ErrNonSquare),
//   - n ≥ MinNodes                  (ErrInsufficientNodes),
//   - every entry finite            (ErrIncompleteGraph),
//   - every entry non-negative      (ErrNegativeWeight),
//   - zero diagonal and symmetric   (ErrAsymmetry).
//
// Complexity: O(n²) time and space.
func prefetchDist(dist matrix.Matrix) (int, []float64, error) {
	if err := matrix.ValidateSquare(dist); err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrNonSquare, err)
	}
	n := dist.Rows()
	if n < MinNodes {
		return 0, nil, fmt.Errorf("%d nodes: %w", n, ErrInsufficientNodes)
	}
	w, err := matrix.Flatten(dist)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrNonSquare, err)
	}

	var (
		i, j int
		x    float64
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			x = w[i*n+j]
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return 0, nil, fmt.Errorf("dist[%d][%d]=%v: %w", i, j, x, ErrIncompleteGraph)
			}
			if x < 0 {
				return 0, nil, fmt.Errorf("dist[%d][%d]=%v: %w", i, j, x, ErrNegativeWeight)
			}
		}
		if w[i*n+i] > symTol {
			return 0, nil, fmt.Errorf("dist[%d][%d]=%v: %w", i, i, w[i*n+i], ErrAsymmetry)
		}
		for j = i + 1; j < n; j++ {
			if math.Abs(w[i*n+j]-w[j*n+i]) > symTol {
				return 0, nil, fmt.Errorf("dist[%d][%d] vs dist[%d][%d]: %w", i, j, j, i, ErrAsymmetry)
			}
		}
	}

	return n, w, nil
}

// validateStartVertex ensures 0 ≤ start < n.
func validateStartVertex(n, start int) error {
	if start < 0 || start >= n {
		return fmt.Errorf("start %d of %d: %w", start, n, ErrStartOutOfRange)
	}

	return nil
}
