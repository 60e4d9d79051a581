// Package tsp - dispatcher.
//
// Solve is the single entry point: validate, construct, improve, verify.
package tsp

import (
	"context"

	"github.com/katalvlaran/railnet/matrix"
)

// Solve returns an approximate minimum-length closed tour over dist.
//
// Stages:
//  1. Validate Options and the distance matrix (see prefetchDist).
//  2. Construct a tour with opts.Algo from opts.StartVertex.
//  3. If opts.EnableLocalSearch, run 2-opt under opts.TimeLimit and ctx.
//  4. Canonicalize the orientation and check ValidateTour.
//
// The construction always completes. The local search stops at a local
// optimum, after TwoOptMaxIters moves, or when the budget runs out; in the
// last case the best tour so far is returned with Truncated set, never an
// error.
//
// Errors: ErrInvalidOptions, ErrUnsupportedAlgorithm, ErrNonSquare,
// ErrInsufficientNodes (n < 3), ErrIncompleteGraph, ErrNegativeWeight,
// ErrAsymmetry, ErrStartOutOfRange.
//
// Complexity: O(n² log n) construction plus O(iter·n²) local search.
func Solve(ctx context.Context, dist matrix.Matrix, opts Options) (TSResult, error) {
	// Stage 1 - validation.
	if err := validateOptions(opts); err != nil {
		return TSResult{}, err
	}
	n, w, err := prefetchDist(dist)
	if err != nil {
		return TSResult{}, err
	}
	if err = validateStartVertex(n, opts.StartVertex); err != nil {
		return TSResult{}, err
	}

	// Stage 2 - construction.
	var tour []int
	switch opts.Algo {
	case NearestNeighbor:
		tour, err = multiStartNearestNeighbor(w, n, opts.StartVertex, opts.Restarts, opts.Seed)
	default:
		tour, err = christofidesTour(dist, w, n, opts.StartVertex)
	}
	if err != nil {
		return TSResult{}, err
	}
	res := TSResult{Tour: tour, InitialCost: round1e9(tourCostFlat(w, n, tour))}

	// Stage 3 - local search under the budget.
	if opts.EnableLocalSearch {
		if ctx == nil {
			ctx = context.Background()
		}
		if opts.TimeLimit > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, opts.TimeLimit)
			defer cancel()
		}
		r := twoOpt(ctx, w, n, tour, opts.Eps, opts.TwoOptMaxIters)
		res.Tour, res.Moves, res.Truncated = r.tour, r.moves, r.truncated
	}

	// Stage 4 - canonical orientation and invariants.
	_ = CanonicalizeOrientationInPlace(res.Tour)
	if err = ValidateTour(res.Tour, n, opts.StartVertex); err != nil {
		return TSResult{}, err
	}
	res.Cost = round1e9(tourCostFlat(w, n, res.Tour))

	return res, nil
}
