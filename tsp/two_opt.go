// Package tsp - 2-opt local search.
//
// twoOpt performs deterministic first-improvement 2-opt on a closed tour of a
// symmetric instance: for cut indices 1 ≤ i < k ≤ n−1 with a=T[i−1], b=T[i],
// c=T[k], d=T[k+1] it evaluates
//
//	Δ = w(a,c) + w(b,d) − w(a,b) − w(c,d)
//
// and, when Δ < −eps, reverses the segment [i..k] and restarts the scan.
//
// Budget: the context is polled every 2048 candidate evaluations. When it is
// done the current tour is returned as is; since only improving moves are
// ever applied, that tour is the best seen.
//
// Complexity: O(n²) per scan, O(k−i) per accepted move.
package tsp

import (
	"context"

	"github.com/katalvlaran/railnet/matrix"
)

// deadlineStride is the number of candidate evaluations between context polls.
const deadlineStride = 2048

// twoOptResult is the outcome of one local-search run.
type twoOptResult struct {
	tour      []int
	delta     float64
	moves     int
	truncated bool
}

// twoOpt improves a copy of tour in place. maxMoves ≤ 0 means unlimited.
func twoOpt(ctx context.Context, w []float64, n int, tour []int, eps float64, maxMoves int) twoOptResult {
	cur := make([]int, len(tour))
	copy(cur, tour)
	res := twoOptResult{tour: cur}
	if n < 4 {
		// Every tour on three vertices has the same length.
		return res
	}

	var (
		a, b, c, d int
		i, k       int
		delta      float64
		step       int
		improved   = true
	)
	for improved {
		improved = false
	scan:
		for i = 1; i <= n-2; i++ {
			for k = i + 1; k <= n-1; k++ {
				step++
				if step%deadlineStride == 0 && ctx.Err() != nil {
					res.truncated = true
					return res
				}

				a, b, c, d = cur[i-1], cur[i], cur[k], cur[k+1]
				delta = (w[a*n+c] + w[b*n+d]) - (w[a*n+b] + w[c*n+d])
				if !(delta < -eps) {
					continue
				}

				// Segment reversal; indices are in range by construction.
				_ = reverseArcInPlace(cur, i, k)
				res.delta += delta
				res.moves++
				improved = true
				if maxMoves > 0 && res.moves >= maxMoves {
					return res
				}

				break scan
			}
		}
	}

	return res
}

// TwoOpt improves a closed tour over dist with first-improvement 2-opt.
// The returned tour starts at tour[0], is canonically oriented, and its cost
// is never above the input cost. A done ctx stops the search early without
// error.
func TwoOpt(ctx context.Context, dist matrix.Matrix, tour []int, opts Options) ([]int, float64, error) {
	n, w, err := prefetchDist(dist)
	if err != nil {
		return nil, 0, err
	}
	if len(tour) == 0 {
		return nil, 0, ErrDimensionMismatch
	}
	if err = ValidateTour(tour, n, tour[0]); err != nil {
		return nil, 0, err
	}
	r := twoOpt(ctx, w, n, tour, opts.Eps, opts.TwoOptMaxIters)
	_ = CanonicalizeOrientationInPlace(r.tour)

	return r.tour, round1e9(tourCostFlat(w, n, r.tour)), nil
}
