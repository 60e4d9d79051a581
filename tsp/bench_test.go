package tsp_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/railnet/tsp"
)

// BenchmarkSolve_Christofides measures construction + 2-opt on 200 random points.
func BenchmarkSolve_Christofides(b *testing.B) {
	m := euclid(b, randomPoints(200, 1))
	opts := tsp.DefaultOptions()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = tsp.Solve(context.Background(), m, opts)
	}
}

// BenchmarkSolve_NearestNeighbor measures the cheaper construction on the same input.
func BenchmarkSolve_NearestNeighbor(b *testing.B) {
	m := euclid(b, randomPoints(200, 1))
	opts := tsp.DefaultOptions()
	opts.Algo = tsp.NearestNeighbor
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = tsp.Solve(context.Background(), m, opts)
	}
}
