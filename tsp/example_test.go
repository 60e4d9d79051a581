package tsp_test

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/railnet/matrix"
	"github.com/katalvlaran/railnet/tsp"
)

// ExampleSolve builds the loop through the six corners of a regular hexagon
// with unit sides: Christofides + 2-opt recovers the perimeter.
func ExampleSolve() {
	const n = 6
	dist, _ := matrix.NewSquare(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			ai := 2 * math.Pi * float64(i) / n
			aj := 2 * math.Pi * float64(j) / n
			_ = dist.SetSym(i, j, math.Hypot(math.Cos(ai)-math.Cos(aj), math.Sin(ai)-math.Sin(aj)))
		}
	}

	res, err := tsp.Solve(context.Background(), dist, tsp.DefaultOptions())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(tsp.DebugString(res.Tour))
	fmt.Printf("cost: %.3f\n", res.Cost)
	// Output:
	// [0 1 2 3 4 5 | 0]
	// cost: 6.000
}

func ExampleSolve_insufficientNodes() {
	dist, _ := matrix.NewSquare(2)
	_, err := tsp.Solve(context.Background(), dist, tsp.DefaultOptions())
	fmt.Println(err)
	// Output: 2 nodes: tsp: a tour needs at least 3 nodes
}
