package tsp

// nearestNeighborTour walks from start to the closest unvisited vertex until
// all are visited, then closes the cycle. Ties go to the smallest index.
//
// Complexity: O(n²) time, O(n) space.
func nearestNeighborTour(w []float64, n, start int) []int {
	visited := make([]bool, n)
	tour := make([]int, 0, n+1)

	cur := start
	visited[cur] = true
	tour = append(tour, cur)

	var (
		step, v, best int
		bestD, d      float64
	)
	for step = 1; step < n; step++ {
		best, bestD = -1, 0
		for v = 0; v < n; v++ {
			if visited[v] {
				continue
			}
			d = w[cur*n+v]
			if best < 0 || d < bestD {
				best, bestD = v, d
			}
		}
		visited[best] = true
		tour = append(tour, best)
		cur = best
	}

	return append(tour, start)
}

// multiStartNearestNeighbor runs nearestNeighborTour from start and from the
// restart vertices, rotates each result to start, and keeps the cheapest.
// The first tour wins ties, so restarts=0 is plain nearest neighbour.
func multiStartNearestNeighbor(w []float64, n, start, restarts int, seed int64) ([]int, error) {
	best := nearestNeighborTour(w, n, start)
	bestCost := tourCostFlat(w, n, best)

	for _, s := range restartStarts(n, restarts, start, seed) {
		cand, err := RotateTourToStart(nearestNeighborTour(w, n, s), start)
		if err != nil {
			return nil, err
		}
		if c := tourCostFlat(w, n, cand); c < bestCost {
			best, bestCost = cand, c
		}
	}

	return best, nil
}
