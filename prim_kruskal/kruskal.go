package prim_kruskal

import (
	"math"
	"sort"

	"github.com/katalvlaran/railnet/matrix"
)

// Kruskal computes the Minimum Spanning Tree (MST) of the complete undirected
// graph whose edge weights are the upper triangle of cost.
// It uses a disjoint-set (union-find) data structure with path compression and union by rank.
//
// Negative weights are allowed, so a maximum spanning tree is obtained by
// passing a negated matrix. +Inf entries are treated as missing edges.
//
// Error Conditions:
//   - ErrInvalidCost   : cost is nil, not square, asymmetric, or holds NaN/-Inf.
//   - ErrEmpty         : cost is 0×0.
//   - ErrDisconnected  : +Inf entries leave the graph disconnected.
//
// Steps:
//  1. Validate and prefetch cost into a flat row-major buffer.
//     If n == 1 → trivial MST (empty, weight=0).
//  2. Collect every pair i<j with a finite weight.
//  3. Sort edges by (Weight, U, V); the full key makes ties deterministic.
//  4. Initialize DSU slices parent[] and rank[].
//  5. Loop over sorted edges: if find(u) != find(v), union and include the edge.
//  6. Once MST has n-1 edges, break. Fewer than n-1 → ErrDisconnected.
//
// Complexity: O(n² log n) time for the n(n-1)/2 candidate edges. Memory: O(n²).
func Kruskal(cost matrix.Matrix) ([]Edge, float64, error) {
	// 1. Validate and prefetch.
	w, n, err := prefetch(cost)
	if err != nil {
		return nil, 0, err
	}
	if n == 1 {
		return []Edge{}, 0, nil
	}

	// 2. Collect candidate edges from the strict upper triangle.
	edges := make([]Edge, 0, n*(n-1)/2)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if math.IsInf(w[i*n+j], 1) {
				continue
			}
			edges = append(edges, Edge{U: i, V: j, Weight: w[i*n+j]})
		}
	}

	// 3. Sort by the total order (Weight, U, V).
	sort.Slice(edges, func(a, b int) bool {
		return edges[a].less(edges[b])
	})

	// 4. Initialize disjoint-set (union-find) structures.
	parent := make([]int, n)
	rank := make([]int, n)
	for v := range parent {
		parent[v] = v
	}

	// Iterative find with path compression to avoid deep recursion.
	find := func(u int) int {
		for parent[u] != u {
			parent[u] = parent[parent[u]]
			u = parent[u]
		}

		return u
	}

	// Union by rank merges two disjoint roots.
	union := func(ru, rv int) {
		if rank[ru] < rank[rv] {
			parent[ru] = rv
		} else {
			parent[rv] = ru
			if rank[ru] == rank[rv] {
				rank[ru]++
			}
		}
	}

	// 5. Build MST by iterating over sorted edges.
	var (
		mst         = make([]Edge, 0, n-1)
		totalWeight float64
		ru, rv      int
	)
	for _, e := range edges {
		ru, rv = find(e.U), find(e.V)
		if ru == rv {
			continue
		}
		union(ru, rv)
		mst = append(mst, e)
		totalWeight += e.Weight
		if len(mst) == n-1 {
			break
		}
	}

	// 6. If MST does not contain exactly n-1 edges, the graph was disconnected.
	if len(mst) < n-1 {
		return nil, 0, ErrDisconnected
	}

	return mst, totalWeight, nil
}
