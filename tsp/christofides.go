// Package tsp - Christofides construction.
//
// christofidesTour computes a Hamiltonian cycle for the symmetric metric TSP:
//
//  1. Minimum Spanning Tree on the complete graph (prim_kruskal.Prim).
//  2. Matching of the odd-degree MST vertices (greedy nearest partner).
//  3. Eulerian circuit on the resulting multigraph (Hierholzer).
//  4. Shortcutting the Eulerian walk to a Hamiltonian cycle (skip revisits).
//
// With a true minimum-weight perfect matching the tour is at most 1.5·OPT on
// metric instances. The greedy matching keeps the pipeline valid and
// deterministic but drops the formal bound; the 2-opt pass recovers most of
// the gap in practice.
//
// Complexity: O(n² log n) for the MST, O(k²) for the matching of k odd
// vertices, O(n) for the circuit and the shortcut.
package tsp

import (
	"fmt"

	"github.com/katalvlaran/railnet/matrix"
	"github.com/katalvlaran/railnet/prim_kruskal"
)

// christofidesTour returns a closed tour starting at start.
func christofidesTour(dist matrix.Matrix, w []float64, n, start int) ([]int, error) {
	// 1) MST rooted at start, as adjacency lists.
	edges, _, err := prim_kruskal.Prim(dist, start)
	if err != nil {
		return nil, fmt.Errorf("tsp: spanning tree: %w", err)
	}
	adj := make([][]int, n)
	for _, e := range edges {
		adj[e.U] = append(adj[e.U], e.V)
		adj[e.V] = append(adj[e.V], e.U)
	}

	// 2) Odd-degree vertices, ascending. Their count is always even.
	odd := make([]int, 0, n/2+1)
	for v := 0; v < n; v++ {
		if len(adj[v])&1 == 1 {
			odd = append(odd, v)
		}
	}
	greedyMatch(odd, w, n, adj)

	// 3) + 4) Euler circuit, then shortcut.
	euler := eulerianCircuit(adj, start)

	return ShortcutEulerianToHamiltonian(euler, n, start)
}

// greedyMatch pairs each remaining odd vertex, in ascending order, with its
// nearest remaining partner (ties to the smaller index), adding the matching
// edge to the multigraph adjacency.
//
// Complexity: O(k²), where k = len(odd).
func greedyMatch(odd []int, w []float64, n int, adj [][]int) {
	remaining := append([]int(nil), odd...)
	var (
		u, v, bestIdx int
		bestD, d      float64
	)
	for len(remaining) > 1 {
		u = remaining[0]
		remaining = remaining[1:]
		bestIdx, bestD = 0, w[u*n+remaining[0]]
		for i := 1; i < len(remaining); i++ {
			if d = w[u*n+remaining[i]]; d < bestD {
				bestD, bestIdx = d, i
			}
		}
		v = remaining[bestIdx]
		adj[u] = append(adj[u], v)
		adj[v] = append(adj[v], u)
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
}

// eulerianCircuit returns an Eulerian circuit of the undirected multigraph
// adj, starting and ending at start (Hierholzer's algorithm). adj is not
// modified.
//
// Complexity: O(E·d) where d is the maximum degree (reverse-edge removal).
func eulerianCircuit(adj [][]int, start int) []int {
	local := make([][]int, len(adj))
	for u := range adj {
		local[u] = append([]int(nil), adj[u]...)
	}

	var circuit []int
	stack := []int{start}
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		if len(local[u]) == 0 {
			circuit = append(circuit, u)
			stack = stack[:len(stack)-1]
			continue
		}
		// Traverse u→v and drop one copy of the reverse edge v→u.
		v := local[u][len(local[u])-1]
		local[u] = local[u][:len(local[u])-1]
		for i, x := range local[v] {
			if x == u {
				local[v] = append(local[v][:i], local[v][i+1:]...)
				break
			}
		}
		stack = append(stack, v)
	}

	return circuit
}
