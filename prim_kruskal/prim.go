package prim_kruskal

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/railnet/matrix"
)

// Prim computes the Minimum Spanning Tree (MST) of the complete undirected
// graph described by cost, growing outwards from root using a min-heap.
//
// Error Conditions:
//   - ErrInvalidCost    : cost is nil, not square, asymmetric, or holds NaN/-Inf.
//   - ErrEmpty          : cost is 0×0.
//   - ErrRootOutOfRange : root ∉ [0, n).
//   - ErrDisconnected   : +Inf entries leave the graph disconnected.
//
// Steps:
//  1. Validate and prefetch cost; n == 1 → trivial empty MST.
//  2. Mark root visited and push every finite edge (root, v).
//  3. While pq not empty and MST has < n-1 edges:
//     a. Pop the smallest edge by (Weight, U, V).
//     b. If its far endpoint is already visited, skip (it would close a cycle).
//     c. Otherwise add it, mark the endpoint, push its edges to unvisited vertices.
//  4. Fewer than n-1 edges after the loop → ErrDisconnected.
//
// Complexity: O(n² log n) time, O(n²) memory.
func Prim(cost matrix.Matrix, root int) ([]Edge, float64, error) {
	// 1. Validate and prefetch.
	w, n, err := prefetch(cost)
	if err != nil {
		return nil, 0, err
	}
	if root < 0 || root >= n {
		return nil, 0, fmt.Errorf("root %d of %d: %w", root, n, ErrRootOutOfRange)
	}
	if n == 1 {
		return []Edge{}, 0, nil
	}

	visited := make([]bool, n)
	mst := make([]Edge, 0, n-1)
	var totalWeight float64

	pq := &edgePQ{}
	heap.Init(pq)

	// push enqueues every finite edge from u to an unvisited vertex.
	push := func(u int) {
		for v := 0; v < n; v++ {
			if v == u || visited[v] || math.IsInf(w[u*n+v], 1) {
				continue
			}
			heap.Push(pq, frontier{Edge: newEdge(u, v, w[u*n+v]), to: v})
		}
	}

	// 2. Seed from root.
	visited[root] = true
	push(root)

	// 3. Main loop.
	for pq.Len() > 0 && len(mst) < n-1 {
		f := heap.Pop(pq).(frontier)
		if visited[f.to] {
			continue
		}
		visited[f.to] = true
		mst = append(mst, f.Edge)
		totalWeight += f.Weight
		push(f.to)
	}

	// 4. Connectivity check.
	if len(mst) < n-1 {
		return nil, 0, ErrDisconnected
	}

	return mst, totalWeight, nil
}

// frontier is a heap entry: a candidate edge and the endpoint it would add.
type frontier struct {
	Edge
	to int
}

// edgePQ implements heap.Interface for a min-heap of frontier edges, ordered
// by (Weight, U, V).
type edgePQ []frontier

// Len returns the number of edges in the priority queue.
func (pq edgePQ) Len() int { return len(pq) }

// Less compares by the Edge total order.
func (pq edgePQ) Less(i, j int) bool { return pq[i].less(pq[j].Edge) }

// Swap swaps elements at indices i and j.
func (pq edgePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push appends a new frontier edge. Called by heap.Push.
func (pq *edgePQ) Push(x interface{}) { *pq = append(*pq, x.(frontier)) }

// Pop removes and returns the last element. Called by heap.Pop.
func (pq *edgePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	f := old[n-1]
	*pq = old[:n-1]

	return f
}
