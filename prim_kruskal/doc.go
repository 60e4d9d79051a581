// Package prim_kruskal provides two algorithms for computing the Minimum
// Spanning Tree (MST) of a complete undirected graph given as a dense cost
// matrix: Prim's algorithm and Kruskal's algorithm.
//
// What & Why
//
//   - Vertices are the indices 0..n-1 of an n×n matrix.Matrix; the weight of
//     edge {i, j} is cost[i][j] (the matrix must be symmetric, the diagonal is
//     ignored). +Inf marks a missing edge.
//
//   - The rail network builder feeds three matrices through this package:
//     distance (minimum track length) and the negated ridership and revenue
//     matrices, whose MST is a maximum spanning tree of the original weights.
//     Negative weights are therefore first-class.
//
// Algorithms Provided
//
//   - Kruskal(cost) ([]Edge, float64, error)
//
//   - Strategy: sort all edges by weight, then merge components with a
//     Disjoint-Set (Union-Find), skipping edges whose endpoints are already
//     connected. Stop once n−1 edges have been added.
//
//   - Complexity: O(n² log n) time, O(n²) space.
//
//   - Prim(cost, root) ([]Edge, float64, error)
//
//   - Strategy: grow a single tree from root. A min-heap holds the edges that
//     leave the current tree; the smallest one that reaches a new vertex is
//     added. Continue until n−1 edges have been added.
//
//   - Complexity: O(n² log n) time, O(n²) space.
//
// Determinism
//
//	Both algorithms order candidate edges by the total order (Weight, U, V)
//	with U < V. Equal weights are common after zero-filling (all zero-demand
//	pairs tie), so this order is what makes two runs produce the same tree.
//	Prim and Kruskal always agree on the total weight; on inputs with ties
//	they may still choose different (equally light) trees.
//
// Error Conditions
//
//   - ErrInvalidCost    : nil, non-square, asymmetric, NaN or -Inf entries.
//   - ErrEmpty          : 0×0 matrix.
//   - ErrRootOutOfRange : Prim root outside [0, n).
//   - ErrDisconnected   : +Inf entries split the graph.
//   - ErrUnknownMethod  : Compute with an unknown MSTOptions.Method.
//
// A single vertex yields an empty tree with total weight 0.
package prim_kruskal
