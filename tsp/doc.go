// Package tsp builds the closed tour of the "minimum track length loop"
// network: an approximate Travelling Salesman tour over a symmetric distance
// matrix.
//
// Pipeline (Solve):
//
//  1. Construction: NearestNeighbor (O(n²), optionally multi-start) or
//     Christofides (MST + greedy matching of odd vertices + Eulerian circuit +
//     shortcut).
//  2. Local search: first-improvement 2-opt until a local optimum, the
//     TwoOptMaxIters bound, Options.TimeLimit or the context deadline.
//
// The local search only ever applies strictly improving moves, so the tour
// held at any moment is the best found so far. A time budget therefore never
// produces an error: Solve returns that tour and sets TSResult.Truncated.
//
// Every returned tour is closed (len n+1, Tour[0] == Tour[n] == StartVertex)
// and visits each vertex exactly once (ValidateTour). Fewer than three
// vertices do not form a loop and yield ErrInsufficientNodes.
//
// The distance matrix must be square, symmetric, non-negative and finite with
// a zero diagonal. Costs are rounded to 1e-9 to keep results stable across
// platforms.
package tsp
