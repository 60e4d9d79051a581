// Package network is the Network Builder: it turns the weight matrices of a
// node set into the four candidate rail networks.
//
//   - MaxRidership:       spanning tree maximizing total ridership.
//   - MaxRevenue:         spanning tree maximizing total revenue.
//   - MinTrackLength:     spanning tree minimizing total distance.
//   - MinTrackLengthLoop: closed tour minimizing total distance.
//
// Trees come from prim_kruskal (maximization objectives feed the negated
// matrix), the loop from tsp under the great-circle metric. Builder.BuildAll
// runs the objectives concurrently over read-only matrices and returns the
// networks in objective order.
package network
