// Package prim_kruskal defines configuration options, the Edge type and
// sentinel errors for MST computation over a dense cost matrix.
// It supports selecting between Kruskal and Prim algorithms via MSTOptions.
package prim_kruskal

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/railnet/matrix"
)

// ErrInvalidCost indicates that the cost matrix cannot describe an undirected
// weighted complete graph: nil, not square, not symmetric, or holding NaN/-Inf.
var ErrInvalidCost = errors.New("prim_kruskal: MST requires a square symmetric cost matrix")

// ErrEmpty indicates a 0×0 cost matrix: there is no vertex to span.
var ErrEmpty = errors.New("prim_kruskal: empty cost matrix")

// ErrRootOutOfRange indicates that the Prim root is not a vertex index.
var ErrRootOutOfRange = errors.New("prim_kruskal: root vertex out of range")

// ErrDisconnected indicates that +Inf entries (missing edges) split the vertex
// set, so no spanning tree covering all vertices exists.
var ErrDisconnected = errors.New("prim_kruskal: graph is disconnected")

// ErrUnknownMethod indicates an MSTOptions.Method other than MethodPrim/MethodKruskal.
var ErrUnknownMethod = errors.New("prim_kruskal: unknown method")

// MethodPrim selects Prim's algorithm (grow from a root using a min-heap).
const MethodPrim = "prim"

// MethodKruskal selects Kruskal's algorithm (sort all edges and union-find).
const MethodKruskal = "kruskal"

// symmetryTol is the absolute tolerance of the cost symmetry check.
const symmetryTol = 1e-9

// Edge is an undirected tree edge between vertex indices U < V.
type Edge struct {
	U, V   int
	Weight float64
}

// less orders edges by (Weight, U, V). This total order is the tie-break rule
// of both algorithms, which makes every result reproducible.
func (e Edge) less(o Edge) bool {
	if e.Weight != o.Weight {
		return e.Weight < o.Weight
	}
	if e.U != o.U {
		return e.U < o.U
	}

	return e.V < o.V
}

// newEdge normalizes the endpoint order so that U < V.
func newEdge(a, b int, w float64) Edge {
	if a > b {
		a, b = b, a
	}

	return Edge{U: a, V: b, Weight: w}
}

// MSTOptions configures which MST algorithm to run, and for Prim, which starting vertex to use.
// Use DefaultOptions() to get a default setup (Kruskal).
//
// Fields:
//
//	Method string: one of MethodPrim or MethodKruskal.
//	Root   int: start vertex index for Prim; ignored when Method == MethodKruskal.
type MSTOptions struct {
	// Method to use: MethodPrim or MethodKruskal.
	Method string

	// Root is the starting vertex for Prim's algorithm. Unused by Kruskal.
	Root int
}

// Option configures MSTOptions.
type Option func(*MSTOptions)

// WithMethod returns an Option that sets the algorithm Method.
func WithMethod(m string) Option {
	return func(opts *MSTOptions) {
		opts.Method = m
	}
}

// WithRoot returns an Option that sets the starting vertex for Prim's algorithm.
func WithRoot(root int) Option {
	return func(opts *MSTOptions) {
		opts.Root = root
	}
}

// DefaultOptions returns MSTOptions{Method: MethodKruskal, Root: 0}.
func DefaultOptions() MSTOptions {
	return MSTOptions{
		Method: MethodKruskal,
		Root:   0,
	}
}

// NewOptions applies opts over DefaultOptions.
func NewOptions(opts ...Option) MSTOptions {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Compute selects and runs the MST algorithm based on opts.Method.
//
//	– If opts.Method == MethodKruskal: calls Kruskal(cost).
//	– If opts.Method == MethodPrim:    calls Prim(cost, opts.Root).
//	– Otherwise:                        returns ErrUnknownMethod.
func Compute(cost matrix.Matrix, opts MSTOptions) ([]Edge, float64, error) {
	switch opts.Method {
	case MethodKruskal:
		return Kruskal(cost)
	case MethodPrim:
		return Prim(cost, opts.Root)
	default:
		return nil, 0, fmt.Errorf("%q: %w", opts.Method, ErrUnknownMethod)
	}
}

// prefetch validates cost and returns its row-major buffer and order.
// The diagonal is never read; +Inf off the diagonal means "no edge".
func prefetch(cost matrix.Matrix) ([]float64, int, error) {
	if err := matrix.ValidateSquare(cost); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidCost, err)
	}
	n := cost.Rows()
	if n == 0 {
		return nil, 0, ErrEmpty
	}
	w, err := matrix.Flatten(cost)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidCost, err)
	}

	var (
		i, j     int
		wij, wji float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			wij, wji = w[i*n+j], w[j*n+i]
			if math.IsNaN(wij) || math.IsInf(wij, -1) {
				return nil, 0, fmt.Errorf("cost[%d][%d]=%v: %w", i, j, wij, ErrInvalidCost)
			}
			if wij != wji && !(math.Abs(wij-wji) <= symmetryTol) {
				return nil, 0, fmt.Errorf("cost[%d][%d]=%v vs %v: %w", i, j, wij, wji, ErrInvalidCost)
			}
		}
	}

	return w, n, nil
}
