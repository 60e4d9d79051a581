package tsp

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInsufficientNodes is returned for fewer than MinNodes vertices.
	ErrInsufficientNodes = errors.New("tsp: a tour needs at least 3 nodes")

	// ErrNonSquare indicates a nil or non-square distance matrix.
	ErrNonSquare = errors.New("tsp: distance matrix must be square")

	// ErrDimensionMismatch indicates a tour or permutation of the wrong shape.
	ErrDimensionMismatch = errors.New("tsp: dimension mismatch")

	// ErrStartOutOfRange indicates StartVertex ∉ [0, n).
	ErrStartOutOfRange = errors.New("tsp: start vertex out of range")

	// ErrIncompleteGraph indicates a NaN or infinite distance.
	ErrIncompleteGraph = errors.New("tsp: incomplete distance matrix")

	// ErrNegativeWeight indicates a negative distance.
	ErrNegativeWeight = errors.New("tsp: negative distance")

	// ErrAsymmetry indicates dist[i][j] != dist[j][i] or a non-zero diagonal.
	ErrAsymmetry = errors.New("tsp: distance matrix is not symmetric")

	// ErrUnsupportedAlgorithm indicates an unknown Options.Algo.
	ErrUnsupportedAlgorithm = errors.New("tsp: unsupported algorithm")

	// ErrInvalidOptions indicates negative Eps, TimeLimit, TwoOptMaxIters or Restarts.
	ErrInvalidOptions = errors.New("tsp: invalid options")
)

// MinNodes is the smallest vertex count that forms a loop.
const MinNodes = 3

// DefaultEps is the improvement threshold of the local search: a move is
// accepted only when Δ < −Eps.
const DefaultEps = 1e-12

// DefaultTimeLimit bounds the local search of DefaultOptions.
const DefaultTimeLimit = 10 * time.Second

// Algorithm selects the tour construction.
type Algorithm int

const (
	// Christofides builds MST + matching + Eulerian circuit, then shortcuts.
	Christofides Algorithm = iota

	// NearestNeighbor greedily walks to the closest unvisited vertex.
	NearestNeighbor
)

// String implements fmt.Stringer.
func (a Algorithm) String() string {
	switch a {
	case Christofides:
		return "christofides"
	case NearestNeighbor:
		return "nearest-neighbor"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm maps the String form back to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch s {
	case "christofides", "":
		return Christofides, nil
	case "nearest-neighbor", "nn":
		return NearestNeighbor, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnsupportedAlgorithm)
	}
}

// Options configures Solve.
type Options struct {
	// Algo selects the construction heuristic.
	Algo Algorithm

	// EnableLocalSearch runs 2-opt after the construction.
	EnableLocalSearch bool

	// Eps is the strict-improvement threshold (Δ < −Eps); must be ≥ 0.
	Eps float64

	// TwoOptMaxIters caps accepted 2-opt moves; 0 means unlimited.
	TwoOptMaxIters int

	// TimeLimit bounds the local search wall-clock time; 0 means no limit
	// besides the context deadline.
	TimeLimit time.Duration

	// StartVertex is the first and last vertex of the returned tour.
	StartVertex int

	// Restarts adds nearest-neighbour constructions from that many extra
	// start vertices drawn with Seed; the cheapest tour wins.
	// Only used with NearestNeighbor.
	Restarts int

	// Seed drives the restart order; 0 selects a fixed default stream.
	Seed int64
}

// DefaultOptions returns Christofides + 2-opt with a 10 s budget, starting at 0.
func DefaultOptions() Options {
	return Options{
		Algo:              Christofides,
		EnableLocalSearch: true,
		Eps:               DefaultEps,
		TimeLimit:         DefaultTimeLimit,
		StartVertex:       0,
	}
}

// TSResult holds the outcome of Solve.
type TSResult struct {
	// Tour is the closed cycle: len(Tour) == n+1, Tour[0] == Tour[n] == StartVertex.
	Tour []int

	// Cost is the total distance of the cycle.
	Cost float64

	// InitialCost is the cost of the constructed tour before local search.
	InitialCost float64

	// Moves counts accepted 2-opt moves.
	Moves int

	// Truncated reports that the time budget or context ended the local
	// search before a local optimum was reached.
	Truncated bool
}
