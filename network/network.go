package network

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/railnet/matrix"
	"github.com/katalvlaran/railnet/prim_kruskal"
	"github.com/katalvlaran/railnet/tsp"
	"golang.org/x/sync/errgroup"
)

// ErrInsufficientNodes is returned for a tree over zero nodes or a tour over
// fewer than three. It is the tsp sentinel, so errors.Is matches either name.
var ErrInsufficientNodes = tsp.ErrInsufficientNodes

// ErrMissingMetric indicates that the matrix an objective needs is nil.
var ErrMissingMetric = errors.New("network: missing metric matrix")

// Edge is a track segment between node indices U and V.
type Edge struct {
	U int `json:"u"`
	V int `json:"v"`
}

// Metrics are the n×n matrices the objectives are built from and scored on.
type Metrics struct {
	Ridership matrix.Matrix
	Revenue   matrix.Matrix
	Distance  matrix.Matrix
}

// Size returns the node count n, taken from the distance matrix.
func (m Metrics) Size() int {
	if m.Distance == nil {
		return 0
	}

	return m.Distance.Rows()
}

// Network is one built candidate.
type Network struct {
	Objective Objective `json:"objective"`
	Kind      Kind      `json:"kind"`

	// Edges of a tree satisfy U < V and are sorted; edges of a tour follow
	// the tour order, the last one closing the loop.
	Edges []Edge `json:"edges"`

	// Tour is the closed node sequence (len n+1) of a Tour network.
	Tour []int `json:"tour,omitempty"`

	// Cost is the objective total in the units of its own matrix: ridership,
	// revenue or km. Maximization totals are reported positive.
	Cost float64 `json:"cost"`

	// Truncated reports that the tour search ran out of time budget.
	Truncated bool `json:"truncated,omitempty"`
}

// Option configures a Builder.
type Option func(*Builder)

// WithMST sets the spanning-tree algorithm options.
func WithMST(o prim_kruskal.MSTOptions) Option {
	return func(b *Builder) { b.mst = o }
}

// WithTourOptions sets the tour solver options.
func WithTourOptions(o tsp.Options) Option {
	return func(b *Builder) { b.tour = o }
}

// WithObjectives selects which objectives BuildAll runs, in order.
func WithObjectives(objs ...Objective) Option {
	return func(b *Builder) { b.objectives = slices.Clone(objs) }
}

// Builder builds networks. It holds configuration only and is safe for
// concurrent use.
type Builder struct {
	mst        prim_kruskal.MSTOptions
	tour       tsp.Options
	objectives []Objective
}

// NewBuilder returns a Builder with Kruskal trees, default tour options and
// the four default objectives.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		mst:        prim_kruskal.DefaultOptions(),
		tour:       tsp.DefaultOptions(),
		objectives: DefaultObjectives(),
	}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Objectives returns the objectives BuildAll runs.
func (b *Builder) Objectives() []Objective { return slices.Clone(b.objectives) }

// Build builds one objective.
func (b *Builder) Build(ctx context.Context, obj Objective, m Metrics) (Network, error) {
	switch obj {
	case MaxRidership:
		return buildTree(obj, m.Ridership, true, b.mst)
	case MaxRevenue:
		return buildTree(obj, m.Revenue, true, b.mst)
	case MinTrackLength:
		return buildTree(obj, m.Distance, false, b.mst)
	case MinTrackLengthLoop:
		return buildTour(ctx, m.Distance, b.tour)
	default:
		return Network{}, fmt.Errorf("%v: %w", obj, ErrUnknownObjective)
	}
}

// BuildAll runs every configured objective concurrently. The matrices are
// only read. Results are in objective order; the first error cancels the
// remaining builds and is returned wrapped with its objective.
func (b *Builder) BuildAll(ctx context.Context, m Metrics) ([]Network, error) {
	out := make([]Network, len(b.objectives))
	g, gctx := errgroup.WithContext(ctx)
	for i, obj := range b.objectives {
		i, obj := i, obj
		g.Go(func() error {
			nw, err := b.Build(gctx, obj, m)
			if err != nil {
				return fmt.Errorf("network: %s: %w", obj, err)
			}
			out[i] = nw

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// BuildTree builds a spanning-tree objective with Kruskal.
// MaxRidership and MaxRevenue maximize their matrix; MinTrackLength minimizes.
func BuildTree(obj Objective, m Metrics) (Network, error) {
	if obj.Kind() != Tree {
		return Network{}, fmt.Errorf("%v is not a tree objective: %w", obj, ErrUnknownObjective)
	}

	return NewBuilder().Build(context.Background(), obj, m)
}

// BuildTour builds the MinTrackLengthLoop network over dist.
func BuildTour(ctx context.Context, dist matrix.Matrix, opts tsp.Options) (Network, error) {
	return buildTour(ctx, dist, opts)
}

// buildTree runs the MST over cost (negated when maximize) and reports the
// total in the original units.
func buildTree(obj Objective, cost matrix.Matrix, maximize bool, opts prim_kruskal.MSTOptions) (Network, error) {
	if cost == nil {
		return Network{}, fmt.Errorf("%v: %w", obj, ErrMissingMetric)
	}
	if cost.Rows() < 1 {
		return Network{}, fmt.Errorf("%d nodes: %w", cost.Rows(), ErrInsufficientNodes)
	}
	if maximize {
		neg, err := matrix.Negate(cost)
		if err != nil {
			return Network{}, err
		}
		cost = neg
	}

	tree, total, err := prim_kruskal.Compute(cost, opts)
	if err != nil {
		return Network{}, err
	}
	if maximize {
		total = -total
	}

	edges := make([]Edge, len(tree))
	for i, e := range tree {
		edges[i] = Edge{U: e.U, V: e.V}
	}
	slices.SortFunc(edges, func(a, b Edge) int {
		if a.U != b.U {
			return a.U - b.U
		}
		return a.V - b.V
	})

	return Network{Objective: obj, Kind: Tree, Edges: edges, Cost: total}, nil
}

// buildTour solves the loop and converts the tour into consecutive edges.
func buildTour(ctx context.Context, dist matrix.Matrix, opts tsp.Options) (Network, error) {
	if dist == nil {
		return Network{}, fmt.Errorf("%v: %w", MinTrackLengthLoop, ErrMissingMetric)
	}
	res, err := tsp.Solve(ctx, dist, opts)
	if err != nil {
		return Network{}, err
	}

	return Network{
		Objective: MinTrackLengthLoop,
		Kind:      Tour,
		Edges:     TourEdges(res.Tour),
		Tour:      res.Tour,
		Cost:      res.Cost,
		Truncated: res.Truncated,
	}, nil
}

// TourEdges returns the len(tour)-1 consecutive edges of a closed tour.
func TourEdges(tour []int) []Edge {
	if len(tour) < 2 {
		return nil
	}
	edges := make([]Edge, len(tour)-1)
	for i := range edges {
		edges[i] = Edge{U: tour[i], V: tour[i+1]}
	}

	return edges
}
