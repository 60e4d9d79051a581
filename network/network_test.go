package network_test

import (
	"context"
	"encoding/json"
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/railnet/geodist"
	"github.com/katalvlaran/railnet/gravity"
	"github.com/katalvlaran/railnet/matrix"
	"github.com/katalvlaran/railnet/network"
	"github.com/katalvlaran/railnet/prim_kruskal"
	"github.com/katalvlaran/railnet/tsp"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// squareMetrics is a unit square 0-1-2-3 (counter-clockwise) with
// populations 1, 2, 4, 3. Ridership:
//
//	0-1: 2   1-2: 8   2-3: 12   0-3: 3   0-2: 2   1-3: 3
func squareMetrics(t *testing.T) network.Metrics {
	t.Helper()
	s := math.Sqrt2
	dist, err := matrix.NewFromRows([][]float64{
		{0, 1, s, 1},
		{1, 0, 1, s},
		{s, 1, 0, 1},
		{1, s, 1, 0},
	})
	require.NoError(t, err)
	w, err := gravity.Build([]int64{1, 2, 4, 3}, dist)
	require.NoError(t, err)

	return network.Metrics{Ridership: w.Ridership, Revenue: w.Revenue, Distance: dist}
}

// randomMetrics places n nodes over the contiguous US with random populations.
func randomMetrics(t *testing.T, n int, seed int64) network.Metrics {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	pts := make([]orb.Point, n)
	pop := make([]int64, n)
	for i := range pts {
		pts[i] = orb.Point{-122 + 50*r.Float64(), 26 + 21*r.Float64()}
		pop[i] = 50_000 + r.Int63n(5_000_000)
	}
	dist, err := geodist.Matrix(pts)
	require.NoError(t, err)
	w, err := gravity.Build(pop, dist)
	require.NoError(t, err)

	return network.Metrics{Ridership: w.Ridership, Revenue: w.Revenue, Distance: dist}
}

// assertTree checks n-1 edges, U < V, and acyclicity (hence connectivity).
func assertTree(t *testing.T, n int, edges []network.Edge) {
	t.Helper()
	require.Len(t, edges, n-1)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	for _, e := range edges {
		require.Less(t, e.U, e.V)
		ru, rv := find(e.U), find(e.V)
		require.NotEqual(t, ru, rv, "cycle through %d-%d", e.U, e.V)
		parent[ru] = rv
	}
}

func TestBuildTree_SquareRidership(t *testing.T) {
	nw, err := network.BuildTree(network.MaxRidership, squareMetrics(t))
	require.NoError(t, err)
	assert.Equal(t, network.Tree, nw.Kind)
	assert.Equal(t, []network.Edge{{U: 0, V: 3}, {U: 1, V: 2}, {U: 2, V: 3}}, nw.Edges)
	assert.InDelta(t, 23.0, nw.Cost, 1e-9)
}

// TestBuildTree_SphereSquareRidership places equal populations on the corners
// of a 2°×2° square about (0, 0). East-west sides are shorter than north-south
// ones away from the equator, so both are kept, plus the lower-indexed of the
// two tied north-south sides. Diagonals are never chosen.
func TestBuildTree_SphereSquareRidership(t *testing.T) {
	corners := []orb.Point{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	dist, err := geodist.Matrix(corners)
	require.NoError(t, err)
	w, err := gravity.Build([]int64{1_000_000, 1_000_000, 1_000_000, 1_000_000}, dist)
	require.NoError(t, err)
	m := network.Metrics{Ridership: w.Ridership, Revenue: w.Revenue, Distance: dist}

	nw, err := network.BuildTree(network.MaxRidership, m)
	require.NoError(t, err)
	assert.Equal(t, []network.Edge{{U: 0, V: 1}, {U: 0, V: 3}, {U: 2, V: 3}}, nw.Edges)
}

func TestBuildTree_SquareTrackLength(t *testing.T) {
	nw, err := network.BuildTree(network.MinTrackLength, squareMetrics(t))
	require.NoError(t, err)
	// All four sides tie at 1; the (weight, U, V) order keeps 0-1, 0-3, 1-2.
	assert.Equal(t, []network.Edge{{U: 0, V: 1}, {U: 0, V: 3}, {U: 1, V: 2}}, nw.Edges)
	assert.InDelta(t, 3.0, nw.Cost, 1e-12)
}

func TestBuildTree_Shape(t *testing.T) {
	const n = 30
	m := randomMetrics(t, n, 1)
	for _, obj := range []network.Objective{network.MaxRidership, network.MaxRevenue, network.MinTrackLength} {
		nw, err := network.BuildTree(obj, m)
		require.NoError(t, err, obj.String())
		assertTree(t, n, nw.Edges)
		assert.Greater(t, nw.Cost, 0.0)
	}

	one := randomMetrics(t, 1, 2)
	nw, err := network.BuildTree(network.MaxRidership, one)
	require.NoError(t, err)
	assert.Empty(t, nw.Edges)
	assert.Zero(t, nw.Cost)

	_, err = network.BuildTree(network.MinTrackLengthLoop, m)
	assert.ErrorIs(t, err, network.ErrUnknownObjective)
}

// TestBuildTree_PrimAgrees checks that Prim yields the same objective total.
func TestBuildTree_PrimAgrees(t *testing.T) {
	m := randomMetrics(t, 25, 3)
	k, err := network.NewBuilder().Build(context.Background(), network.MaxRevenue, m)
	require.NoError(t, err)

	prim := network.NewBuilder(network.WithMST(prim_kruskal.NewOptions(
		prim_kruskal.WithMethod(prim_kruskal.MethodPrim), prim_kruskal.WithRoot(7))))
	p, err := prim.Build(context.Background(), network.MaxRevenue, m)
	require.NoError(t, err)
	assert.InEpsilon(t, k.Cost, p.Cost, 1e-12)
	assertTree(t, 25, p.Edges)
}

func TestBuildTour_Valid(t *testing.T) {
	for _, n := range []int{3, 4, 12, 40} {
		m := randomMetrics(t, n, int64(n))
		nw, err := network.BuildTour(context.Background(), m.Distance, tsp.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, network.Tour, nw.Kind)
		require.NoError(t, tsp.ValidateTour(nw.Tour, n, 0))
		require.Len(t, nw.Edges, n)
		assert.Equal(t, nw.Tour[0], nw.Edges[0].U)
		assert.Equal(t, nw.Tour[0], nw.Edges[n-1].V)

		cost, err := tsp.TourCost(m.Distance, nw.Tour)
		require.NoError(t, err)
		assert.InDelta(t, cost, nw.Cost, 1e-6)
	}
}

func TestBuildTour_InsufficientNodes(t *testing.T) {
	m := randomMetrics(t, 2, 1)
	_, err := network.BuildTour(context.Background(), m.Distance, tsp.DefaultOptions())
	assert.ErrorIs(t, err, network.ErrInsufficientNodes)
	assert.ErrorIs(t, err, tsp.ErrInsufficientNodes)
}

func TestBuildAll_OrderAndConsistency(t *testing.T) {
	const n = 20
	m := randomMetrics(t, n, 8)
	b := network.NewBuilder()

	all, err := b.BuildAll(context.Background(), m)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i, obj := range network.DefaultObjectives() {
		assert.Equal(t, obj, all[i].Objective)
		assert.Equal(t, obj.Kind(), all[i].Kind)

		single, err := b.Build(context.Background(), obj, m)
		require.NoError(t, err)
		assert.Equal(t, single.Edges, all[i].Edges, obj.String())
	}

	// The tree can never be longer than the loop minus its longest edge.
	assert.Less(t, all[2].Cost, all[3].Cost)
}

func TestBuildAll_ErrorNamesObjective(t *testing.T) {
	m := randomMetrics(t, 2, 4)
	_, err := network.NewBuilder().BuildAll(context.Background(), m)
	require.Error(t, err)
	assert.ErrorIs(t, err, network.ErrInsufficientNodes)
	assert.Contains(t, err.Error(), "Minimum Track Length Loop")

	trees := network.NewBuilder(network.WithObjectives(network.MaxRidership, network.MinTrackLength))
	all, err := trees.BuildAll(context.Background(), m)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, []network.Edge{{U: 0, V: 1}}, all[1].Edges)
}

func TestBuild_MissingMetric(t *testing.T) {
	m := randomMetrics(t, 5, 5)
	m.Revenue = nil
	_, err := network.NewBuilder().Build(context.Background(), network.MaxRevenue, m)
	assert.ErrorIs(t, err, network.ErrMissingMetric)

	_, err = network.NewBuilder().Build(context.Background(), network.Objective(9), m)
	assert.ErrorIs(t, err, network.ErrUnknownObjective)
}

func TestObjective_Names(t *testing.T) {
	for _, o := range network.DefaultObjectives() {
		got, err := network.ParseObjective(o.Slug())
		require.NoError(t, err)
		assert.Equal(t, o, got)
		got, err = network.ParseObjective(o.String())
		require.NoError(t, err)
		assert.Equal(t, o, got)
	}
	assert.Equal(t, "max-ridership", network.MaxRidership.Slug())
	_, err := network.ParseObjective("fastest")
	assert.ErrorIs(t, err, network.ErrUnknownObjective)
}

func TestNetwork_JSON(t *testing.T) {
	nw := network.Network{
		Objective: network.MinTrackLengthLoop,
		Kind:      network.Tour,
		Edges:     network.TourEdges([]int{0, 2, 1, 0}),
		Tour:      []int{0, 2, 1, 0},
		Cost:      12.5,
	}
	b, err := json.Marshal(nw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"objective":"min-track-length-loop","kind":"tour",
		"edges":[{"u":0,"v":2},{"u":2,"v":1},{"u":1,"v":0}],"tour":[0,2,1,0],"cost":12.5}`, string(b))

	var back network.Network
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, nw, back)
}
