package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/railnet/network"
	"github.com/katalvlaran/railnet/pipeline"
	"github.com/katalvlaran/railnet/score"
	"github.com/katalvlaran/railnet/source"
	"github.com/katalvlaran/railnet/store"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock returns a clock advancing one minute per call.
func stepClock() func() time.Time {
	t := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func newStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(":memory:", store.WithClock(stepClock()))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func result() *pipeline.Result {
	nodes := []pipeline.Node{
		{Index: 0, Code: "A", Name: "Alpha", Location: orb.Point{-74, 40.7}, Projected: orb.Point{1.8e6, 3e5}, Population: 100},
		{Index: 1, Code: "B", Name: "Beta", Location: orb.Point{-87.6, 41.9}, Projected: orb.Point{7e5, 5e5}, Population: 200},
		{Index: 2, Code: "C", Name: "Gamma", Location: orb.Point{-95.4, 29.8}, Projected: orb.Point{1e5, -8e5}, Population: 300},
	}
	nets := []network.Network{
		{Objective: network.MaxRidership, Kind: network.Tree, Edges: []network.Edge{{U: 0, V: 1}, {U: 1, V: 2}}, Cost: 42},
		{Objective: network.MinTrackLengthLoop, Kind: network.Tour,
			Edges: []network.Edge{{U: 0, V: 2}, {U: 2, V: 1}, {U: 1, V: 0}}, Tour: []int{0, 2, 1, 0}, Cost: 4200, Truncated: true},
	}
	tbl := score.NewTable(
		score.Row{Name: "Maximum Ridership", Objective: network.MaxRidership, Ridership: 42, Revenue: 7, Length: 2000},
		score.Row{Name: "Minimum Track Length Loop", Objective: network.MinTrackLengthLoop, Ridership: 30, Revenue: 9, Length: 4200},
	)

	return &pipeline.Result{Nodes: nodes, Networks: nets, Table: tbl}
}

func TestSaveAndGetRun(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	res := result()

	id, err := s.SaveRun(ctx, res, "first")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	run, err := s.GetRun(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, run.ID)
	assert.Equal(t, "first", run.Label)
	assert.Equal(t, 3, run.NodeCount)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 1, 0, 0, time.UTC), run.CreatedAt)

	assert.Equal(t, res.Nodes, run.Nodes)
	assert.Equal(t, res.Networks, run.Networks)
	assert.Equal(t, res.Table.Rows(), run.Scores)

	loop, ok := run.Network(network.MinTrackLengthLoop)
	require.True(t, ok)
	assert.True(t, loop.Truncated)
	assert.Equal(t, []int{0, 2, 1, 0}, loop.Tour)

	tree, ok := run.Network(network.MaxRidership)
	require.True(t, ok)
	assert.Nil(t, tree.Tour)

	_, ok = run.Network(network.MaxRevenue)
	assert.False(t, ok)
	assert.Equal(t, 2, run.Table().Len())
}

func TestListAndLatest(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	_, err := s.LatestRun(ctx)
	require.ErrorIs(t, err, store.ErrNotFound)

	first, err := s.SaveRun(ctx, result(), "first")
	require.NoError(t, err)
	second, err := s.SaveRun(ctx, result(), "second")
	require.NoError(t, err)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, first, runs[1].ID)

	latest, err := s.LatestRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", latest.Label)
}

func TestGetRun_NotFound(t *testing.T) {
	s := newStore(t)
	_, err := s.GetRun(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteRun(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	id, err := s.SaveRun(ctx, result(), "")
	require.NoError(t, err)
	require.NoError(t, s.DeleteRun(ctx, id))

	_, err = s.GetRun(ctx, id)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.DeleteRun(ctx, id), store.ErrNotFound)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestSaveRun_Nil(t *testing.T) {
	s := newStore(t)
	_, err := s.SaveRun(context.Background(), nil, "")
	assert.ErrorIs(t, err, store.ErrNilResult)
}

func TestSaveRun_FromPipeline(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	box := func(lon, lat float64) orb.Polygon {
		return orb.Polygon{{{lon, lat}, {lon + 1, lat}, {lon + 1, lat + 1}, {lon, lat + 1}}}
	}
	in := pipeline.Input{
		Units: []source.Unit{
			{Code: "1", Name: "One", Geometry: box(-120, 35)},
			{Code: "2", Name: "Two", Geometry: box(-100, 40)},
			{Code: "3", Name: "Three", Geometry: box(-80, 38)},
			{Code: "4", Name: "Four", Geometry: box(-90, 30)},
		},
		Populations: map[string]int64{"1": 5_000_000, "2": 1_000_000, "3": 3_000_000, "4": 2_000_000},
	}
	res, err := pipeline.Run(ctx, in, pipeline.DefaultOptions())
	require.NoError(t, err)

	id, err := s.SaveRun(ctx, res, "pipeline")
	require.NoError(t, err)
	run, err := s.GetRun(ctx, id)
	require.NoError(t, err)
	require.Len(t, run.Networks, 4)
	for i, nw := range run.Networks {
		assert.Equal(t, res.Networks[i].Objective, nw.Objective)
		assert.Equal(t, res.Networks[i].Edges, nw.Edges)
		assert.InDelta(t, res.Networks[i].Cost, nw.Cost, 1e-9)
	}
}
