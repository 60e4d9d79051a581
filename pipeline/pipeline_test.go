package pipeline_test

import (
	"bytes"
	"context"
	"log"
	"testing"

	"github.com/katalvlaran/railnet/geometry"
	"github.com/katalvlaran/railnet/network"
	"github.com/katalvlaran/railnet/pipeline"
	"github.com/katalvlaran/railnet/source"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// box returns a 0.5° square polygon centred on (lon, lat).
func box(lon, lat float64) orb.Polygon {
	const h = 0.25
	return orb.Polygon{{
		{lon - h, lat - h}, {lon + h, lat - h}, {lon + h, lat + h}, {lon - h, lat + h}, {lon - h, lat - h},
	}}
}

func cities() pipeline.Input {
	units := []source.Unit{
		{Code: "35620", Name: "New York", Class: "M1", Geometry: box(-74.0, 40.7)},
		{Code: "31080", Name: "Los Angeles", Class: "M1", Geometry: box(-118.2, 34.0)},
		{Code: "99999", Name: "Smalltown", Class: "M2", Geometry: box(-100.0, 40.0)},
		{Code: "16980", Name: "Chicago", Class: "M1", Geometry: box(-87.6, 41.9)},
		{Code: "19100", Name: "Dallas", Class: "M1", Geometry: box(-96.8, 32.8)},
		{Code: "26420", Name: "Houston", Class: "M1", Geometry: box(-95.4, 29.8)},
	}
	pop := map[string]int64{
		"35620": 19_216_182,
		"31080": 12_872_322,
		"16980": 9_441_957,
		"19100": 7_943_685,
		"26420": 7_340_118,
	}

	return pipeline.Input{Units: units, Populations: pop, IsMetro: source.IsMetro}
}

func TestBuildNodes_FiltersAndJoins(t *testing.T) {
	nodes, err := pipeline.BuildNodes(cities(), pipeline.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, nodes, 5)

	for i, n := range nodes {
		assert.Equal(t, i, n.Index)
		assert.NotEqual(t, "99999", n.Code)
	}
	assert.Equal(t, "Los Angeles", nodes[1].Name)
	assert.InDelta(t, -118.2, nodes[1].Location[0], 1e-9)
	assert.InDelta(t, 34.0, nodes[1].Location[1], 1e-9)
	assert.Equal(t, int64(12_872_322), nodes[1].Population)
	assert.Equal(t, []int64{19_216_182, 12_872_322, 9_441_957, 7_943_685, 7_340_118}, pipeline.Populations(nodes))
	assert.Len(t, pipeline.Locations(nodes), 5)
}

func TestBuildNodes_JoinFail(t *testing.T) {
	in := cities()
	delete(in.Populations, "16980")

	_, err := pipeline.BuildNodes(in, pipeline.DefaultOptions())
	require.ErrorIs(t, err, pipeline.ErrJoinMismatch)
	assert.Contains(t, err.Error(), "16980")
}

func TestBuildNodes_JoinExclude(t *testing.T) {
	in := cities()
	delete(in.Populations, "16980")

	var buf bytes.Buffer
	opts := pipeline.DefaultOptions()
	opts.JoinPolicy = pipeline.JoinExclude
	opts.Logger = log.New(&buf, "", 0)

	nodes, err := pipeline.BuildNodes(in, opts)
	require.NoError(t, err)
	require.Len(t, nodes, 4)
	for _, n := range nodes {
		assert.NotEqual(t, "16980", n.Code)
		assert.Positive(t, n.Population)
	}
	assert.Equal(t, 3, nodes[3].Index)
	assert.Contains(t, buf.String(), "excluded unit 16980")
}

func TestBuildNodes_DegeneratePolygonAborts(t *testing.T) {
	in := cities()
	in.Units[0].Geometry = orb.Polygon{{{0, 0}, {1, 1}, {2, 2}, {0, 0}}}

	_, err := pipeline.BuildNodes(in, pipeline.DefaultOptions())
	require.ErrorIs(t, err, geometry.ErrDegeneratePolygon)
	assert.Contains(t, err.Error(), "35620")
}

func TestBuildNodes_Visibility(t *testing.T) {
	opts := pipeline.DefaultOptions()
	// West of -100° only.
	opts.Visible = geometry.InWindow(geometry.Window{XMin: -180, XMax: -100, YMin: -90, YMax: 90})

	nodes, err := pipeline.BuildNodes(cities(), opts)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "31080", nodes[0].Code)
}

func TestBuildNodes_NoNodes(t *testing.T) {
	in := cities()
	in.IsMetro = func(source.Unit) bool { return false }

	_, err := pipeline.BuildNodes(in, pipeline.DefaultOptions())
	assert.ErrorIs(t, err, pipeline.ErrNoNodes)
}

func TestBuildNodes_UnknownPolicy(t *testing.T) {
	opts := pipeline.DefaultOptions()
	opts.JoinPolicy = pipeline.JoinPolicy(9)
	_, err := pipeline.BuildNodes(cities(), opts)
	assert.ErrorIs(t, err, pipeline.ErrUnknownJoinPolicy)
}

func TestRun_EndToEnd(t *testing.T) {
	res, err := pipeline.Run(context.Background(), cities(), pipeline.DefaultOptions())
	require.NoError(t, err)

	n := len(res.Nodes)
	require.Equal(t, 5, n)
	assert.Equal(t, n, res.Distance.Rows())
	require.Len(t, res.Networks, 4)
	assert.Equal(t, 4, res.Table.Len())

	for _, nw := range res.Networks {
		switch nw.Kind {
		case network.Tree:
			assert.Len(t, nw.Edges, n-1, nw.Objective.String())
		case network.Tour:
			assert.Len(t, nw.Edges, n)
			assert.Len(t, nw.Tour, n+1)
		}
	}

	// NY-LA is about 3940 km.
	d, err := res.Distance.At(0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 3940, d, 40)

	tree, ok := res.Network(network.MinTrackLength)
	require.True(t, ok)
	loop, ok := res.Network(network.MinTrackLengthLoop)
	require.True(t, ok)
	assert.Less(t, tree.Cost, loop.Cost)

	for _, mean := range res.Table.Normalized().Means() {
		assert.InDelta(t, 1.0, mean, 1e-9)
	}
}

func TestRun_InsufficientNodesForTour(t *testing.T) {
	in := cities()
	in.IsMetro = func(u source.Unit) bool { return u.Code == "35620" || u.Code == "31080" }

	_, err := pipeline.Run(context.Background(), in, pipeline.DefaultOptions())
	require.ErrorIs(t, err, network.ErrInsufficientNodes)

	opts := pipeline.DefaultOptions()
	opts.Objectives = []network.Objective{network.MaxRidership, network.MinTrackLength}
	res, err := pipeline.Run(context.Background(), in, opts)
	require.NoError(t, err)
	require.Len(t, res.Networks, 2)
	assert.Equal(t, []network.Edge{{U: 0, V: 1}}, res.Networks[0].Edges)
}

func TestRun_ZeroOptions(t *testing.T) {
	res, err := pipeline.Run(context.Background(), cities(), pipeline.Options{})
	require.NoError(t, err)
	assert.Len(t, res.Networks, 4)
}

func TestParseJoinPolicy(t *testing.T) {
	p, err := pipeline.ParseJoinPolicy("exclude")
	require.NoError(t, err)
	assert.Equal(t, pipeline.JoinExclude, p)
	assert.Equal(t, "exclude", p.String())

	p, err = pipeline.ParseJoinPolicy("")
	require.NoError(t, err)
	assert.Equal(t, pipeline.JoinFail, p)

	_, err = pipeline.ParseJoinPolicy("zero")
	assert.ErrorIs(t, err, pipeline.ErrUnknownJoinPolicy)
}
