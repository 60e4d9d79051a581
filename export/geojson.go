package export

import (
	"fmt"
	"io"

	"github.com/katalvlaran/railnet/network"
	"github.com/katalvlaran/railnet/pipeline"
	"github.com/paulmach/orb/geojson"
)

// FeatureCollection returns nodes as Point features and network edges as
// LineString features.
//
// Node properties: kind="node", index, code, name, population.
// Edge properties: kind="edge", objective (slug), title, u, v.
func FeatureCollection(nodes []pipeline.Node, nets []network.Network, segments int) (*geojson.FeatureCollection, error) {
	edges, err := arcs(nodes, nets, segments)
	if err != nil {
		return nil, err
	}

	fc := geojson.NewFeatureCollection()
	for _, n := range nodes {
		f := geojson.NewFeature(n.Location)
		f.Properties["kind"] = "node"
		f.Properties["index"] = n.Index
		f.Properties["code"] = n.Code
		f.Properties["name"] = n.Name
		f.Properties["population"] = n.Population
		fc.Append(f)
	}
	for _, a := range edges {
		f := geojson.NewFeature(a.line)
		f.Properties["kind"] = "edge"
		f.Properties["objective"] = a.objective.Slug()
		f.Properties["title"] = a.objective.String()
		f.Properties["u"] = a.u
		f.Properties["v"] = a.v
		fc.Append(f)
	}

	return fc, nil
}

// WriteGeoJSON writes FeatureCollection(nodes, nets, segments) to w.
func WriteGeoJSON(w io.Writer, nodes []pipeline.Node, nets []network.Network, segments int) error {
	fc, err := FeatureCollection(nodes, nets, segments)
	if err != nil {
		return err
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("export: geojson: %w", err)
	}
	_, err = w.Write(data)

	return err
}
