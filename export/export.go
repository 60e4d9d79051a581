package export

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/railnet/geodist"
	"github.com/katalvlaran/railnet/network"
	"github.com/katalvlaran/railnet/pipeline"
	"github.com/paulmach/orb"
)

// DefaultSegments is the number of points per edge arc.
const DefaultSegments = 10

// ErrEdgeOutOfRange indicates an edge endpoint that is not a node index.
var ErrEdgeOutOfRange = errors.New("export: edge endpoint out of range")

// arc is one edge of one network, ready to draw.
type arc struct {
	objective network.Objective
	u, v      int
	line      orb.LineString
}

// arcs samples every edge of every network. segments < 2 is treated as 2.
func arcs(nodes []pipeline.Node, nets []network.Network, segments int) ([]arc, error) {
	var out []arc
	for _, nw := range nets {
		for _, e := range nw.Edges {
			if e.U < 0 || e.U >= len(nodes) || e.V < 0 || e.V >= len(nodes) {
				return nil, fmt.Errorf("%s edge %d-%d: %w", nw.Objective, e.U, e.V, ErrEdgeOutOfRange)
			}
			out = append(out, arc{
				objective: nw.Objective,
				u:         e.U,
				v:         e.V,
				line:      geodist.Arc(nodes[e.U].Location, nodes[e.V].Location, segments),
			})
		}
	}

	return out, nil
}
