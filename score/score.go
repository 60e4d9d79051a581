// Package score is the Scorer: it totals every candidate network on all
// three metrics and compares the candidates in a table.
//
// A network's ridership, revenue and length are the sums of the ridership,
// revenue and distance matrices over its edges. The comparison table can be
// normalized by dividing each column by its mean across networks, so that
// 1.0 marks an average network on that metric.
package score

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/railnet/matrix"
	"github.com/katalvlaran/railnet/network"
)

// ErrEdgeOutOfRange indicates an edge endpoint outside the metric matrices.
var ErrEdgeOutOfRange = errors.New("score: edge endpoint out of range")

// Report scales: ridership is shown in units of 1e10, revenue in 1e12, length in km.
const (
	RidershipScale = 1e10
	RevenueScale   = 1e12
)

// Metrics are the matrices networks are scored on.
type Metrics = network.Metrics

// Row is one network's totals.
type Row struct {
	Name      string            `json:"name"`
	Objective network.Objective `json:"objective"`
	Ridership float64           `json:"ridership"`
	Revenue   float64           `json:"revenue"`
	Length    float64           `json:"length"`
}

// Score sums the three metrics over edges. The result does not depend on the
// order of edges or on the orientation of each edge beyond floating-point
// rounding.
func Score(name string, edges []network.Edge, m Metrics) (Row, error) {
	mats := [3]matrix.Matrix{m.Ridership, m.Revenue, m.Distance}
	for i, x := range mats {
		if err := matrix.ValidateSquare(x); err != nil {
			return Row{}, fmt.Errorf("score: %s metric %d: %w", name, i, err)
		}
	}

	var sums [3]float64
	for _, e := range edges {
		for k, x := range mats {
			v, err := x.At(e.U, e.V)
			if err != nil {
				return Row{}, fmt.Errorf("score: %s edge %d-%d: %w", name, e.U, e.V, ErrEdgeOutOfRange)
			}
			sums[k] += v
		}
	}

	return Row{Name: name, Ridership: sums[0], Revenue: sums[1], Length: sums[2]}, nil
}

// ScoreNetwork scores nw under its objective title.
func ScoreNetwork(nw network.Network, m Metrics) (Row, error) {
	row, err := Score(nw.Objective.String(), nw.Edges, m)
	if err != nil {
		return Row{}, err
	}
	row.Objective = nw.Objective

	return row, nil
}

// Report returns the row in display units: ridership/1e10, revenue/1e12, km.
func (r Row) Report() Row {
	r.Ridership /= RidershipScale
	r.Revenue /= RevenueScale

	return r
}
