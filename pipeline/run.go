package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/railnet/geodist"
	"github.com/katalvlaran/railnet/gravity"
	"github.com/katalvlaran/railnet/matrix"
	"github.com/katalvlaran/railnet/network"
	"github.com/katalvlaran/railnet/prim_kruskal"
	"github.com/katalvlaran/railnet/score"
)

// Result is the complete output of one run.
type Result struct {
	Nodes     []Node
	Distance  *matrix.Dense
	Ridership *matrix.Dense
	Revenue   *matrix.Dense
	Networks  []network.Network
	Table     *score.Table
}

// Metrics returns the matrices the networks were built from.
func (r *Result) Metrics() network.Metrics {
	return network.Metrics{Ridership: r.Ridership, Revenue: r.Revenue, Distance: r.Distance}
}

// Network returns the network built for obj.
func (r *Result) Network(obj network.Objective) (network.Network, bool) {
	for _, nw := range r.Networks {
		if nw.Objective == obj {
			return nw, true
		}
	}

	return network.Network{}, false
}

// Run executes a full run.
//
// Steps:
//  1. BuildNodes.
//  2. Great-circle distance matrix over node locations.
//  3. Gravity ridership and revenue.
//  4. Build the objectives concurrently.
//  5. Score every network.
//
// A tour objective over fewer than three nodes fails the run with
// network.ErrInsufficientNodes.
func Run(ctx context.Context, in Input, opts Options) (*Result, error) {
	lg := opts.logger()
	start := time.Now()

	nodes, err := BuildNodes(in, opts)
	if err != nil {
		return nil, err
	}

	dist, err := geodist.Matrix(Locations(nodes))
	if err != nil {
		return nil, fmt.Errorf("pipeline: distance: %w", err)
	}
	weights, err := gravity.Build(Populations(nodes), dist)
	if err != nil {
		return nil, fmt.Errorf("pipeline: weights: %w", err)
	}
	res := &Result{
		Nodes:     nodes,
		Distance:  dist,
		Ridership: weights.Ridership,
		Revenue:   weights.Revenue,
	}

	mst := opts.MST
	if mst.Method == "" {
		mst = prim_kruskal.DefaultOptions()
	}
	bopts := []network.Option{
		network.WithMST(mst),
		network.WithTourOptions(opts.Tour),
	}
	if len(opts.Objectives) > 0 {
		bopts = append(bopts, network.WithObjectives(opts.Objectives...))
	}
	nets, err := network.NewBuilder(bopts...).BuildAll(ctx, res.Metrics())
	if err != nil {
		return nil, err
	}
	res.Networks = nets
	for _, nw := range nets {
		if nw.Truncated {
			lg.Printf("pipeline: %s: tour search stopped at time budget", nw.Objective)
		}
	}

	res.Table, err = score.FromNetworks(nets, res.Metrics())
	if err != nil {
		return nil, err
	}
	lg.Printf("pipeline: %d nodes, %d networks in %s", len(nodes), len(nets), time.Since(start).Round(time.Millisecond))

	return res, nil
}
