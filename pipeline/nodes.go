package pipeline

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/katalvlaran/railnet/geometry"
	"github.com/katalvlaran/railnet/network"
	"github.com/katalvlaran/railnet/prim_kruskal"
	"github.com/katalvlaran/railnet/source"
	"github.com/katalvlaran/railnet/tsp"
	"github.com/paulmach/orb"
)

var (
	// ErrJoinMismatch indicates a unit code with no population record.
	ErrJoinMismatch = errors.New("pipeline: no population for unit")

	// ErrNoNodes indicates that no unit survived filtering.
	ErrNoNodes = errors.New("pipeline: no nodes")

	// ErrUnknownJoinPolicy indicates an unsupported JoinPolicy value.
	ErrUnknownJoinPolicy = errors.New("pipeline: unknown join policy")
)

// JoinPolicy decides what happens to a unit without a population record.
// A missing population is never treated as zero.
type JoinPolicy int

const (
	// JoinFail aborts the run with ErrJoinMismatch.
	JoinFail JoinPolicy = iota

	// JoinExclude drops the unit and logs it.
	JoinExclude
)

// String implements fmt.Stringer.
func (p JoinPolicy) String() string {
	switch p {
	case JoinFail:
		return "fail"
	case JoinExclude:
		return "exclude"
	default:
		return fmt.Sprintf("JoinPolicy(%d)", int(p))
	}
}

// ParseJoinPolicy accepts "fail" (or "") and "exclude".
func ParseJoinPolicy(s string) (JoinPolicy, error) {
	switch s {
	case "", "fail":
		return JoinFail, nil
	case "exclude":
		return JoinExclude, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownJoinPolicy)
	}
}

// Node is one metropolitan area of the network.
type Node struct {
	Index      int       `json:"index"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Location   orb.Point `json:"location"`
	Projected  orb.Point `json:"projected"`
	Population int64     `json:"population"`
}

// Input is everything a run reads.
type Input struct {
	Units       []source.Unit
	Populations map[string]int64

	// IsMetro selects the units that become nodes. Nil keeps every unit.
	IsMetro func(source.Unit) bool
}

// Options configures a run. The zero value uses the identity projection,
// keeps every centroid, builds Kruskal trees, fails on join mismatches and
// discards logs.
type Options struct {
	Projection   geometry.Projection
	Visible      geometry.Visibility
	CentroidMode geometry.Mode
	JoinPolicy   JoinPolicy

	MST        prim_kruskal.MSTOptions
	Tour       tsp.Options
	Objectives []network.Objective

	Logger *log.Logger
}

// DefaultOptions returns Options with default tree and tour settings.
func DefaultOptions() Options {
	return Options{
		MST:        prim_kruskal.DefaultOptions(),
		Tour:       tsp.DefaultOptions(),
		Objectives: network.DefaultObjectives(),
	}
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard, "", 0)
	}

	return o.Logger
}

// BuildNodes turns units into indexed nodes.
//
// Steps:
//  1. Keep units accepted by in.IsMetro.
//  2. Extract each centroid; a degenerate polygon aborts.
//  3. Keep centroids accepted by opts.Visible.
//  4. Join the population by code per opts.JoinPolicy.
//
// Indices follow the order of in.Units.
func BuildNodes(in Input, opts Options) ([]Node, error) {
	lg := opts.logger()
	visible := opts.Visible
	if visible == nil {
		visible = geometry.AllVisible
	}
	switch opts.JoinPolicy {
	case JoinFail, JoinExclude:
	default:
		return nil, fmt.Errorf("%v: %w", opts.JoinPolicy, ErrUnknownJoinPolicy)
	}

	var (
		nodes            []Node
		filtered, hidden int
		missing          []string
	)
	for _, u := range in.Units {
		if in.IsMetro != nil && !in.IsMetro(u) {
			filtered++
			continue
		}
		c, err := geometry.Extract(u.Geometry, opts.Projection, geometry.WithMode(opts.CentroidMode))
		if err != nil {
			return nil, fmt.Errorf("unit %s (%s): %w", u.Code, u.Name, err)
		}
		if !visible(c) {
			hidden++
			continue
		}
		pop, ok := in.Populations[u.Code]
		if !ok {
			if opts.JoinPolicy == JoinFail {
				return nil, fmt.Errorf("unit %s (%s): %w", u.Code, u.Name, ErrJoinMismatch)
			}
			missing = append(missing, u.Code)
			continue
		}
		nodes = append(nodes, Node{
			Index:      len(nodes),
			Code:       u.Code,
			Name:       u.Name,
			Location:   c.Location,
			Projected:  c.Projected,
			Population: pop,
		})
	}

	for _, code := range missing {
		lg.Printf("pipeline: excluded unit %s: no population record", code)
	}
	lg.Printf("pipeline: %d nodes from %d units (%d filtered, %d outside window, %d unjoined)",
		len(nodes), len(in.Units), filtered, hidden, len(missing))
	if len(nodes) == 0 {
		return nil, ErrNoNodes
	}

	return nodes, nil
}

// Locations returns the geographic location of every node in index order.
func Locations(nodes []Node) []orb.Point {
	pts := make([]orb.Point, len(nodes))
	for i, n := range nodes {
		pts[i] = n.Location
	}

	return pts
}

// Populations returns the population of every node in index order.
func Populations(nodes []Node) []int64 {
	pop := make([]int64, len(nodes))
	for i, n := range nodes {
		pop[i] = n.Population
	}

	return pop
}
