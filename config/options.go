package config

import (
	"fmt"

	"github.com/katalvlaran/railnet/geometry"
	"github.com/katalvlaran/railnet/network"
	"github.com/katalvlaran/railnet/pipeline"
	"github.com/katalvlaran/railnet/prim_kruskal"
	"github.com/katalvlaran/railnet/source"
	"github.com/katalvlaran/railnet/tsp"
)

// Validate checks every enumerated value and numeric range. It does not
// touch the filesystem.
func (c *Config) Validate() error {
	if _, err := pipeline.ParseJoinPolicy(c.Input.Join); err != nil {
		return fmt.Errorf("input.join: %w: %v", ErrInvalid, err)
	}
	if _, err := parseCentroid(c.Geometry.Centroid); err != nil {
		return err
	}
	switch c.Network.MST {
	case prim_kruskal.MethodKruskal, prim_kruskal.MethodPrim:
	default:
		return fmt.Errorf("network.mst %q: %w", c.Network.MST, ErrInvalid)
	}
	if _, err := tsp.ParseAlgorithm(c.Network.Tour.Algorithm); err != nil {
		return fmt.Errorf("network.tour.algorithm: %w: %v", ErrInvalid, err)
	}
	if c.Network.Tour.TimeLimit < 0 || c.Network.Tour.Restarts < 0 {
		return fmt.Errorf("network.tour: %w: negative limit", ErrInvalid)
	}
	if _, err := c.objectives(); err != nil {
		return err
	}
	if c.Export.Segments < 2 {
		return fmt.Errorf("export.segments %d: %w", c.Export.Segments, ErrInvalid)
	}
	if w := c.Geometry.Window; w != nil && (w.XMin >= w.XMax || w.YMin >= w.YMax) {
		return fmt.Errorf("geometry.window %+v: %w", *w, ErrInvalid)
	}

	return nil
}

// Projection builds the configured projection.
func (c *Config) Projection() (geometry.Projection, error) {
	switch c.Geometry.Projection {
	case ProjectionIdentity:
		return geometry.Identity{}, nil
	case ProjectionAlbersUSA:
		return geometry.NewProj4(geometry.AlbersUSA)
	default:
		return geometry.NewProj4(c.Geometry.Projection)
	}
}

// IsMetro returns the unit filter for Input.MetroClass; nil keeps all units.
func (c *Config) IsMetro() func(source.Unit) bool {
	switch class := c.Input.MetroClass; class {
	case MetroClassAll:
		return nil
	case "", source.MetroCode:
		return source.IsMetro
	default:
		return func(u source.Unit) bool { return u.Class == class }
	}
}

// PipelineOptions translates the configuration into run options.
func (c *Config) PipelineOptions() (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()

	proj, err := c.Projection()
	if err != nil {
		return opts, err
	}
	opts.Projection = proj

	if opts.CentroidMode, err = parseCentroid(c.Geometry.Centroid); err != nil {
		return opts, err
	}
	if c.Geometry.Window != nil {
		opts.Visible = geometry.InWindow(*c.Geometry.Window)
	}
	if opts.JoinPolicy, err = pipeline.ParseJoinPolicy(c.Input.Join); err != nil {
		return opts, fmt.Errorf("input.join: %w: %v", ErrInvalid, err)
	}

	opts.MST = prim_kruskal.NewOptions(prim_kruskal.WithMethod(c.Network.MST))

	t := c.Network.Tour
	if opts.Tour.Algo, err = tsp.ParseAlgorithm(t.Algorithm); err != nil {
		return opts, fmt.Errorf("network.tour.algorithm: %w: %v", ErrInvalid, err)
	}
	if t.LocalSearch != nil {
		opts.Tour.EnableLocalSearch = *t.LocalSearch
	}
	opts.Tour.TimeLimit = t.TimeLimit
	opts.Tour.Restarts = t.Restarts
	opts.Tour.Seed = t.Seed

	if opts.Objectives, err = c.objectives(); err != nil {
		return opts, err
	}

	return opts, nil
}

func (c *Config) objectives() ([]network.Objective, error) {
	if len(c.Network.Objectives) == 0 {
		return network.DefaultObjectives(), nil
	}
	out := make([]network.Objective, 0, len(c.Network.Objectives))
	for _, s := range c.Network.Objectives {
		o, err := network.ParseObjective(s)
		if err != nil {
			return nil, fmt.Errorf("network.objectives: %w: %v", ErrInvalid, err)
		}
		out = append(out, o)
	}

	return out, nil
}

func parseCentroid(s string) (geometry.Mode, error) {
	switch s {
	case geometry.AreaWeighted.String():
		return geometry.AreaWeighted, nil
	case geometry.ConcatenatedRing.String():
		return geometry.ConcatenatedRing, nil
	default:
		return 0, fmt.Errorf("geometry.centroid %q: %w", s, ErrInvalid)
	}
}
