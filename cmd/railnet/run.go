package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/katalvlaran/railnet/config"
	"github.com/katalvlaran/railnet/export"
	"github.com/katalvlaran/railnet/pipeline"
	"github.com/katalvlaran/railnet/source"
	"github.com/katalvlaran/railnet/store"
)

func runCommand(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "YAML configuration file")
	envPath := fs.String("env", "", ".env file (default .env if present)")
	label := fs.String("label", "", "label stored with the run")
	normalized := fs.Bool("normalized", false, "also print the table normalized by column mean")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*cfgPath, *envPath)
	if err != nil {
		return err
	}

	return execute(ctx, cfg, *label, *normalized, stdout, log.Default())
}

// execute runs the pipeline for cfg, prints the comparison table and writes
// the configured outputs.
func execute(ctx context.Context, cfg *config.Config, label string, normalized bool, stdout io.Writer, lg *log.Logger) error {
	if cfg.Input.Units == "" || cfg.Input.Populations == "" {
		return errors.New("run: input.units and input.populations are required")
	}

	in, err := readInput(cfg)
	if err != nil {
		return err
	}
	opts, err := cfg.PipelineOptions()
	if err != nil {
		return err
	}
	opts.Logger = lg

	res, err := pipeline.Run(ctx, in, opts)
	if err != nil {
		return err
	}

	if err := res.Table.Format(stdout); err != nil {
		return err
	}
	if normalized {
		fmt.Fprintln(stdout)
		if err := res.Table.FormatNormalized(stdout); err != nil {
			return err
		}
	}

	if err := writeOutputs(cfg, res); err != nil {
		return err
	}

	if cfg.Database.Path != "" {
		db, err := store.Open(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		// An interrupt stops the tour search early; the best tour found still
		// gets saved.
		id, err := db.SaveRun(context.WithoutCancel(ctx), res, label)
		if err != nil {
			return err
		}
		lg.Printf("saved run %s", id)
	}

	return nil
}

func readInput(cfg *config.Config) (pipeline.Input, error) {
	uf, err := os.Open(cfg.Input.Units)
	if err != nil {
		return pipeline.Input{}, err
	}
	defer uf.Close()
	units, err := source.ReadUnits(uf, cfg.Input.Fields)
	if err != nil {
		return pipeline.Input{}, fmt.Errorf("%s: %w", cfg.Input.Units, err)
	}

	pf, err := os.Open(cfg.Input.Populations)
	if err != nil {
		return pipeline.Input{}, err
	}
	defer pf.Close()
	pop, err := source.ReadPopulations(pf)
	if err != nil {
		return pipeline.Input{}, fmt.Errorf("%s: %w", cfg.Input.Populations, err)
	}

	return pipeline.Input{Units: units, Populations: pop, IsMetro: cfg.IsMetro()}, nil
}

func writeOutputs(cfg *config.Config, res *pipeline.Result) error {
	seg := cfg.Export.Segments
	outputs := []struct {
		path  string
		write func(io.Writer) error
	}{
		{cfg.Export.GeoJSON, func(w io.Writer) error { return export.WriteGeoJSON(w, res.Nodes, res.Networks, seg) }},
		{cfg.Export.KML, func(w io.Writer) error { return export.WriteKML(w, res.Nodes, res.Networks, seg) }},
		{cfg.Export.ScoresCSV, func(w io.Writer) error { return export.WriteScoresCSV(w, res.Table, false) }},
	}
	for _, o := range outputs {
		if o.path == "" {
			continue
		}
		if err := writeFile(o.path, o.write); err != nil {
			return fmt.Errorf("write %s: %w", o.path, err)
		}
	}

	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
