// Package config loads the railnet configuration: a YAML file, an optional
// .env file and RAILNET_* environment overrides, applied in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/katalvlaran/railnet/export"
	"github.com/katalvlaran/railnet/geometry"
	"github.com/katalvlaran/railnet/source"
	"gopkg.in/yaml.v3"
)

// ErrInvalid indicates a configuration value that cannot be used.
var ErrInvalid = errors.New("config: invalid value")

// Projection names accepted besides a raw proj4 string.
const (
	ProjectionAlbersUSA = "albers-usa"
	ProjectionIdentity  = "identity"
)

// MetroClassAll as Input.MetroClass keeps every unit.
const MetroClassAll = "all"

// Config is the complete configuration.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Geometry GeometryConfig `yaml:"geometry"`
	Network  NetworkConfig  `yaml:"network"`
	Database DatabaseConfig `yaml:"database"`
	Export   ExportConfig   `yaml:"export"`
	Server   ServerConfig   `yaml:"server"`
}

// InputConfig locates the polygon and population sources.
type InputConfig struct {
	Units       string            `yaml:"units"`
	Populations string            `yaml:"populations"`
	Fields      source.UnitFields `yaml:"fields"`

	// MetroClass is the class a unit needs to become a node. It defaults to
	// source.MetroCode; MetroClassAll keeps every unit.
	MetroClass string `yaml:"metro_class"`

	// Join is "fail" or "exclude".
	Join string `yaml:"join"`
}

// GeometryConfig controls centroid extraction.
type GeometryConfig struct {
	// Projection is "albers-usa", "identity" or a proj4 definition.
	Projection string `yaml:"projection"`

	// Centroid is "area-weighted" or "concatenated-ring".
	Centroid string `yaml:"centroid"`

	// Window restricts nodes to projected centroids inside it. Nil keeps all.
	Window *geometry.Window `yaml:"window,omitempty"`
}

// NetworkConfig controls the builders.
type NetworkConfig struct {
	// MST is "kruskal" or "prim".
	MST string `yaml:"mst"`

	Tour TourConfig `yaml:"tour"`

	// Objectives lists objective slugs; empty builds all four.
	Objectives []string `yaml:"objectives,omitempty"`
}

// TourConfig controls the loop solver.
type TourConfig struct {
	Algorithm   string        `yaml:"algorithm"`
	LocalSearch *bool         `yaml:"local_search"`
	TimeLimit   time.Duration `yaml:"time_limit"`
	Restarts    int           `yaml:"restarts"`
	Seed        int64         `yaml:"seed"`
}

// DatabaseConfig locates the run store. An empty path disables storage.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ExportConfig names the output files. Empty paths are skipped.
type ExportConfig struct {
	GeoJSON   string `yaml:"geojson"`
	KML       string `yaml:"kml"`
	ScoresCSV string `yaml:"scores_csv"`
	Segments  int    `yaml:"segments"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()

	return c
}

// Load reads the YAML file at path, applies defaults and then environment
// overrides. An empty path starts from Default.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.applyDefaults()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables already set. Missing files are
// ignored; with no arguments ".env" is tried.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}

	return nil
}

// Save writes c as YAML to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

func (c *Config) applyDefaults() {
	if c.Input.MetroClass == "" {
		c.Input.MetroClass = source.MetroCode
	}
	if c.Input.Join == "" {
		c.Input.Join = "fail"
	}
	if c.Geometry.Projection == "" {
		c.Geometry.Projection = ProjectionAlbersUSA
	}
	if c.Geometry.Centroid == "" {
		c.Geometry.Centroid = geometry.AreaWeighted.String()
	}
	if c.Network.MST == "" {
		c.Network.MST = "kruskal"
	}
	if c.Network.Tour.Algorithm == "" {
		c.Network.Tour.Algorithm = "christofides"
	}
	if c.Network.Tour.LocalSearch == nil {
		on := true
		c.Network.Tour.LocalSearch = &on
	}
	if c.Network.Tour.TimeLimit == 0 {
		c.Network.Tour.TimeLimit = 10 * time.Second
	}
	if c.Export.Segments == 0 {
		c.Export.Segments = export.DefaultSegments
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
}

// applyEnv overrides fields from RAILNET_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"RAILNET_UNITS":       &c.Input.Units,
		"RAILNET_POPULATIONS": &c.Input.Populations,
		"RAILNET_METRO_CLASS": &c.Input.MetroClass,
		"RAILNET_JOIN":        &c.Input.Join,
		"RAILNET_PROJECTION":  &c.Geometry.Projection,
		"RAILNET_CENTROID":    &c.Geometry.Centroid,
		"RAILNET_MST":         &c.Network.MST,
		"RAILNET_TOUR":        &c.Network.Tour.Algorithm,
		"RAILNET_DB":          &c.Database.Path,
		"RAILNET_GEOJSON":     &c.Export.GeoJSON,
		"RAILNET_KML":         &c.Export.KML,
		"RAILNET_SCORES_CSV":  &c.Export.ScoresCSV,
		"RAILNET_ADDR":        &c.Server.Addr,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	if v, ok := lookup("RAILNET_TOUR_TIME_LIMIT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("RAILNET_TOUR_TIME_LIMIT=%q: %w: %v", v, ErrInvalid, err)
		}
		c.Network.Tour.TimeLimit = d
	}
	if v, ok := lookup("RAILNET_TOUR_SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("RAILNET_TOUR_SEED=%q: %w: %v", v, ErrInvalid, err)
		}
		c.Network.Tour.Seed = n
	}
	if v, ok := lookup("RAILNET_SEGMENTS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RAILNET_SEGMENTS=%q: %w: %v", v, ErrInvalid, err)
		}
		c.Export.Segments = n
	}

	return nil
}
