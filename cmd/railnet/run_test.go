package main

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/railnet/config"
	"github.com/katalvlaran/railnet/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const unitsJSON = `{"type":"FeatureCollection","features":[
{"type":"Feature","properties":{"CBSAFP":"1","NAME":"West","LSAD":"M1"},
 "geometry":{"type":"Polygon","coordinates":[[[-122,37],[-121,37],[-121,38],[-122,38],[-122,37]]]}},
{"type":"Feature","properties":{"CBSAFP":"2","NAME":"Middle","LSAD":"M1"},
 "geometry":{"type":"Polygon","coordinates":[[[-88,41],[-87,41],[-87,42],[-88,42],[-88,41]]]}},
{"type":"Feature","properties":{"CBSAFP":"3","NAME":"East","LSAD":"M1"},
 "geometry":{"type":"Polygon","coordinates":[[[-74,40],[-73,40],[-73,41],[-74,41],[-74,40]]]}},
{"type":"Feature","properties":{"CBSAFP":"4","NAME":"South","LSAD":"M1"},
 "geometry":{"type":"Polygon","coordinates":[[[-96,29],[-95,29],[-95,30],[-96,30],[-96,29]]]}},
{"type":"Feature","properties":{"CBSAFP":"5","NAME":"Micro","LSAD":"M2"},
 "geometry":{"type":"Polygon","coordinates":[[[-100,40],[-99,40],[-99,41],[-100,41],[-100,40]]]}}
]}`

const popCSV = "code,population\n1,4700000\n2,9400000\n3,19000000\n4,7100000\n"

func testConfig(t *testing.T) (*config.Config, string) {
	t.Helper()
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}

	cfg := config.Default()
	cfg.Input.Units = write("units.geojson", unitsJSON)
	cfg.Input.Populations = write("pop.csv", popCSV)
	cfg.Input.MetroClass = "M1"
	cfg.Database.Path = filepath.Join(dir, "runs.db")
	cfg.Export.GeoJSON = filepath.Join(dir, "out.geojson")
	cfg.Export.KML = filepath.Join(dir, "out.kml")
	cfg.Export.ScoresCSV = filepath.Join(dir, "scores.csv")
	require.NoError(t, cfg.Validate())

	return cfg, dir
}

func TestExecute(t *testing.T) {
	cfg, dir := testConfig(t)
	var out bytes.Buffer
	lg := log.New(io.Discard, "", 0)

	require.NoError(t, execute(context.Background(), cfg, "test", true, &out, lg))

	text := out.String()
	assert.Contains(t, text, "Maximum Ridership")
	assert.Contains(t, text, "Minimum Track Length Loop")
	assert.Contains(t, text, "ridership (1e10)")

	for _, name := range []string{"out.geojson", "out.kml", "scores.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}
	csv, err := os.ReadFile(filepath.Join(dir, "scores.csv"))
	require.NoError(t, err)
	assert.Equal(t, 5, len(strings.Split(strings.TrimSpace(string(csv)), "\n")))

	db, err := store.Open(cfg.Database.Path)
	require.NoError(t, err)
	defer db.Close()
	run, err := db.LatestRun(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test", run.Label)
	assert.Equal(t, 4, run.NodeCount)
	assert.Len(t, run.Networks, 4)
}

// TestExecute_Interrupted runs with an already cancelled context, as after
// SIGINT: the tour search stops early and the run is still saved.
func TestExecute_Interrupted(t *testing.T) {
	cfg, _ := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, execute(ctx, cfg, "interrupted", false, io.Discard, log.New(io.Discard, "", 0)))

	db, err := store.Open(cfg.Database.Path)
	require.NoError(t, err)
	defer db.Close()
	run, err := db.LatestRun(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "interrupted", run.Label)
	assert.Len(t, run.Networks, 4)
}

func TestExecute_MissingInput(t *testing.T) {
	cfg := config.Default()
	err := execute(context.Background(), cfg, "", false, io.Discard, log.New(io.Discard, "", 0))
	assert.Error(t, err)
}

func TestRunCommand_Flags(t *testing.T) {
	err := runCommand(context.Background(), []string{"-bogus"}, io.Discard)
	assert.Error(t, err)
}
