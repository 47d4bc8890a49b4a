package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func outputLines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimSpace(buf.String()), "\n")
}

func TestRunPrintsPath(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-seed", "3"}, strings.NewReader("0,0;10,0\n-1\n"), &out)
	require.NoError(t, err)

	lines := outputLines(&out)
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "0,0", lines[0])
	assert.Equal(t, "10,0", lines[len(lines)-1])
}

func TestRunReportsNoPath(t *testing.T) {
	var out bytes.Buffer
	input := "0,0;100,100\n100,100;0,0\n-1\n"
	err := run([]string{"-seed", "1", "-max-iter", "50"}, strings.NewReader(input), &out)
	require.NoError(t, err)
	assert.Equal(t, "No path found.", strings.TrimSpace(out.String()))
}

func TestRunRejectsMalformedInput(t *testing.T) {
	var out bytes.Buffer
	err := run(nil, strings.NewReader("0,0;10\n-1\n"), &out)
	assert.ErrorIs(t, err, ErrInputMalformed)
}

func TestRunRejectsInvalidFlags(t *testing.T) {
	var out bytes.Buffer
	for _, args := range [][]string{
		{"-step", "0"},
		{"-step", "Inf"},
		{"-goal-bias", "NaN"},
	} {
		out.Reset()
		err := run(args, strings.NewReader("0,0;10,0\n-1\n"), &out)
		assert.ErrorIs(t, err, ErrInvalidConfig, "%v", args)
	}
}

func TestRunWritesArtifactsAndReplays(t *testing.T) {
	dir := t.TempDir()
	plotFile := filepath.Join(dir, "rrt.png")
	geoFile := filepath.Join(dir, "rrt.geojson")
	saveFile := filepath.Join(dir, "run.json")

	var out bytes.Buffer
	input := "0,0;50,0\n20,60;30,-5\n-1\n"
	err := run([]string{
		"-seed", "11",
		"-shortcut",
		"-plot", plotFile,
		"-geojson", geoFile,
		"-save", saveFile,
	}, strings.NewReader(input), &out)
	require.NoError(t, err)

	for _, f := range []string{plotFile, geoFile, saveFile} {
		info, err := os.Stat(f)
		require.NoError(t, err, f)
		assert.Greater(t, info.Size(), int64(0), f)
	}

	var replayed bytes.Buffer
	require.NoError(t, run([]string{"-replay", saveFile}, strings.NewReader(""), &replayed))
	assert.Equal(t, out.String(), replayed.String())
}

func TestRunReadsInputFileAndGeoJSONObstacles(t *testing.T) {
	dir := t.TempDir()
	inputFile := filepath.Join(dir, "problem.txt")
	require.NoError(t, os.WriteFile(inputFile, []byte("0,0;100,100\n-1\n"), 0644))

	// One obstacle covering everything, so nothing can be planned
	geoFile := filepath.Join(dir, "walls.geojson")
	require.NoError(t, os.WriteFile(geoFile, []byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[100,0],[100,100],[0,100],[0,0]]]}}
	]}`), 0644))

	var out bytes.Buffer
	err := run([]string{"-input", inputFile, "-obstacles-geojson", geoFile, "-max-iter", "20", "-seed", "2"}, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "No path found.", strings.TrimSpace(out.String()))
}

func TestBuildConfigFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "planner.json")
	require.NoError(t, os.WriteFile(cfgFile, []byte(`{"maxIterations": 200, "stepSize": 2}`), 0644))

	opts, set, err := parseFlags([]string{"-config", cfgFile, "-step", "3"})
	require.NoError(t, err)

	cfg, err := buildConfig(opts, set)
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.MaxIterations)
	assert.Equal(t, 3.0, cfg.StepSize)
	assert.Equal(t, 0.1, cfg.GoalBias)
	assert.Nil(t, cfg.Rand)
}
