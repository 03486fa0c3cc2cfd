package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willbeason/mandelbench/internal/telemetry"
	"github.com/willbeason/mandelbench/pkg/store"
)

// execute runs the CLI with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	cmd := mainCmd()
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func smallRender(dir string, extra ...string) []string {
	args := []string{
		"render",
		"--width", "40",
		"--height", "30",
		"--iterations", "50",
		"--max-threads", "3",
		"--out", filepath.Join(dir, "frame.png"),
		"--store-path", filepath.Join(dir, "data.txt"),
	}
	return append(args, extra...)
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	chart := filepath.Join(dir, "chart.png")

	out, _, err := execute(t, smallRender(dir, "--chart", chart)...)
	require.NoError(t, err)

	assert.Contains(t, out, "40x30")
	assert.Contains(t, out, "THREADS")
	assert.Contains(t, out, "(3 threads)")
	assert.FileExists(t, filepath.Join(dir, "frame.png"))
	assert.FileExists(t, chart)

	// nothing is saved without --save
	assert.NoFileExists(t, filepath.Join(dir, "data.txt"))
}

func TestRender_SaveThenReload(t *testing.T) {
	dir := t.TempDir()

	for range 2 {
		out, _, err := execute(t, smallRender(dir, "--save")...)
		require.NoError(t, err)
		assert.Contains(t, out, "Data saved")
	}

	data, err := os.ReadFile(filepath.Join(dir, "data.txt"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	for _, l := range lines {
		assert.Len(t, strings.Fields(l), 3)
	}

	chart := filepath.Join(dir, "compare.png")
	out, _, err := execute(t, "reload", "--store-path", filepath.Join(dir, "data.txt"), "--chart", chart)
	require.NoError(t, err)

	assert.Contains(t, out, "Speedup (2 runs)")
	assert.Contains(t, out, "Efficiency (2 runs)")
	assert.Contains(t, out, "Data 1")
	assert.Contains(t, out, "Data 2")
	assert.FileExists(t, chart)
}

func TestRender_SQLiteStore(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "bench.db")

	_, _, err := execute(t, smallRender(dir, "--save", "--store", "sqlite", "--store-path", db)...)
	require.NoError(t, err)

	out, _, err := execute(t, "reload", "--store", "sqlite", "--store-path", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Run 1")
}

func TestRender_InvalidConfig(t *testing.T) {
	dir := t.TempDir()

	_, stderr, err := execute(t, smallRender(dir, "--width", "0", "--power", "1")...)
	require.Error(t, err)

	assert.Contains(t, err.Error(), "configuration validation failed")
	assert.Contains(t, stderr, "Error:")
	assert.NoFileExists(t, filepath.Join(dir, "frame.png"))
}

func TestRender_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MANDELBENCH_MAX_THREADS", "2")

	args := smallRender(dir)
	// drop --max-threads 3 so the environment applies
	for i, a := range args {
		if a == "--max-threads" {
			args = append(args[:i], args[i+2:]...)
			break
		}
	}

	out, _, err := execute(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "(2 threads)")
}

func TestReload_UnpairedLineWarns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 2 \n1 1 \n1 \n"), 0o644))

	out, stderr, err := execute(t, "reload", "--store-path", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Speedup (1 runs)")
	assert.Contains(t, stderr, store.ErrUnpairedLine.Error())
}

func TestReload_MissingLog(t *testing.T) {
	_, _, err := execute(t, "reload", "--store-path", filepath.Join(t.TempDir(), "absent.txt"))

	assert.ErrorIs(t, err, store.ErrLogNotFound)
}

func TestPresets(t *testing.T) {
	out, _, err := execute(t, "presets")
	require.NoError(t, err)

	assert.Contains(t, out, "fractal-1")
	assert.Contains(t, out, "fractal-5")
	assert.Contains(t, out, "elephant-valley")
}

func TestRender_LogFile(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "bench.log")

	_, _, err := execute(t, smallRender(dir, "--verbose", "--log-file", logFile)...)
	require.NoError(t, err)

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "sweep step finished")
}

func TestTeardown_ClosesLogFile(t *testing.T) {
	a := &app{logs: telemetry.InitLogger(false, filepath.Join(t.TempDir(), "bench.log"))}

	require.NoError(t, a.teardown(nil, nil))
	assert.ErrorIs(t, a.logs.Close(), os.ErrClosed)
}
