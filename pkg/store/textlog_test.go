package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willbeason/mandelbench/pkg/bench"
)

func writeLog(t *testing.T, content string) *TextLog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return NewTextLog(path)
}

func TestTextLog_ReloadScenario(t *testing.T) {
	log := writeLog(t, "1.0 1.9 2.7\n1.0 0.95 0.9\n")

	records, err := log.ReloadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []float64{1.0, 1.9, 2.7}, records[0].Speedup)
	assert.Equal(t, []float64{1.0, 0.95, 0.9}, records[0].Efficiency)
	assert.Nil(t, records[0].Threads)
}

func TestTextLog_RoundTrip(t *testing.T) {
	ctx := context.Background()
	log := NewTextLog(filepath.Join(t.TempDir(), "data.txt"))

	series, err := bench.FromValues([]float64{1.0, 1.87, 2.61, 3.2}, []float64{1.0, 0.935, 0.87, 0.8})
	require.NoError(t, err)

	require.NoError(t, log.Persist(ctx, NewRecord(series)))

	records, err := log.ReloadAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	reloaded, err := records[0].Series()
	require.NoError(t, err)
	assert.InDeltaSlice(t, series.Speedups(), reloaded.Speedups(), 1e-12)
	assert.InDeltaSlice(t, series.Efficiencies(), reloaded.Efficiencies(), 1e-12)
	assert.Equal(t, series.Entries(), reloaded.Entries())
}

func TestTextLog_AppendsNeverTruncates(t *testing.T) {
	ctx := context.Background()
	log := writeLog(t, "1 2\n1 1\n")

	require.NoError(t, log.Persist(ctx, Record{Speedup: []float64{1, 1.5}, Efficiency: []float64{1, 0.75}}))

	content, err := os.ReadFile(log.Path())
	require.NoError(t, err)
	assert.Equal(t, "1 2\n1 1\n1 1.5 \n1 0.75 \n", string(content))

	records, err := log.ReloadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, []float64{1, 1.5}, records[1].Speedup)
}

func TestTextLog_BlankLinesAndExtraSpaces(t *testing.T) {
	log := writeLog(t, "\n  1.0   2.0 \n\n\n1.0\t1.0\n\n")

	records, err := log.ReloadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []float64{1.0, 2.0}, records[0].Speedup)
	assert.Equal(t, []float64{1.0, 1.0}, records[0].Efficiency)
}

func TestTextLog_UnpairedLineDropped(t *testing.T) {
	log := writeLog(t, "1 2\n1 1\n3 4\n")

	records, err := log.ReloadAll(context.Background())
	assert.ErrorIs(t, err, ErrUnpairedLine)
	assert.ErrorContains(t, err, "line 3")
	assert.Len(t, records, 1)
}

func TestTextLog_Errors(t *testing.T) {
	ctx := context.Background()

	missing := NewTextLog(filepath.Join(t.TempDir(), "absent.txt"))
	_, err := missing.ReloadAll(ctx)
	assert.ErrorIs(t, err, ErrLogNotFound)

	malformed := writeLog(t, "1 2\n1 x\n")
	_, err = malformed.ReloadAll(ctx)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.ErrorContains(t, err, "line 2")

	err = missing.Persist(ctx, Record{})
	assert.ErrorIs(t, err, ErrEmptySeries)

	unwritable := NewTextLog(filepath.Join(t.TempDir(), "no", "such", "dir", "data.txt"))
	err = unwritable.Persist(ctx, Record{Speedup: []float64{1}, Efficiency: []float64{1}})
	assert.Error(t, err)
}

func TestNewTextLog_DefaultPath(t *testing.T) {
	assert.Equal(t, DefaultLogPath, NewTextLog("").Path())
}
