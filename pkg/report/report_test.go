package report

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willbeason/mandelbench/pkg/bench"
	"github.com/willbeason/mandelbench/pkg/fractal"
	"github.com/willbeason/mandelbench/pkg/session"
	"github.com/willbeason/mandelbench/pkg/store"
)

func series(t *testing.T) *bench.Series {
	t.Helper()
	s, err := bench.FromValues([]float64{1, 1.9, 2.4}, []float64{1, 0.95, 0.8})
	require.NoError(t, err)
	return s
}

func TestSeriesTable(t *testing.T) {
	out := SeriesTable(series(t))

	for _, want := range []string{"THREADS", "SPEEDUP", "EFFICIENCY", "1.900", "0.950", "2.400", "0.800"} {
		assert.Contains(t, out, want)
	}
}

func TestSummary(t *testing.T) {
	res := &session.Result{
		Viewport: fractal.DefaultViewport,
		Config:   fractal.DefaultConfig,
		Baseline: 1200 * time.Millisecond,
		Parallel: 510 * time.Millisecond,
		Series:   series(t),
	}

	out := Summary(res)

	assert.Contains(t, out, "800x600")
	assert.Contains(t, out, "1.2000 s")
	// measured, not baseline/speedup (0.5s)
	assert.Contains(t, out, "0.5100 s (3 threads)")
	assert.Contains(t, out, "2.400x at 3 threads")
}

func TestRecordsTable_PadsShortRuns(t *testing.T) {
	records := []store.Record{
		{Speedup: []float64{1, 2}, Efficiency: []float64{1, 1}},
		{ID: 7, Speedup: []float64{1}, Efficiency: []float64{1}},
	}

	out := RecordsTable(records, Speedups)

	assert.Contains(t, out, "Data 1")
	assert.Contains(t, out, "Run 7")
	assert.Contains(t, out, "2.000")

	lines := strings.Split(out, "\n")
	var last string
	for _, l := range lines {
		if strings.Contains(l, "2.000") {
			last = l
		}
	}
	assert.Contains(t, last, "-")
}

func requirePNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Positive(t, img.Bounds().Dx())
	assert.Positive(t, img.Bounds().Dy())
}

func TestWriteSeriesChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")

	require.NoError(t, WriteSeriesChart(path, series(t)))
	requirePNG(t, path)
}

func TestWriteComparisonChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compare.png")
	records := []store.Record{
		{Speedup: []float64{1, 2}, Efficiency: []float64{1, 1}},
		{Threads: []int{1, 2, 3}, Speedup: []float64{1, 1.5, 2}, Efficiency: []float64{1, 0.75, 0.667}},
	}

	require.NoError(t, WriteComparisonChart(path, records))
	requirePNG(t, path)

	assert.Error(t, WriteComparisonChart(path, nil))

	gap := []store.Record{{Threads: []int{1, 3}, Speedup: []float64{1, 2}, Efficiency: []float64{1, 0.66}}}
	assert.ErrorIs(t, WriteComparisonChart(path, gap), store.ErrMalformed)
}

func TestPresetsTable(t *testing.T) {
	out := PresetsTable(fractal.Presets())

	assert.Contains(t, out, "fractal-1")
	assert.Contains(t, out, "1920x1080")
	assert.Contains(t, out, "seahorse-valley")
}
