package telemetry

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willbeason/mandelbench/pkg/bench"
)

func TestSweepMetrics_ObserveStep(t *testing.T) {
	m := NewSweepMetrics()

	m.ObserveStep(bench.Entry{Threads: 1, Speedup: 1.0, Efficiency: 1.0}, 2*time.Second)
	m.ObserveStep(bench.Entry{Threads: 2, Speedup: 1.9, Efficiency: 0.95}, 1050*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.StepSeconds.WithLabelValues("1")))
	assert.InDelta(t, 1.05, testutil.ToFloat64(m.StepSeconds.WithLabelValues("2")), 1e-9)
	assert.Equal(t, 1.9, testutil.ToFloat64(m.Speedup.WithLabelValues("2")))
	assert.Equal(t, 0.95, testutil.ToFloat64(m.Efficiency.WithLabelValues("2")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Steps))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Speedup))
}

func TestSweepMetrics_Handler(t *testing.T) {
	m := NewSweepMetrics()
	m.ObserveStep(bench.Entry{Threads: 3, Speedup: 2.7, Efficiency: 0.9}, time.Second)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `mandelbench_speedup{threads="3"} 2.7`)
	assert.Contains(t, string(body), "go_goroutines")
}
