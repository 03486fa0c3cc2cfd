package telemetry

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/willbeason/mandelbench/pkg/bench"
)

// SweepMetrics exports sweep steps as Prometheus metrics. It satisfies
// render.StepObserver.
type SweepMetrics struct {
	registry *prometheus.Registry

	StepSeconds *prometheus.GaugeVec
	Speedup     *prometheus.GaugeVec
	Efficiency  *prometheus.GaugeVec
	Steps       prometheus.Counter
	StepLatency prometheus.Histogram
}

// NewSweepMetrics registers the sweep collectors on a fresh registry.
func NewSweepMetrics() *SweepMetrics {
	m := &SweepMetrics{registry: prometheus.NewRegistry()}

	m.StepSeconds = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mandelbench_step_seconds",
			Help: "Wall-clock seconds of the latest sweep step per thread count",
		},
		[]string{"threads"},
	)
	m.Speedup = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mandelbench_speedup",
			Help: "Baseline time divided by step time per thread count",
		},
		[]string{"threads"},
	)
	m.Efficiency = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mandelbench_efficiency",
			Help: "Speedup divided by thread count",
		},
		[]string{"threads"},
	)
	m.Steps = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mandelbench_steps_total",
			Help: "Total number of completed sweep steps",
		},
	)
	m.StepLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mandelbench_step_duration_seconds",
			Help:    "Distribution of sweep step durations",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 16),
		},
	)

	m.registry.MustRegister(m.StepSeconds, m.Speedup, m.Efficiency, m.Steps, m.StepLatency)
	return m
}

func (m *SweepMetrics) ObserveStep(e bench.Entry, elapsed time.Duration) {
	threads := strconv.Itoa(e.Threads)
	m.StepSeconds.WithLabelValues(threads).Set(elapsed.Seconds())
	m.Speedup.WithLabelValues(threads).Set(e.Speedup)
	m.Efficiency.WithLabelValues(threads).Set(e.Efficiency)
	m.Steps.Inc()
	m.StepLatency.Observe(elapsed.Seconds())
}

func (m *SweepMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the sweep metrics plus the Go runtime collectors.
func (m *SweepMetrics) Handler() http.Handler {
	gatherers := prometheus.Gatherers{m.registry, prometheus.DefaultGatherer}
	return promhttp.HandlerFor(gatherers, promhttp.HandlerOpts{})
}

// StartMetricsServer serves /metrics on addr in the background. The returned
// server should be shut down by the caller.
func StartMetricsServer(addr string, m *SweepMetrics) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("metrics server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server stopped", "error", fmt.Errorf("listen on %s: %w", addr, err))
		}
	}()

	return srv
}
