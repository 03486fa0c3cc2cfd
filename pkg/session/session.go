// Package session ties the renderers together behind the render and reset
// triggers a front end calls.
package session

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/willbeason/mandelbench/pkg/bench"
	"github.com/willbeason/mandelbench/pkg/fractal"
	"github.com/willbeason/mandelbench/pkg/render"
)

// Result is everything one render trigger produces.
type Result struct {
	Viewport fractal.Viewport
	Config   fractal.RenderConfig

	// Sequential is the baseline frame; Frame is the last sweep step's frame.
	Sequential *render.Frame
	Frame      *render.Frame

	// Baseline is the sequential time, Parallel the measured time of the
	// last sweep step.
	Baseline time.Duration
	Parallel time.Duration
	Series   *bench.Series
}

// lastStep remembers the most recent step time of a sweep.
type lastStep struct {
	elapsed time.Duration
}

func (l *lastStep) ObserveStep(_ bench.Entry, elapsed time.Duration) {
	l.elapsed = elapsed
}

// A Session keeps the baseline and series of the most recent render until
// Reset. Its methods serialize, so a reset can never interleave with a render.
type Session struct {
	mu       sync.Mutex
	opts     []render.Option
	baseline time.Duration
	series   *bench.Series
}

func New(opts ...render.Option) *Session {
	return &Session{
		opts:   opts,
		series: bench.NewSeries(0),
	}
}

// Render validates the snapshot, times a sequential pass, then sweeps 1 to
// maxThreads workers against that baseline. On failure the previous state
// of the session is left untouched.
func (s *Session) Render(ctx context.Context, vp fractal.Viewport, cfg fractal.RenderConfig, maxThreads int) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if maxThreads <= 0 {
		return nil, fmt.Errorf("%w: max threads %d", render.ErrInvalidThreads, maxThreads)
	}

	seq, baseline, err := render.Sequential(ctx, vp, cfg, s.opts...)
	if err != nil {
		return nil, fmt.Errorf("sequential render: %w", err)
	}

	last := &lastStep{}
	opts := append(slices.Clone(s.opts), render.WithObserver(last))

	frame, series, err := render.Sweep(ctx, vp, cfg, baseline, maxThreads, opts...)
	if err != nil {
		return nil, fmt.Errorf("parallel sweep: %w", err)
	}

	s.baseline = baseline
	s.series = series

	return &Result{
		Viewport:   vp,
		Config:     cfg,
		Sequential: seq,
		Frame:      frame,
		Baseline:   baseline,
		Parallel:   last.elapsed,
		Series:     series,
	}, nil
}

// Reset discards the stored baseline and series.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.baseline = 0
	s.series = bench.NewSeries(0)
}

func (s *Session) Baseline() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baseline
}

// Series returns a copy of the stored series entries.
func (s *Session) Series() []bench.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.series.Entries()
}
