package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/willbeason/mandelbench/pkg/bench"
	"github.com/willbeason/mandelbench/pkg/fractal"
)

var (
	ErrInvalidBaseline = errors.New("baseline time must be positive")
	ErrClockResolution = errors.New("step finished within clock resolution")
)

// Sweep renders the frame once for every thread count from 1 to maxThreads and
// measures each pass against baseline.
//
// Every step gets a fresh Pool, and steps never overlap, so entries land in
// the series in thread order. The frame of the last step is returned. Any
// failing step aborts the sweep and no series is returned. ctx is checked
// between steps only.
func Sweep(ctx context.Context, vp fractal.Viewport, cfg fractal.RenderConfig, baseline time.Duration, maxThreads int, opts ...Option) (*Frame, *bench.Series, error) {
	o := buildOptions(opts)

	if maxThreads <= 0 {
		return nil, nil, fmt.Errorf("%w: max threads %d", ErrInvalidThreads, maxThreads)
	}
	if baseline <= 0 {
		return nil, nil, fmt.Errorf("%w: got %v", ErrInvalidBaseline, baseline)
	}
	c, err := fractal.NewClassifier(vp, cfg)
	if err != nil {
		return nil, nil, err
	}

	series := bench.NewSeries(maxThreads)
	var frame *Frame

	for threads := 1; threads <= maxThreads; threads++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, fmt.Errorf("sweep stopped before %d threads: %w", threads, err)
		}

		f, elapsed, err := step(c, threads, o)
		if err != nil {
			return nil, nil, fmt.Errorf("sweep step with %d threads: %w", threads, err)
		}
		if elapsed <= 0 {
			return nil, nil, fmt.Errorf("%w: %d threads took %v", ErrClockResolution, threads, elapsed)
		}

		speedup := baseline.Seconds() / elapsed.Seconds()
		efficiency := speedup / float64(threads)
		if err := series.Append(threads, speedup, efficiency); err != nil {
			return nil, nil, err
		}

		slog.Debug("sweep step finished",
			"threads", threads, "seconds", elapsed.Seconds(),
			"speedup", speedup, "efficiency", efficiency)

		for _, obs := range o.observers {
			obs.ObserveStep(series.At(threads-1), elapsed)
		}

		// Earlier frames are dropped once timed.
		frame = f
	}

	if peak, ok := series.Peak(); ok {
		slog.Info("sweep finished",
			"max_threads", maxThreads,
			"peak_threads", peak.Threads,
			"peak_speedup", peak.Speedup)
	}

	return frame, series, nil
}

// step renders one full frame with a pool of threads workers. GOMAXPROCS is
// adjusted outside the timed window.
func step(c fractal.Classifier, threads int, o options) (*Frame, time.Duration, error) {
	pool, err := NewPool(threads)
	if err != nil {
		return nil, 0, err
	}

	if o.limitProcs {
		previous := runtime.GOMAXPROCS(threads)
		defer runtime.GOMAXPROCS(previous)
	}

	frame := NewFrame(c.Config())

	start := o.clock()
	err = pool.Run(frame.Height, func(y int) {
		o.renderRow(frame, c, y)
	})
	elapsed := o.clock().Sub(start)

	if err != nil {
		return nil, 0, err
	}
	return frame, elapsed, nil
}
