package render

import (
	"time"

	"github.com/willbeason/mandelbench/pkg/bench"
	"github.com/willbeason/mandelbench/pkg/fractal"
)

// A Clock returns the current time. Renders read it exactly twice per timed
// pass.
type Clock func() time.Time

// StepObserver is notified after every completed sweep step.
type StepObserver interface {
	ObserveStep(entry bench.Entry, elapsed time.Duration)
}

type options struct {
	clock      Clock
	observers  []StepObserver
	limitProcs bool
	renderRow  func(f *Frame, c fractal.Classifier, y int)
}

func defaultOptions() options {
	return options{
		clock:      time.Now,
		limitProcs: true,
		renderRow:  (*Frame).renderRow,
	}
}

type Option func(*options)

// WithClock replaces time.Now for timing.
func WithClock(c Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithObserver reports each sweep step to obs. Observers accumulate and are
// notified in the order they were given.
func WithObserver(obs StepObserver) Option {
	return func(o *options) {
		o.observers = append(o.observers, obs)
	}
}

// WithProcLimit controls whether a sweep step caps GOMAXPROCS at its thread
// count. It is on by default so that T workers really run on at most T
// threads.
func WithProcLimit(limit bool) Option {
	return func(o *options) {
		o.limitProcs = limit
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
