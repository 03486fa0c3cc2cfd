// Package store persists finished benchmark series and reloads them for
// comparison.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/willbeason/mandelbench/pkg/bench"
	"github.com/willbeason/mandelbench/pkg/fractal"
)

var (
	ErrLogNotFound  = errors.New("benchmark log not found")
	ErrMalformed    = errors.New("malformed benchmark log")
	ErrUnpairedLine = errors.New("benchmark log ends with an unpaired line")
	ErrEmptySeries  = errors.New("refusing to store an empty series")
)

// A Store appends series and reads every stored series back in insertion
// order.
type Store interface {
	Persist(ctx context.Context, rec Record) error
	ReloadAll(ctx context.Context) ([]Record, error)
	Close() error
}

// Record is one stored sweep. Only Speedup and Efficiency survive every
// backend; the rest is zero when a backend does not keep it.
type Record struct {
	ID         int64
	CreatedAt  time.Time
	Threads    []int
	Speedup    []float64
	Efficiency []float64

	Config   fractal.RenderConfig
	Viewport fractal.Viewport
	Baseline time.Duration
}

// NewRecord captures series for storage.
func NewRecord(series *bench.Series) Record {
	rec := Record{
		CreatedAt:  time.Now(),
		Speedup:    series.Speedups(),
		Efficiency: series.Efficiencies(),
	}
	for _, e := range series.Entries() {
		rec.Threads = append(rec.Threads, e.Threads)
	}
	return rec
}

// Series rebuilds the benchmark series from the stored thread counts, or
// numbers the entries by position when the backend kept none.
func (r Record) Series() (*bench.Series, error) {
	if len(r.Threads) == 0 {
		return bench.FromValues(r.Speedup, r.Efficiency)
	}
	if len(r.Threads) != len(r.Speedup) || len(r.Threads) != len(r.Efficiency) {
		return nil, fmt.Errorf("%w: have %d thread counts for %d speedups and %d efficiencies",
			ErrMalformed, len(r.Threads), len(r.Speedup), len(r.Efficiency))
	}

	entries := make([]bench.Entry, len(r.Threads))
	for i, threads := range r.Threads {
		entries[i] = bench.Entry{Threads: threads, Speedup: r.Speedup[i], Efficiency: r.Efficiency[i]}
	}
	series, err := bench.FromEntries(entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return series, nil
}

func (r Record) validate() error {
	if len(r.Speedup) == 0 {
		return ErrEmptySeries
	}
	if len(r.Speedup) != len(r.Efficiency) {
		return fmt.Errorf("have %d speedups but %d efficiencies", len(r.Speedup), len(r.Efficiency))
	}
	return nil
}

// Open returns the Store backend named kind at path.
func Open(kind, path string) (Store, error) {
	switch kind {
	case "", "text":
		return NewTextLog(path), nil
	case "sqlite":
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown store kind %q", kind)
	}
}
