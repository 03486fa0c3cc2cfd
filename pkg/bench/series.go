// Package bench holds the speedup and efficiency series produced by a
// thread-count sweep.
package bench

import (
	"errors"
	"fmt"
)

var ErrOutOfOrder = errors.New("series entries must be appended in thread order")

// Entry is the measurement for one sweep step.
type Entry struct {
	Threads    int
	Speedup    float64
	Efficiency float64
}

// Series is the ordered list of sweep entries. Entry i always belongs to
// i+1 threads.
type Series struct {
	entries []Entry
}

// NewSeries returns an empty series with room for maxThreads entries.
func NewSeries(maxThreads int) *Series {
	if maxThreads < 0 {
		maxThreads = 0
	}
	return &Series{entries: make([]Entry, 0, maxThreads)}
}

// FromValues rebuilds a series from parallel speedup and efficiency slices,
// numbering the entries from one thread upward.
func FromValues(speedups, efficiencies []float64) (*Series, error) {
	if len(speedups) != len(efficiencies) {
		return nil, fmt.Errorf("have %d speedups but %d efficiencies", len(speedups), len(efficiencies))
	}

	s := NewSeries(len(speedups))
	for i := range speedups {
		s.entries = append(s.entries, Entry{
			Threads:    i + 1,
			Speedup:    speedups[i],
			Efficiency: efficiencies[i],
		})
	}
	return s, nil
}

// FromEntries rebuilds a series from entries that carry their own thread
// counts. They must run 1, 2, 3, ... like a sweep appends them.
func FromEntries(entries []Entry) (*Series, error) {
	s := NewSeries(len(entries))
	for _, e := range entries {
		if err := s.Append(e.Threads, e.Speedup, e.Efficiency); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Append adds the entry for the next thread count, which must be Len()+1.
func (s *Series) Append(threads int, speedup, efficiency float64) error {
	if want := len(s.entries) + 1; threads != want {
		return fmt.Errorf("%w: got %d threads, want %d", ErrOutOfOrder, threads, want)
	}
	s.entries = append(s.entries, Entry{Threads: threads, Speedup: speedup, Efficiency: efficiency})
	return nil
}

// Clear empties the series. Clearing an empty series is a no-op.
func (s *Series) Clear() {
	s.entries = s.entries[:0]
}

func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

func (s *Series) At(i int) Entry {
	return s.entries[i]
}

// Entries returns a copy of the entries.
func (s *Series) Entries() []Entry {
	if s == nil {
		return nil
	}
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Series) Speedups() []float64 {
	out := make([]float64, s.Len())
	for i := range out {
		out[i] = s.entries[i].Speedup
	}
	return out
}

func (s *Series) Efficiencies() []float64 {
	out := make([]float64, s.Len())
	for i := range out {
		out[i] = s.entries[i].Efficiency
	}
	return out
}

// Peak returns the entry with the highest speedup.
func (s *Series) Peak() (Entry, bool) {
	if s.Len() == 0 {
		return Entry{}, false
	}
	best := s.entries[0]
	for _, e := range s.entries[1:] {
		if e.Speedup > best.Speedup {
			best = e
		}
	}
	return best, true
}
