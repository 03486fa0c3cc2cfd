package render

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

var (
	ErrInvalidThreads = errors.New("thread count must be positive")
	ErrWorkerPanic    = errors.New("worker panicked")
)

// A Pool is a fixed set of peer workers that pull row indices on demand.
//
// Rows are handed out one at a time through an unbuffered channel, so a worker
// stuck on an expensive row near the set does not hold back cheap rows far
// outside it.
type Pool struct {
	workers int
}

// NewPool configures a pool of exactly workers goroutines.
func NewPool(workers int) (*Pool, error) {
	if workers <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidThreads, workers)
	}
	return &Pool{workers: workers}, nil
}

func (p *Pool) Workers() int {
	return p.workers
}

// Run calls fn once for every row in [0, rows) and returns after every worker
// has exited. A panic in fn stops the remaining rows from being processed and
// is returned as ErrWorkerPanic.
func (p *Pool) Run(rows int, fn func(row int)) error {
	yChannel := make(chan int)

	go func() {
		for y := 0; y < rows; y++ {
			yChannel <- y
		}
		close(yChannel)
	}()

	var (
		failed   atomic.Bool
		errOnce  sync.Once
		firstErr error
	)

	wg := sync.WaitGroup{}
	wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer wg.Done()
			// Keep draining after a failure so the feeder can finish.
			for y := range yChannel {
				if failed.Load() {
					continue
				}
				if err := runRow(fn, y); err != nil {
					failed.Store(true)
					errOnce.Do(func() { firstErr = err })
				}
			}
		}()
	}
	wg.Wait()

	return firstErr
}

func runRow(fn func(int), y int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: row %d: %v", ErrWorkerPanic, y, r)
		}
	}()
	fn(y)
	return nil
}
