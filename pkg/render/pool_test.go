package render

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_VisitsEveryRowOnce(t *testing.T) {
	const rows = 257

	for _, workers := range []int{1, 2, 3, 8} {
		pool, err := NewPool(workers)
		require.NoError(t, err)
		assert.Equal(t, workers, pool.Workers())

		counts := make([]int32, rows)
		err = pool.Run(rows, func(y int) {
			atomic.AddInt32(&counts[y], 1)
		})
		require.NoError(t, err)

		for y, c := range counts {
			assert.Equal(t, int32(1), c, "workers %d row %d", workers, y)
		}
	}
}

func TestPool_PanicAbortsWithoutHanging(t *testing.T) {
	pool, err := NewPool(3)
	require.NoError(t, err)

	var ran atomic.Int32
	err = pool.Run(100, func(y int) {
		ran.Add(1)
		if y == 5 {
			panic("boom")
		}
	})

	assert.ErrorIs(t, err, ErrWorkerPanic)
	assert.ErrorContains(t, err, "row 5")
	assert.Less(t, ran.Load(), int32(100))
}

func TestNewPool_RejectsNonPositive(t *testing.T) {
	_, err := NewPool(0)
	assert.ErrorIs(t, err, ErrInvalidThreads)

	_, err = NewPool(-2)
	assert.ErrorIs(t, err, ErrInvalidThreads)
}
