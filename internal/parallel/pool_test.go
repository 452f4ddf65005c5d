package parallel

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_MapOnPreservesOrder(t *testing.T) {
	p := New(4)
	defer p.Shutdown()

	items := []int{5, 4, 3, 2, 1, 0}
	results := MapOn(p, items, func(n int) int {
		return n * n
	})

	require.Len(t, results, len(items))
	for i, n := range items {
		assert.Equal(t, n*n, results[i])
	}
}

func TestMap_RunsConcurrently(t *testing.T) {
	var inFlight atomic.Int32
	var maxSeen atomic.Int32

	items := make([]int, 32)
	Map(context.Background(), items, func(int) int {
		n := inFlight.Add(1)
		for {
			cur := maxSeen.Load()
			if n <= cur || maxSeen.CompareAndSwap(cur, n) {
				break
			}
		}
		defer inFlight.Add(-1)
		return 0
	})

	assert.Greater(t, maxSeen.Load(), int32(1), "expected more than one task in flight at once")
}

func TestMap_Empty(t *testing.T) {
	results := Map(context.Background(), []int{}, func(n int) int { return n })
	assert.Len(t, results, 0)
}

func TestMap_CancelledContextStillProducesAllResults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := []int{1, 2, 3}
	results := Map(ctx, items, func(n int) int { return n + 1 })

	require.Len(t, results, 3)
	assert.Equal(t, []int{2, 3, 4}, results)
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	p := New(2)
	p.Shutdown()
	p.Shutdown()

	err := p.Submit(func() {})
	assert.ErrorIs(t, err, ErrPoolShutdown)
}
