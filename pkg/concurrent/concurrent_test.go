package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForEach(t *testing.T) {
	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}

	t.Run("VisitsAll", func(t *testing.T) {
		var sum atomic.Int64
		err := ForEach(context.Background(), items, 4, func(_ context.Context, idx int, item int) error {
			assert.Equal(t, idx, item)
			sum.Add(int64(item))
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, int64(4950), sum.Load())
	})

	t.Run("RespectsLimit", func(t *testing.T) {
		var running, peak atomic.Int32
		err := ForEach(context.Background(), items, 3, func(context.Context, int, int) error {
			cur := running.Add(1)
			for {
				old := peak.Load()
				if cur <= old || peak.CompareAndSwap(old, cur) {
					break
				}
			}
			running.Add(-1)
			return nil
		})
		require.NoError(t, err)
		require.LessOrEqual(t, peak.Load(), int32(3))
	})

	t.Run("FirstError", func(t *testing.T) {
		boom := errors.New("boom")
		err := ForEach(context.Background(), items, 2, func(_ context.Context, idx int, _ int) error {
			if idx == 10 {
				return boom
			}
			return nil
		})
		require.ErrorIs(t, err, boom)
	})

	t.Run("CancelledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var calls atomic.Int32
		err := ForEach(ctx, items, 2, func(context.Context, int, int) error {
			calls.Add(1)
			return nil
		})
		require.ErrorIs(t, err, context.Canceled)
		require.Zero(t, calls.Load())
	})
}

func TestMap(t *testing.T) {
	out, err := Map(context.Background(), []int{1, 2, 3, 4, 5}, 2, func(_ context.Context, v int) (int, error) {
		return v * v, nil
	})
	require.NoError(t, err)
	require.Equal(t, []int{1, 4, 9, 16, 25}, out)

	_, err = Map(context.Background(), []int{1, 2}, 0, func(context.Context, int) (int, error) {
		return 0, errors.New("nope")
	})
	require.Error(t, err)
}

func TestBatch(t *testing.T) {
	require.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, Batch([]int{1, 2, 3, 4, 5}, 2))
	require.Equal(t, [][]int{{1, 2, 3}}, Batch([]int{1, 2, 3}, 0))
	require.Nil(t, Batch([]int(nil), 3))
}
