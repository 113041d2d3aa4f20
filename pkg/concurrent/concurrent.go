package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ForEach runs action for each item on at most workers goroutines.
// It waits for all goroutines to finish. The first error cancels the context
// passed to the remaining actions and is returned.
// A non-positive workers value means no limit.
func ForEach[T any](ctx context.Context, items []T, workers int, action func(ctx context.Context, index int, item T) error) error {
	errGroup, groupCtx := errgroup.WithContext(ctx)
	if workers > 0 {
		errGroup.SetLimit(workers)
	}

	for idx, item := range items {
		if groupCtx.Err() != nil {
			break
		}
		idx, item := idx, item
		errGroup.Go(func() error {
			return action(groupCtx, idx, item)
		})
	}

	if err := errGroup.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Map applies mapFn to each item on at most workers goroutines, preserving order.
func Map[T any, R any](ctx context.Context, items []T, workers int, mapFn func(ctx context.Context, item T) (R, error)) ([]R, error) {
	out := make([]R, len(items))
	err := ForEach(ctx, items, workers, func(ctx context.Context, idx int, item T) error {
		r, err := mapFn(ctx, item)
		if err != nil {
			return err
		}
		out[idx] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Batch splits items into consecutive chunks of at most size elements.
// The chunks share the backing array of items.
func Batch[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = len(items)
	}
	if len(items) == 0 {
		return nil
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for idx := 0; idx < len(items); idx += size {
		end := min(idx+size, len(items))
		chunks = append(chunks, items[idx:end:end])
	}
	return chunks
}
