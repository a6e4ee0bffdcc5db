// Package asyncx provides small concurrency helpers used for provider
// fan-out and background loops.
package asyncx

import (
	"context"
	"sync"
)

// Result holds the outcome of a single settled async operation.
type Result[T any] struct {
	Value T
	Err   error
}

// AllSettled runs all fns concurrently and waits for every one to finish.
// It never short-circuits: it always returns one Result per fn, in input
// order.
func AllSettled[T any](ctx context.Context, fns ...func(context.Context) (T, error)) []Result[T] {
	results := make([]Result[T], len(fns))

	var wg sync.WaitGroup
	wg.Add(len(fns))
	for i, fn := range fns {
		go func() {
			defer wg.Done()
			v, err := fn(ctx)
			results[i] = Result[T]{Value: v, Err: err}
		}()
	}
	wg.Wait()
	return results
}

// All runs all fns concurrently and waits for every one to finish. The first
// error wins, but every goroutine is awaited so nothing leaks.
func All[T any](ctx context.Context, fns ...func(context.Context) (T, error)) ([]T, error) {
	settled := AllSettled(ctx, fns...)
	values := make([]T, len(settled))
	for i, r := range settled {
		if r.Err != nil {
			return nil, r.Err
		}
		values[i] = r.Value
	}
	return values, nil
}

// DoCtx fires fn in a goroutine unless ctx is already done.
func DoCtx(ctx context.Context, fn func(context.Context)) {
	go func() {
		select {
		case <-ctx.Done():
			return
		default:
			fn(ctx)
		}
	}()
}
