package utils

import (
	"context"
	"time"
)

// Result is the single outcome of an Async operation.
type Result[T any] struct {
	Value T
	Err   error
}

// Async runs fn once after delay and delivers its outcome on the returned
// channel, which receives exactly one value. A zero delay runs fn without
// waiting. There is no cancellation: once started, fn always completes.
func Async[T any](delay time.Duration, fn func() (T, error)) <-chan Result[T] {
	out := make(chan Result[T], 1)
	go func() {
		if delay > 0 {
			time.Sleep(delay)
		}
		v, err := fn()
		out <- Result[T]{Value: v, Err: err}
	}()
	return out
}

// Await waits for an Async result or for ctx to end, whichever comes first.
// An abandoned operation still runs to completion in the background.
func Await[T any](ctx context.Context, ch <-chan Result[T]) (T, error) {
	select {
	case r := <-ch:
		return r.Value, r.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
