package task

import (
	"context"
	"errors"
	"fmt"
)

// ErrPoolStopped is the outcome of work submitted to a stopped pool.
var ErrPoolStopped = errors.New("worker pool stopped")

// Future is the handle for a submitted unit of work. It resolves exactly
// once to either a value or an error.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func (f *Future[T]) resolve(val T, err error) {
	f.val = val
	f.err = err
	close(f.done)
}

// Await blocks until the work completes or ctx is done. Abandoning a future
// does not cancel the work; once submitted it runs to completion.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Submit schedules fn on the pool and returns its future. A panic inside fn
// resolves the future with an error instead of crashing the worker.
//
// Go has no generic methods, so this is a package function over the pool.
func Submit[T any](p *Pool, fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	if p.stopped.Load() {
		var zero T
		f.resolve(zero, ErrPoolStopped)
		return f
	}

	p.enqueue(func() {
		defer func() {
			if r := recover(); r != nil {
				var zero T
				f.resolve(zero, fmt.Errorf("unit of work panicked: %v", r))
			}
		}()
		f.resolve(fn())
	}, func() {
		var zero T
		f.resolve(zero, ErrPoolStopped)
	})

	return f
}
