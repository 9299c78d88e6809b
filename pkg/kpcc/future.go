package kpcc

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/panics"
)

// Future is the pending result of a call started with Async. It resolves
// exactly once, with either a value or an error.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Async runs fn on its own goroutine and returns immediately. A panic in fn
// resolves the future with a KindOther error.
//
//	f := kpcc.Async(ctx, func(ctx context.Context) ([]kpcc.Article, error) {
//		return client.Articles(ctx, kpcc.ArticleQuery{Limit: 10})
//	})
//	articles, err := f.Await(ctx)
func Async[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		var catcher panics.Catcher
		catcher.Try(func() {
			f.value, f.err = fn(ctx)
		})
		if recovered := catcher.Recovered(); recovered != nil {
			var zero T
			f.value = zero
			f.err = newError(KindOther, "async", "", fmt.Errorf("panic: %w", recovered.AsError()))
			return
		}
		if f.err != nil {
			var zero T
			f.value = zero
		}
	}()
	return f
}

// Done is closed once the future has resolved.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the future resolves or ctx ends. The result is delivered
// on the calling goroutine. If ctx ends first, the underlying call keeps
// running and its result can still be collected by a later Await.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Resolved reports whether the future has resolved, without blocking.
func (f *Future[T]) Resolved() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}
