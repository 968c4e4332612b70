package chain

import (
	"context"

	"github.com/ib-77/trebuchet/pkg/rop"
	"github.com/ib-77/trebuchet/pkg/rop/solo"
)

// Chain carries a Result and the context every step runs with.
type Chain[T any] struct {
	ctx    context.Context
	result rop.Result[T]
}

// Start continues from an existing result, on whatever track it is.
func Start[T any](ctx context.Context, result rop.Result[T]) *Chain[T] {
	return &Chain[T]{ctx: ctx, result: result}
}

// FromValue starts on the success track.
func FromValue[T any](ctx context.Context, value T) *Chain[T] {
	return Start(ctx, rop.Success(value))
}

func (c *Chain[T]) Result() rop.Result[T] {
	return c.result
}

// ThenTry runs step on a successful value; an error moves the chain to the
// failure track.
func ThenTry[T, U any](c *Chain[T], step func(context.Context, T) (U, error)) *Chain[U] {
	return Start(c.ctx, solo.Try(c.ctx, c.result, step))
}

// Map transforms a successful value. Failures pass through retyped.
func Map[T, U any](c *Chain[T], transform func(context.Context, T) U) *Chain[U] {
	return Start(c.ctx, solo.Map(c.ctx, c.result, transform))
}

// Check moves the chain to the failure track when check returns an error.
func (c *Chain[T]) Check(check func(context.Context, T) error) *Chain[T] {
	return Start(c.ctx, solo.FailOnError(c.ctx, c.result, check))
}

// Ensure observes a successful value without changing the result.
func (c *Chain[T]) Ensure(observe func(context.Context, T)) *Chain[T] {
	return Start(c.ctx, solo.Tee(c.ctx, c.result, func(ctx context.Context, r rop.Result[T]) {
		observe(ctx, r.Result())
	}))
}

// Finally folds the chain into one value, picking the handler of its track.
func Finally[T, U any](c *Chain[T],
	onSuccess func(context.Context, T) U,
	onFailure func(context.Context, error) U,
	onCancel func(context.Context, error) U) U {

	return solo.Finally(c.ctx, c.result, onSuccess, onFailure, onCancel)
}
