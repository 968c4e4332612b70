package solo

import (
	"context"

	"github.com/ib-77/trebuchet/pkg/rop"
)

func Succeed[T any](input T) rop.Result[T] {
	return rop.Success(input)
}

func Map[In any, Out any](ctx context.Context,
	input rop.Result[In],
	onSuccess func(ctx context.Context, r In) Out) rop.Result[Out] {

	if input.IsSuccess() {
		return rop.Success(onSuccess(ctx, input.Result()))
	}
	return rop.CancelFrom[In, Out](input)
}

func Tee[T any](ctx context.Context,
	input rop.Result[T],
	onSuccess func(ctx context.Context, r rop.Result[T])) rop.Result[T] {

	if input.IsSuccess() {
		onSuccess(ctx, input)
	}
	return input
}

func Try[In any, Out any](ctx context.Context, input rop.Result[In],
	onTryExecute func(ctx context.Context, r In) (Out, error)) rop.Result[Out] {

	if !input.IsSuccess() {
		return rop.CancelFrom[In, Out](input)
	}

	if err := ctx.Err(); err != nil {
		return rop.Cancel[Out](err)
	}

	out, err := onTryExecute(ctx, input.Result())
	if err != nil {
		return rop.Fail[Out](err)
	}
	return rop.Success(out)
}

// SafeTry behaves like Try but also moves a panic raised by onTryExecute onto
// the failure track as a *rop.PanicError.
func SafeTry[In any, Out any](ctx context.Context, input rop.Result[In],
	onTryExecute func(ctx context.Context, r In) (Out, error)) (res rop.Result[Out]) {

	defer func() {
		if v := recover(); v != nil {
			res = rop.Fail[Out](rop.Recovered(v))
		}
	}()

	return Try(ctx, input, onTryExecute)
}

func FailOnError[T any](ctx context.Context, input rop.Result[T],
	maybeErr func(ctx context.Context, in T) error) rop.Result[T] {

	if input.IsSuccess() {
		if err := maybeErr(ctx, input.Result()); err != nil {
			return rop.Fail[T](err)
		}
	}
	return input
}

func Finally[In, Out any](ctx context.Context, input rop.Result[In],
	onSuccess func(ctx context.Context, r In) Out,
	onError func(ctx context.Context, err error) Out,
	onCancel func(ctx context.Context, err error) Out) Out {

	if input.IsSuccess() {
		return onSuccess(ctx, input.Result())
	} else if input.IsCancel() {
		return onCancel(ctx, input.Err())
	} else {
		return onError(ctx, input.Err())
	}
}
