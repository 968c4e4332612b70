package rop

import (
	"github.com/google/uuid"
)

type track uint8

const (
	trackNone track = iota
	trackSuccess
	trackFail
	trackCancel
)

// Result is the outcome of one unit of work: a value on the success track,
// or an error on the failure or cancel track. The zero Result is on no track
// and is treated as a failure with a nil error.
type Result[T any] struct {
	id     uuid.UUID
	result T
	err    error
	track  track
}

func Success[T any](r T) Result[T] {
	return Result[T]{id: uuid.New(), result: r, track: trackSuccess}
}

func Fail[T any](err error) Result[T] {
	return Result[T]{id: uuid.New(), err: err, track: trackFail}
}

func Cancel[T any](err error) Result[T] {
	return Result[T]{id: uuid.New(), err: err, track: trackCancel}
}

// CancelFrom moves a failed or cancelled result onto another value type,
// keeping its identity.
func CancelFrom[In, Out any](from Result[In]) Result[Out] {
	return Result[Out]{id: from.id, err: from.err, track: from.track}
}

func (r Result[T]) Result() T {
	return r.result
}

func (r Result[T]) Err() error {
	return r.err
}

func (r Result[T]) IsSuccess() bool {
	return r.track == trackSuccess
}

func (r Result[T]) IsFailure() bool {
	return r.track == trackFail
}

func (r Result[T]) IsCancel() bool {
	return r.track == trackCancel
}

// Id identifies the unit of work across track changes.
func (r Result[T]) Id() uuid.UUID {
	return r.id
}
