package rop

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
)

var ErrCancelled = errors.New("operation cancelled")

// PanicError is a panic recovered from a unit of work.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it was itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Recovered wraps a value returned by recover(). Call it from the deferred
// function so the captured stack still points at the panic site.
func Recovered(v any) *PanicError {
	return &PanicError{Value: v, Stack: debug.Stack()}
}

// AsPanic returns the PanicError in err's chain, if any.
func AsPanic(err error) (*PanicError, bool) {
	var pe *PanicError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// IsCancellationError reports whether err means the work was abandoned
// rather than failed.
func IsCancellationError(err error) bool {
	return errors.Is(err, ErrCancelled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
