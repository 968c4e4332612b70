// Package rules defines the capability every per-record scorer implements:
// turn one record into at most one non-negative addend.
package rules

import (
	"context"
	"errors"
)

// ErrNoValue reports that a record carries nothing to add. It is an expected
// outcome, not a failure; the record contributes zero.
var ErrNoValue = errors.New("no value in record")

// Rule extracts the addend of a single record. Implementations must be safe
// for concurrent use and depend only on the record text.
type Rule interface {
	Name() string
	Extract(ctx context.Context, record string) (uint64, error)
}

// Func adapts an ordinary function to a named Rule.
type Func struct {
	name string
	fn   func(ctx context.Context, record string) (uint64, error)
}

func New(name string, fn func(ctx context.Context, record string) (uint64, error)) Func {
	return Func{name: name, fn: fn}
}

func (f Func) Name() string {
	return f.name
}

func (f Func) Extract(ctx context.Context, record string) (uint64, error) {
	return f.fn(ctx, record)
}

// FromOptional builds a Rule from a pure extractor that reports presence
// with a bool, mapping absence to ErrNoValue.
func FromOptional(name string, extract func(record string) (uint64, bool)) Func {
	return New(name, func(_ context.Context, record string) (uint64, error) {
		v, ok := extract(record)
		if !ok {
			return 0, ErrNoValue
		}
		return v, nil
	})
}

// IsNoValue reports whether err means "nothing to add".
func IsNoValue(err error) bool {
	return errors.Is(err, ErrNoValue)
}
