package core

import "context"

type workersKey struct{}

type drainKey struct{}

// WithMaxWorkers caps how many tasks a stage runs at once. Zero or a
// negative value means no cap.
func WithMaxWorkers(ctx context.Context, n int) context.Context {
	return context.WithValue(ctx, workersKey{}, n)
}

// MaxWorkers returns the cap set by WithMaxWorkers, or def when none is set.
func MaxWorkers(ctx context.Context, def int) int {
	if n, ok := ctx.Value(workersKey{}).(int); ok {
		return n
	}
	return def
}

// WithDrainOnCancel tells a stage whose consumer went away whether to keep
// reading its input to the end (discarding it) or to stop reading at once.
func WithDrainOnCancel(ctx context.Context, drain bool) context.Context {
	return context.WithValue(ctx, drainKey{}, drain)
}

// DrainOnCancel returns the choice set by WithDrainOnCancel, or def.
func DrainOnCancel(ctx context.Context, def bool) bool {
	if drain, ok := ctx.Value(drainKey{}).(bool); ok {
		return drain
	}
	return def
}
