package core

import "context"

// Send hands v to out, giving up when ctx is done. It reports whether v was
// delivered.
func Send[T any](ctx context.Context, out chan<- T, v T) bool {
	if ctx.Err() != nil {
		return false
	}

	select {
	case out <- v:
		return true
	case <-ctx.Done():
		return false
	}
}

// DrainRemaining discards whatever is left on in, unless ctx says not to
// (see WithDrainOnCancel), so the upstream producer can finish. It returns
// the number of discarded values.
func DrainRemaining[T any](ctx context.Context, in <-chan T) int {
	if !DrainOnCancel(ctx, true) {
		return 0
	}

	n := 0
	for range in {
		n++
	}
	return n
}
