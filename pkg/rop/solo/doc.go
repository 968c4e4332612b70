// Package solo contains single-value, synchronous ROP primitives that operate
// on Result[T]. These functions form the core building blocks for error-aware
// pipelines without channels.
//
// Highlights:
// - Succeed: put a value on the success track
// - FailOnError: move a value to the failure track when a check fails
// - Map: transform successful values
// - Try/SafeTry: call a function (Out, error) and convert error (or panic) to failure
// - Tee: side-effect helper
// - Finally: reduce to a concrete value via success/error/cancel handlers
package solo
