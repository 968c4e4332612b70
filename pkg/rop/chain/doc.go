// Package chain is a fluent wrapper around Result[T] for synchronous
// railway-oriented steps built on the solo primitives. Once a step fails,
// every later step is skipped and the failure reaches Finally unchanged.
//
//   - Start/FromValue: begin from a Result[T] or a plain value
//   - ThenTry: call a (U, error) step
//   - Map: transform the successful value
//   - Check: fail when a check returns an error
//   - Ensure: observe the successful value
//   - Finally: collapse the chain via per-track handlers
package chain
