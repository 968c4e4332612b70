// Package core holds the channel plumbing shared by pipeline stages: a
// context-aware send, draining of abandoned input, and the worker and drain
// options carried on the context.
package core
