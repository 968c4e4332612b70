// Package pipeline streams a text file through three concurrent stages and
// sums a per-line score:
//
//	ChunkReader -> LineAssembler -> Distributor
//
// The reader emits fixed-size byte chunks, the assembler turns them into
// newline-terminated records, and the distributor runs one extraction task
// per record and adds up the results in whatever order they complete.
// Stages are joined by bounded channels; each channel has exactly one
// writer and one reader, so chunk and record order is preserved while task
// completion order is not.
//
// Only a failure to open (or to start reading) the input aborts a run.
// Records without a value, and tasks that fail or panic, contribute zero.
package pipeline
