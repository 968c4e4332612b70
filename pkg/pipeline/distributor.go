package pipeline

import (
	"context"
	"math/bits"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ib-77/trebuchet/pkg/rop"
	"github.com/ib-77/trebuchet/pkg/rop/core"
	"github.com/ib-77/trebuchet/pkg/rop/solo"
	"github.com/ib-77/trebuchet/pkg/rules"
)

// State is the phase a Distributor is in. It only moves forward.
type State int32

const (
	// Collecting: records are still arriving and tasks are being launched.
	Collecting State = iota
	// Draining: the record queue is closed, launched tasks are finishing.
	Draining
	// Done: every task has completed and the total is final.
	Done
)

func (s State) String() string {
	switch s {
	case Collecting:
		return "collecting"
	case Draining:
		return "draining"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Summary is the outcome of a run.
type Summary struct {
	Total     uint64
	Records   int
	Present   int
	Absent    int
	Failed    int
	// Cancelled counts tasks that never ran or gave up on a cancellation.
	Cancelled int
}

// Distributor runs the rule over every record concurrently and sums the
// results.
type Distributor struct {
	rule  rules.Rule
	state atomic.Int32
}

func NewDistributor(rule rules.Rule) *Distributor {
	return &Distributor{rule: rule}
}

func (d *Distributor) State() State {
	return State(d.state.Load())
}

type completion struct {
	seq    int
	record string
	result rop.Result[uint64]
}

// Run launches one task per record read from records and returns once the
// queue is closed and every task has completed. The number of tasks running
// at once is capped by core.WithMaxWorkers on ctx; zero means no cap.
//
// The total is only touched by the loop draining completions, in the order
// tasks finish.
func (d *Distributor) Run(ctx context.Context, records <-chan string) Summary {
	log := component(ctx, "distributor").With().Str("rule", d.rule.Name()).Logger()

	var tasks errgroup.Group
	if limit := core.MaxWorkers(ctx, 0); limit > 0 {
		tasks.SetLimit(limit)
	}

	completions := make(chan completion)
	go func() {
		defer close(completions)

		seq := 0
		for record := range records {
			seq++
			log.Debug().Int("seq", seq).Str("record", record).Msg("record received")

			c := completion{seq: seq, record: record}
			tasks.Go(func() error {
				c.result = solo.SafeTry(ctx, solo.Succeed(c.record), d.rule.Extract)
				completions <- c
				return nil
			})
		}
		d.transition(log, Draining)

		_ = tasks.Wait()
	}()

	var sum Summary
	for c := range completions {
		sum.account(ctx, log, c)
	}
	d.transition(log, Done)

	log.Debug().
		Uint64("total", sum.Total).
		Int("records", sum.Records).
		Int("failed", sum.Failed).
		Msg("all tasks completed")
	return sum
}

func (d *Distributor) transition(log zerolog.Logger, to State) {
	from := State(d.state.Swap(int32(to)))
	log.Debug().Stringer("from", from).Stringer("to", to).Msg("state changed")
}

// account records one completion in the summary. A value that would overflow
// the total is dropped and the task counted as failed.
func (s *Summary) account(ctx context.Context, log zerolog.Logger, c completion) {
	s.Records++
	task := log.With().Int("seq", c.seq).Stringer("task", c.result.Id()).Logger()

	solo.Finally(ctx, c.result,
		func(_ context.Context, v uint64) struct{} {
			total, carry := bits.Add64(s.Total, v, 0)
			if carry != 0 {
				s.Failed++
				task.Error().
					Uint64("value", v).
					Uint64("total", s.Total).
					Str("record", c.record).
					Msg("value dropped, total would overflow")
				return struct{}{}
			}
			s.Total = total
			s.Present++
			return struct{}{}
		},
		func(_ context.Context, err error) struct{} {
			switch {
			case rules.IsNoValue(err):
				s.Absent++
				task.Debug().Err(err).Msg("record has no value")
			case rop.IsCancellationError(err):
				s.Cancelled++
				task.Warn().Err(err).Msg("task gave up")
			default:
				s.Failed++
				event := task.Error().Err(err).Str("record", c.record)
				if pe, ok := rop.AsPanic(err); ok {
					event = event.Bytes("stack", pe.Stack)
				}
				event.Msg("task failed")
			}
			return struct{}{}
		},
		func(_ context.Context, err error) struct{} {
			s.Cancelled++
			task.Warn().Err(err).Msg("task cancelled")
			return struct{}{}
		})
}
