package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ib-77/trebuchet/internal/logging"
	"github.com/ib-77/trebuchet/pkg/rop/core"
	"github.com/ib-77/trebuchet/pkg/rules"
)

// DefaultQueueSize is the capacity of the chunk and record queues.
const DefaultQueueSize = 64

// ErrInterrupted is returned when a run stopped before every record was
// scored, so its total would be partial.
var ErrInterrupted = errors.New("run interrupted")

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithChunkSize sets the largest number of bytes read at once.
func WithChunkSize(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.chunkSize = n
		}
	}
}

// WithQueueSize sets the capacity of the queues between stages. A full
// queue blocks its producer.
func WithQueueSize(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.queueSize = n
		}
	}
}

// WithWorkers caps the number of extraction tasks running at once. Zero
// leaves them uncapped.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n >= 0 {
			p.workers = n
		}
	}
}

// Pipeline wires a ChunkReader, a LineAssembler and a Distributor together.
type Pipeline struct {
	rule      rules.Rule
	chunkSize int
	queueSize int
	workers   int
}

func New(rule rules.Rule, opts ...Option) *Pipeline {
	p := &Pipeline{
		rule:      rule,
		chunkSize: DefaultChunkSize,
		queueSize: DefaultQueueSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run streams the file at path through the stages and returns the summary.
// It fails when the file cannot be opened or read, and with ErrInterrupted
// when ctx ends first or a task gave up; no partial summary is returned.
func (p *Pipeline) Run(ctx context.Context, path string) (Summary, error) {
	base := zerolog.Ctx(ctx).With().Str(logging.FieldRunID, uuid.NewString()).Logger()
	ctx = core.WithMaxWorkers(base.WithContext(ctx), p.workers)
	log := component(ctx, "pipeline")

	g, gctx := errgroup.WithContext(ctx)

	chunks := make(chan []byte, p.queueSize)
	records := make(chan string, p.queueSize)

	var summary Summary
	g.Go(func() error {
		return NewChunkReader(path, p.chunkSize).Run(gctx, chunks)
	})
	g.Go(func() error {
		return NewLineAssembler().Run(gctx, chunks, records)
	})
	g.Go(func() error {
		summary = NewDistributor(p.rule).Run(gctx, records)
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("run aborted")
		return Summary{}, err
	}
	if err := interrupted(ctx, summary); err != nil {
		log.Error().
			Err(err).
			Int("records", summary.Records).
			Int("cancelled", summary.Cancelled).
			Msg("run interrupted, total discarded")
		return Summary{}, err
	}

	log.Info().
		Str("rule", p.rule.Name()).
		Uint64("total", summary.Total).
		Int("records", summary.Records).
		Int("present", summary.Present).
		Int("absent", summary.Absent).
		Int("failed", summary.Failed).
		Msg("run complete")
	return summary, nil
}

func interrupted(ctx context.Context, summary Summary) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %w", ErrInterrupted, context.Cause(ctx))
	}
	if summary.Cancelled > 0 {
		return fmt.Errorf("%w: %d of %d tasks gave up", ErrInterrupted, summary.Cancelled, summary.Records)
	}
	return nil
}
