package pipeline

import (
	"bytes"
	"context"

	"github.com/ib-77/trebuchet/pkg/rop/core"
)

// LineAssembler turns a stream of byte chunks into newline-delimited
// records.
type LineAssembler struct{}

func NewLineAssembler() *LineAssembler {
	return &LineAssembler{}
}

// Run forwards every complete line found in the chunks read from in, without
// its trailing '\n', as soon as the line is complete. It closes out once in
// is closed. Content after the last '\n' is discarded.
func (a *LineAssembler) Run(ctx context.Context, in <-chan []byte, out chan<- string) error {
	defer close(out)

	log := component(ctx, "assembler")

	var buf []byte
	records := 0
	for chunk := range in {
		buf = append(buf, chunk...)

		for {
			line, rest, found := bytes.Cut(buf, []byte{'\n'})
			if !found {
				break
			}

			if !core.Send(ctx, out, string(line)) {
				discarded := core.DrainRemaining(ctx, in)
				log.Warn().
					Int("records", records).
					Int("chunks_discarded", discarded).
					Msg("record dropped, consumer is gone")
				return nil
			}
			records++
			buf = rest
		}
	}

	if len(buf) > 0 {
		log.Debug().Int("bytes", len(buf)).Msg("unterminated last line dropped")
	}
	log.Debug().Int("records", records).Msg("input closed")
	return nil
}
