package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/ib-77/trebuchet/internal/logging"
	"github.com/ib-77/trebuchet/pkg/rop/core"
)

// DefaultChunkSize is the largest chunk the reader emits.
const DefaultChunkSize = 16

var (
	// ErrOpen is returned when the input file cannot be opened.
	ErrOpen = errors.New("open input")
	// ErrRead is returned when the input fails before any data was read.
	ErrRead = errors.New("read input")
)

// ChunkReader emits the content of one file as a sequence of byte chunks.
type ChunkReader struct {
	path string
	size int
}

func NewChunkReader(path string, size int) *ChunkReader {
	if size <= 0 {
		size = DefaultChunkSize
	}
	return &ChunkReader{path: path, size: size}
}

// Run sends the file content to out and closes out when done, whatever the
// outcome. A read shorter than the chunk size is taken as the end of the
// file, which holds for regular files but not for pipes or sockets.
func (r *ChunkReader) Run(ctx context.Context, out chan<- []byte) error {
	defer close(out)

	f, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrOpen, r.path, err)
	}
	defer f.Close()

	log := component(ctx, "reader").With().Str("path", r.path).Logger()
	return readChunks(ctx, f, r.size, out, log)
}

func readChunks(ctx context.Context, src io.Reader, size int, out chan<- []byte, log zerolog.Logger) error {
	chunks := 0
	for {
		buf := make([]byte, size)
		n, err := src.Read(buf)
		if err != nil && !errors.Is(err, io.EOF) {
			if chunks == 0 && n == 0 {
				return fmt.Errorf("%w: %w", ErrRead, err)
			}
			log.Warn().Err(err).Int("chunks", chunks).Msg("read failed, treating as end of input")
		}

		if !core.Send(ctx, out, buf[:n]) {
			log.Warn().Int("chunks", chunks).Msg("chunk dropped, consumer is gone")
			return nil
		}
		chunks++

		if n < size || err != nil {
			log.Debug().Int("chunks", chunks).Msg("input exhausted")
			return nil
		}
	}
}

func component(ctx context.Context, name string) zerolog.Logger {
	return logging.Component(*zerolog.Ctx(ctx), name)
}
