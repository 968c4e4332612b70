package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ib-77/trebuchet/pkg/rop/core"
)

func assemble(t *testing.T, ctx context.Context, chunks ...string) []string {
	t.Helper()

	in := make(chan []byte, len(chunks))
	for _, c := range chunks {
		in <- []byte(c)
	}
	close(in)

	out := make(chan string)
	errCh := make(chan error, 1)
	go func() { errCh <- NewLineAssembler().Run(ctx, in, out) }()

	var got []string
	for r := range out {
		got = append(got, r)
	}
	require.NoError(t, <-errCh)
	return got
}

// split cuts s into pieces of at most size bytes.
func split(s string, size int) []string {
	var pieces []string
	for len(s) > size {
		pieces = append(pieces, s[:size])
		s = s[size:]
	}
	return append(pieces, s)
}

func TestLineAssembler_SingleChunk(t *testing.T) {
	defer goleak.VerifyNone(t)

	tests := []struct {
		input string
		want  []string
	}{
		{"abc\n123\ncome-with-me\n", []string{"abc", "123", "come-with-me"}},
		{"neah\nnee\nwee\n", []string{"neah", "nee", "wee"}},
		{"neah\nnee\nwee\nfeh\nleh\njeh\ntee\n", []string{"neah", "nee", "wee", "feh", "leh", "jeh", "tee"}},
		{"neah\nnee\nwee\nfeh\nleh\njeh\ntee", []string{"neah", "nee", "wee", "feh", "leh", "jeh"}},
		{"\n\nx\n", []string{"", "", "x"}},
		{"no newline", nil},
	}

	for _, tt := range tests {
		t.Run(strings.ReplaceAll(tt.input, "\n", `\n`), func(t *testing.T) {
			got := assemble(t, context.Background(), tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("records mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLineAssembler_AnyChunking(t *testing.T) {
	defer goleak.VerifyNone(t)

	const input = "abc\n123\ncome-with-me\n"
	want := []string{"abc", "123", "come-with-me"}

	for size := 1; size <= len(input); size++ {
		got := assemble(t, context.Background(), split(input, size)...)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("chunk size %d (-want +got):\n%s", size, diff)
		}
	}
}

func TestLineAssembler_EmptyChunks(t *testing.T) {
	defer goleak.VerifyNone(t)

	got := assemble(t, context.Background(), "", "ab", "", "c\nd", "", "\n", "")
	assert.Equal(t, []string{"abc", "d"}, got)
}

func TestLineAssembler_ForwardsBeforeInputCloses(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx := context.Background()
	in := make(chan []byte)
	out := make(chan string)
	done := make(chan error, 1)
	go func() { done <- NewLineAssembler().Run(ctx, in, out) }()

	in <- []byte("first\nsec")
	assert.Equal(t, "first", <-out)

	in <- []byte("ond\n")
	assert.Equal(t, "second", <-out)

	close(in)
	_, open := <-out
	assert.False(t, open)
	require.NoError(t, <-done)
}

func TestLineAssembler_ConsumerGoneDrainsInput(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	chunks := make(chan []byte)
	go func() {
		defer close(chunks)
		for _, c := range []string{"a\nb\n", "c\n", "d\n"} {
			chunks <- []byte(c)
		}
	}()
	out := make(chan string)

	require.NoError(t, NewLineAssembler().Run(ctx, chunks, out))

	_, open := <-out
	assert.False(t, open)
	_, open = <-chunks
	assert.False(t, open, "input should have been drained to its end")
}

func TestLineAssembler_ConsumerGoneWithoutDraining(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(core.WithDrainOnCancel(context.Background(), false))
	cancel()

	in := make(chan []byte, 3)
	in <- []byte("a\n")
	in <- []byte("b\n")
	in <- []byte("c\n")
	close(in)

	out := make(chan string)
	require.NoError(t, NewLineAssembler().Run(ctx, in, out))
	assert.Len(t, in, 2)
}
