package rules

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromOptional(t *testing.T) {
	t.Parallel()

	rule := FromOptional("len", func(record string) (uint64, bool) {
		return uint64(len(record)), record != ""
	})
	assert.Equal(t, "len", rule.Name())

	v, err := rule.Extract(context.Background(), "abcd")
	require.NoError(t, err)
	assert.Equal(t, uint64(4), v)

	_, err = rule.Extract(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoValue)
	assert.True(t, IsNoValue(err))
}

func TestIsNoValue_Wrapped(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNoValue(fmt.Errorf("game 3: %w", ErrNoValue)))
	assert.False(t, IsNoValue(errors.New("other")))
	assert.False(t, IsNoValue(nil))
}
