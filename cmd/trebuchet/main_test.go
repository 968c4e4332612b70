package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/trebuchet/pkg/pipeline"
)

const games = `Game 1: 3 blue, 4 red; 1 red, 2 green, 6 blue; 2 green
Game 2: 1 blue, 2 green; 3 green, 4 blue, 1 red; 1 green, 1 blue
Game 3: 8 green, 6 blue, 20 red; 5 blue, 4 red, 13 green; 5 green, 1 red
Game 4: 1 green, 3 red, 6 blue; 3 green, 6 red; 3 green, 15 blue, 14 red
Game 5: 6 red, 1 blue, 3 green; 2 blue, 1 red, 2 green
`

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCalibrate(t *testing.T) {
	digits := writeInput(t, "1abc2\npqr3stu8vwx\na1b2c3d4e5f\ntreb7uchet\n")
	words := writeInput(t, "two1nine\neightwothree\nabcone2threexyz\nxtwone3four\n"+
		"4nineeightseven2\nzoneight234\n7pqrstsixteen\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"digits", []string{"calibrate", "-f", digits}, "142\n"},
		{"words", []string{"calibrate", "--words", "--file", words}, "281\n"},
		{"words with tiny chunks", []string{"calibrate", "--words", "-f", words, "--chunk-size", "1", "--queue-size", "1"}, "281\n"},
		{"words with one worker", []string{"calibrate", "--words", "-f", words, "--workers", "1"}, "281\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestCubes(t *testing.T) {
	input := writeInput(t, games)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"possible", []string{"cubes", "-f", input}, "8\n"},
		{"possible with a bigger bag", []string{"cubes", "-f", input, "--red", "20", "--blue", "15"}, "15\n"},
		{"power", []string{"cubes", "--power", "-f", input}, "2286\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestCubesLimitsFromEnvironment(t *testing.T) {
	t.Setenv("TREBUCHET_LIMITS_RED", "20")
	t.Setenv("TREBUCHET_LIMITS_BLUE", "15")

	out, _, err := execute(t, "cubes", "-f", writeInput(t, games))
	require.NoError(t, err)
	assert.Equal(t, "15\n", out)
}

func TestInputFromConfigFile(t *testing.T) {
	input := writeInput(t, "1abc2\ntreb7uchet\n")
	cfg := filepath.Join(t.TempDir(), "trebuchet.yml")
	require.NoError(t, os.WriteFile(cfg, []byte("input: "+input+"\n"), 0o600))

	out, _, err := execute(t, "calibrate", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "89\n", out)
}

func TestMissingInput(t *testing.T) {
	out, _, err := execute(t, "calibrate", "-f", filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, pipeline.ErrOpen)
	assert.Empty(t, out)
}

func TestInterruptedRunPrintsNoTotal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"calibrate", "-f", writeInput(t, "1abc2\ntreb7uchet\n")})

	err := cmd.ExecuteContext(ctx)
	require.ErrorIs(t, err, pipeline.ErrInterrupted)
	assert.Empty(t, stdout.String())
}

func TestInvalidConfiguration(t *testing.T) {
	input := writeInput(t, "1\n")

	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{"zero chunk size", []string{"calibrate", "-f", input, "--chunk-size", "0"}, "pipeline.chunk_size"},
		{"negative workers", []string{"calibrate", "-f", input, "--workers=-2"}, "pipeline.workers"},
		{"unknown log level", []string{"calibrate", "-f", input, "--log-level", "loud"}, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Empty(t, out)
		})
	}
}

func TestLogsGoToStderr(t *testing.T) {
	input := writeInput(t, "1abc2\n")

	out, logs, err := execute(t, "calibrate", "-f", input, "--log-level", "info", "--log-format", "json")
	require.NoError(t, err)

	assert.Equal(t, "12\n", out)
	assert.Contains(t, logs, `"message":"run complete"`)
	assert.Contains(t, logs, `"total":12`)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version", "--log-level", "loud")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "trebuchet "), out)
}
