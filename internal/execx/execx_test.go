package execx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCapturesOutput(t *testing.T) {
	runner := NewRunner()

	result, err := runner.Run(context.Background(), "sh", []string{"-c", "echo out; echo err >&2"})
	require.NoError(t, err)
	assert.Equal(t, "out", result.Stdout)
	assert.Equal(t, "err", result.Stderr)
	assert.True(t, result.Success())
}

func TestRunReportsExitCode(t *testing.T) {
	runner := NewRunner()

	result, err := runner.Run(context.Background(), "sh", []string{"-c", "exit 3"})
	require.NoError(t, err)
	assert.Equal(t, 3, result.ExitCode)
	assert.False(t, result.Success())
}

func TestRunMissingProgram(t *testing.T) {
	runner := NewRunner()

	_, err := runner.Run(context.Background(), "definitely-not-a-real-program", nil)
	require.Error(t, err)
}

func TestRunEnv(t *testing.T) {
	runner := NewRunner()

	result, err := runner.Run(context.Background(), "sh", []string{"-c", "printf %s \"$WR_TEST_VALUE\""},
		WithEnv(map[string]string{"WR_TEST_VALUE": "set"}))
	require.NoError(t, err)
	assert.Equal(t, "set", result.Stdout)
}

func TestRunCancelledContext(t *testing.T) {
	runner := NewRunner()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, "sh", []string{"-c", "sleep 5"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
