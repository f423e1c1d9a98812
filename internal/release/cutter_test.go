package release

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeyoll/wr/internal/config"
	"github.com/aeyoll/wr/internal/execx"
)

// fakeRunner records executed commands and scripts their results.
type fakeRunner struct {
	commands [][]string
	failOn   string
}

func (f *fakeRunner) Run(ctx context.Context, program string, args []string, opts ...execx.Option) (*execx.Result, error) {
	full := append([]string{program}, args...)
	f.commands = append(f.commands, full)

	if f.failOn != "" && strings.Contains(strings.Join(full, " "), f.failOn) {
		return &execx.Result{ExitCode: 1, Stderr: "boom"}, nil
	}
	return &execx.Result{}, nil
}

func confirmYes(string) (bool, error)   { return true, nil }
func confirmNo(string) (bool, error)    { return false, nil }
func confirmAbort(string) (bool, error) { return false, errors.New("dismissed") }

func TestCutRunsGitflowSequence(t *testing.T) {
	cfg := config.Default()
	runner := &fakeRunner{}

	err := NewCutter(runner, confirmYes, cfg).Cut(context.Background(), "2.0.1")
	require.NoError(t, err)

	require.Len(t, runner.commands, 3)
	assert.Equal(t, []string{"git", "flow", "release", "start", "2.0.1"}, runner.commands[0])
	assert.Equal(t, []string{"git", "flow", "release", "finish", "-m", "2.0.1", "2.0.1"}, runner.commands[1])
	assert.Equal(t, []string{"git", "checkout", "develop"}, runner.commands[2])
}

func TestCutDeclined(t *testing.T) {
	cfg := config.Default()
	runner := &fakeRunner{}

	err := NewCutter(runner, confirmNo, cfg).Cut(context.Background(), "2.0.1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUserDeclined)
	assert.Empty(t, runner.commands, "nothing runs after a declined prompt")
}

func TestCutAborted(t *testing.T) {
	cfg := config.Default()
	runner := &fakeRunner{}

	err := NewCutter(runner, confirmAbort, cfg).Cut(context.Background(), "2.0.1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUserAborted)
	assert.Empty(t, runner.commands)
}

func TestCutStopsOnCommandFailure(t *testing.T) {
	cfg := config.Default()
	runner := &fakeRunner{failOn: "release finish"}

	err := NewCutter(runner, confirmYes, cfg).Cut(context.Background(), "2.0.1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	require.Len(t, runner.commands, 2, "checkout must not run after a failed finish")
}
