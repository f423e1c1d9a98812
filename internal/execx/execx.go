// Package execx runs external commands with output capture, environment
// variable management and context support for cancellation and timeouts.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Result holds the output and exit status from a command execution.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Success reports whether the command exited with code zero.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Options configures command execution behavior.
type Options struct {
	// WorkingDir is the directory the command runs in.
	// Defaults to the current directory.
	WorkingDir string

	// Env holds environment variables appended to the current environment.
	Env map[string]string
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkingDir sets the working directory for the command.
func WithWorkingDir(dir string) Option {
	return func(o *Options) {
		o.WorkingDir = dir
	}
}

// WithEnv appends environment variables to the command's environment.
func WithEnv(env map[string]string) Option {
	return func(o *Options) {
		for k, v := range env {
			o.Env[k] = v
		}
	}
}

// Runner defines the interface for command execution.
// It exists so callers can swap in a fake for testing.
type Runner interface {
	// Run executes program with args and returns its captured output.
	// A non-zero exit code is reported through Result, not through the
	// returned error; the error is reserved for failures to run at all
	// (program missing, context cancelled).
	Run(ctx context.Context, program string, args []string, opts ...Option) (*Result, error)
}

// CommandRunner implements Runner using os/exec.
type CommandRunner struct{}

// NewRunner creates a new CommandRunner.
func NewRunner() *CommandRunner {
	return &CommandRunner{}
}

// Run executes the command and captures stdout and stderr.
func (c *CommandRunner) Run(ctx context.Context, program string, args []string, opts ...Option) (*Result, error) {
	options := &Options{Env: make(map[string]string)}
	for _, opt := range opts {
		opt(options)
	}

	cmd := exec.CommandContext(ctx, program, args...)
	cmd.Dir = options.WorkingDir

	if len(options.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range options.Env {
			cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
		}
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &Result{
		Stdout: strings.TrimRight(stdout.String(), "\n"),
		Stderr: strings.TrimRight(stderr.String(), "\n"),
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return nil, fmt.Errorf("failed to run %s: %w", program, err)
	}

	return result, nil
}
