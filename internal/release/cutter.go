package release

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aeyoll/wr/internal/config"
	"github.com/aeyoll/wr/internal/execx"
)

// ConfirmFunc asks the user a yes/no question. It returns false when the
// user declines and an error when the prompt is dismissed without an
// answer.
type ConfirmFunc func(question string) (bool, error)

// Cutter cuts a release through the external git-flow command. The
// branch-cut itself is opaque: wr only starts and finishes the release and
// checks the integration branch out again afterwards.
type Cutter struct {
	runner  execx.Runner
	confirm ConfirmFunc
	cfg     *config.Config
	logger  *slog.Logger
}

// CutterOption configures a Cutter.
type CutterOption func(*Cutter)

// WithCutterLogger sets the logger used by the cutter.
func WithCutterLogger(logger *slog.Logger) CutterOption {
	return func(c *Cutter) {
		c.logger = logger
	}
}

// NewCutter creates a release cutter.
func NewCutter(runner execx.Runner, confirm ConfirmFunc, cfg *config.Config, opts ...CutterOption) *Cutter {
	c := &Cutter{
		runner:  runner,
		confirm: confirm,
		cfg:     cfg,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cut confirms with the user, then runs git-flow release start/finish for
// the given tag and checks out the integration branch again. Declining the
// prompt is a controlled stop, not a technical error.
func (c *Cutter) Cut(ctx context.Context, tag string) error {
	c.logger.Info("this will create a release tag", "tag", tag)

	confirmed, err := c.confirm("Do you want to continue?")
	if err != nil {
		return ErrUserAborted
	}
	if !confirmed {
		return ErrUserDeclined
	}

	c.logger.Info("creating release", "tag", tag)

	if err := c.gitflow(ctx, "release", "start", tag); err != nil {
		return err
	}
	if err := c.gitflow(ctx, "release", "finish", "-m", tag, tag); err != nil {
		return err
	}
	return c.git(ctx, "checkout", c.cfg.Branches.Integration)
}

func (c *Cutter) gitflow(ctx context.Context, args ...string) error {
	return c.git(ctx, append([]string{"flow"}, args...)...)
}

func (c *Cutter) git(ctx context.Context, args ...string) error {
	// git-flow finish merges; make sure git never opens an editor.
	result, err := c.runner.Run(ctx, "git", args,
		execx.WithEnv(map[string]string{"GIT_MERGE_AUTOEDIT": "no"}))
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("git %v failed: %s", args, result.Stderr)
	}
	return nil
}
