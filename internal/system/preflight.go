// Package system runs the preflight checks that must pass before a
// release may be cut. Every check is fatal except where noted; they run
// before any local or remote mutation.
package system

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aeyoll/wr/internal/config"
	"github.com/aeyoll/wr/internal/execx"
)

// gitlabCIFile is the pipeline definition the repository should carry.
const gitlabCIFile = ".gitlab-ci.yml"

// gitFlowAVHIdentifier distinguishes the AVH edition of git-flow, the only
// one whose `release finish` behaves as the release flow expects.
const gitFlowAVHIdentifier = "AVH"

// ErrGitNotFound is returned when git is not installed.
var ErrGitNotFound = errors.New("\"git\" not found, please install git")

// ErrGitFlowNotFound is returned when git-flow is not installed.
var ErrGitFlowNotFound = errors.New("\"git-flow\" not found, please install git-flow")

// ErrGitFlowWrongVersion is returned when the installed git-flow is not
// the AVH edition.
var ErrGitFlowWrongVersion = errors.New("wrong git-flow version installed, please install git-flow-avh")

// ErrGitFlowNotInitialized is returned when the repository has no git-flow
// configuration; `git flow init` has not been run.
var ErrGitFlowNotInitialized = errors.New("git-flow is not initialized, please run 'git flow init'")

// ErrWrongBranch is returned when the integration branch is not the one
// checked out.
var ErrWrongBranch = errors.New("wrong branch checked out")

// ErrRepositoryDirty is returned when the worktree has uncommitted or
// untracked changes.
var ErrRepositoryDirty = errors.New("repository is dirty, commit or stash your changes first")

// checkerRepository is the slice of the repository the checker needs.
type checkerRepository interface {
	CurrentBranch(ctx context.Context) (string, error)
	HasUpstream(ctx context.Context, branch string) error
	IsClean(ctx context.Context) (bool, error)
}

// Checker runs the preflight checks in a fixed order and stops at the
// first failure.
type Checker struct {
	runner execx.Runner
	repo   checkerRepository
	cfg    *config.Config
	logger *slog.Logger
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithCheckerLogger sets the logger used by the checker.
func WithCheckerLogger(logger *slog.Logger) CheckerOption {
	return func(c *Checker) {
		c.logger = logger
	}
}

// NewChecker creates a preflight checker.
func NewChecker(runner execx.Runner, repo checkerRepository, cfg *config.Config, opts ...CheckerOption) *Checker {
	c := &Checker{
		runner: runner,
		repo:   repo,
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run performs every preflight check. The first failing check aborts the
// run; a missing pipeline definition only warns.
func (c *Checker) Run(ctx context.Context) error {
	c.logger.Debug("checking for git")
	if err := c.checkGit(ctx); err != nil {
		return err
	}

	c.logger.Debug("checking for git-flow")
	if err := c.checkGitFlow(ctx); err != nil {
		return err
	}

	c.logger.Debug("checking that the repository is on the integration branch")
	if err := c.checkBranch(ctx); err != nil {
		return err
	}

	c.logger.Debug("checking that upstreams are configured")
	if err := c.repo.HasUpstream(ctx, c.cfg.Branches.Stable); err != nil {
		return err
	}
	if err := c.repo.HasUpstream(ctx, c.cfg.Branches.Integration); err != nil {
		return err
	}

	c.logger.Debug("checking for " + gitlabCIFile)
	if _, err := os.Stat(gitlabCIFile); err != nil {
		c.logger.Warn(gitlabCIFile + " not found")
	}

	c.logger.Debug("checking that the worktree is clean")
	return c.checkClean(ctx)
}

func (c *Checker) checkGit(ctx context.Context) error {
	result, err := c.runner.Run(ctx, "git", []string{"version"})
	if err != nil || !result.Success() {
		return ErrGitNotFound
	}
	return nil
}

func (c *Checker) checkGitFlow(ctx context.Context) error {
	result, err := c.runner.Run(ctx, "git", []string{"flow", "version"})
	if err != nil || !result.Success() {
		return ErrGitFlowNotFound
	}
	if !strings.Contains(result.Stdout, gitFlowAVHIdentifier) {
		return ErrGitFlowWrongVersion
	}

	result, err = c.runner.Run(ctx, "git", []string{"flow", "config"})
	if err != nil || !result.Success() {
		return ErrGitFlowNotInitialized
	}
	return nil
}

func (c *Checker) checkBranch(ctx context.Context) error {
	branch, err := c.repo.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	if branch != c.cfg.Branches.Integration {
		return fmt.Errorf("%w: please checkout the %s branch", ErrWrongBranch, c.cfg.Branches.Integration)
	}
	return nil
}

func (c *Checker) checkClean(ctx context.Context) error {
	clean, err := c.repo.IsClean(ctx)
	if err != nil {
		return err
	}
	if !clean {
		return ErrRepositoryDirty
	}
	return nil
}
