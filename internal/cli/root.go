// Package cli wires the release flow behind a cobra command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aeyoll/wr/internal/cicd"
	"github.com/aeyoll/wr/internal/config"
	"github.com/aeyoll/wr/internal/execx"
	"github.com/aeyoll/wr/internal/gitrepo"
	"github.com/aeyoll/wr/internal/prompt"
	"github.com/aeyoll/wr/internal/release"
	"github.com/aeyoll/wr/internal/system"
)

// options holds the command-line flags.
type options struct {
	environment string
	semverType  string
	deploy      bool
	force       bool
	verbose     int
}

// NewRootCommand builds the wr command.
func NewRootCommand(version string) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "wr",
		Short: "Cut git-flow releases and drive their deployment",
		Long: `wr automates the release workflow of a two-branch git-flow repository:
it computes the next semantic version from the existing tags, cuts the
release through git-flow, pushes the result and triggers the matching
GitLab deploy job.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.environment, "environment", "e", "production",
		"target environment (production or staging)")
	flags.StringVarP(&opts.semverType, "semver-type", "t", "patch",
		"version field to bump (major, minor or patch)")
	flags.BoolVarP(&opts.deploy, "deploy", "d", false,
		"trigger the deploy job once the release is pushed")
	flags.BoolVarP(&opts.force, "force", "f", false,
		"proceed even when the repository is up-to-date with its remote")
	flags.CountVarP(&opts.verbose, "verbose", "v",
		"increase log verbosity")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	logger := newLogger(opts.verbose)
	slog.SetDefault(logger)
	ctx := cmd.Context()

	env, err := release.ParseEnvironment(opts.environment)
	if err != nil {
		return err
	}
	kind, err := release.ParseIncrementKind(opts.semverType)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	repo, err := gitrepo.Open(ctx, &gitrepo.Options{
		RemoteName: cfg.Remote,
		Auth:       gitrepo.NewSSHAgentProvider(),
	})
	if err != nil {
		return err
	}

	// The repository's git-flow configuration is authoritative for the
	// long-lived branch names; the config file only provides fallbacks.
	if stable, flowErr := repo.GitflowBranch("master"); flowErr == nil {
		cfg.Branches.Stable = stable
	}
	if integration, flowErr := repo.GitflowBranch("develop"); flowErr == nil {
		cfg.Branches.Integration = integration
	}

	runner := execx.NewRunner()

	checker := system.NewChecker(runner, repo, cfg, system.WithCheckerLogger(logger))
	if err := checker.Run(ctx); err != nil {
		return err
	}

	gate := release.NewGate(repo, cfg,
		release.WithForce(opts.force),
		release.WithGateLogger(logger))
	if _, err := gate.Check(ctx); err != nil {
		return err
	}

	if env == release.Production {
		tags, tagsErr := repo.Tags(ctx)
		if tagsErr != nil {
			return tagsErr
		}
		version := release.NextVersion(tags, kind)

		cutter := release.NewCutter(runner, prompt.Confirm, cfg,
			release.WithCutterLogger(logger))
		if err := cutter.Cut(ctx, version.String()); err != nil {
			if controlledStop(err) {
				logger.Info("cancelling")
				return nil
			}
			return err
		}
	}

	publisher := release.NewPublisher(repo, cfg, release.WithPublisherLogger(logger))
	if err := publisher.Publish(ctx, env); err != nil {
		return err
	}

	if !opts.deploy {
		return nil
	}
	return deploy(ctx, cfg, repo, env, logger)
}

func deploy(
	ctx context.Context,
	cfg *config.Config,
	repo *gitrepo.Repo,
	env release.Environment,
	logger *slog.Logger,
) error {
	if cfg.GitLab.Token == "" {
		return fmt.Errorf("no GitLab token configured, set %s", "WR_GITLAB_TOKEN")
	}

	project := cfg.GitLab.Project
	if project == "" {
		url, err := repo.RemoteURL()
		if err != nil {
			return err
		}
		project, err = gitrepo.ProjectFromRemoteURL(url)
		if err != nil {
			return err
		}
	}

	service, err := cicd.NewGitLabService(cfg.GitLab.Host, cfg.GitLab.Token, project)
	if err != nil {
		return err
	}

	orchestrator := cicd.NewOrchestrator(service,
		cicd.WithLogger(logger),
		cicd.WithPollInterval(cfg.Deploy.PollInterval()),
		cicd.WithLocateAttempts(cfg.Deploy.LocateAttempts),
		cicd.WithTimeout(cfg.Deploy.Timeout()))

	return orchestrator.Deploy(ctx, env.PipelineRef(cfg), env.DeployJobName())
}

// controlledStop reports whether the error is a user choice rather than a
// failure. Only those exit cleanly; precondition failures such as an
// up-to-date repository keep their nonzero exit.
func controlledStop(err error) bool {
	return errors.Is(err, release.ErrUserDeclined)
}

// newLogger builds the process logger; each -v raises the verbosity.
func newLogger(verbose int) *slog.Logger {
	level := slog.LevelInfo
	if verbose > 0 {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
