package release

import (
	"context"
	"log/slog"

	"github.com/aeyoll/wr/internal/config"
	"github.com/aeyoll/wr/internal/gitrepo"
)

// publisherRepository is the slice of the repository the publisher needs.
type publisherRepository interface {
	PushRefs(ctx context.Context, refspecs ...string) error
	Tags(ctx context.Context) ([]string, error)
}

// Publisher pushes the branches and tags of a cut release to the remote.
// A failed push propagates as a remote-operation error and stops the run;
// partial pushes cannot be safely replayed, so there is no retry.
type Publisher struct {
	repo   publisherRepository
	cfg    *config.Config
	logger *slog.Logger
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithPublisherLogger sets the logger used by the publisher.
func WithPublisherLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// NewPublisher creates a publisher over the given repository.
func NewPublisher(repo publisherRepository, cfg *config.Config, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		repo:   repo,
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish pushes what the environment requires: the integration branch for
// staging; both long-lived branches plus every local tag for production.
func (p *Publisher) Publish(ctx context.Context, env Environment) error {
	if env == Staging {
		p.logger.Info("pushing branch", "branch", p.cfg.Branches.Integration)
		return p.repo.PushRefs(ctx, gitrepo.BranchRefSpec(p.cfg.Branches.Integration))
	}

	p.logger.Info("pushing branches", "stable", p.cfg.Branches.Stable, "integration", p.cfg.Branches.Integration)
	err := p.repo.PushRefs(ctx,
		gitrepo.BranchRefSpec(p.cfg.Branches.Stable),
		gitrepo.BranchRefSpec(p.cfg.Branches.Integration),
	)
	if err != nil {
		return err
	}

	tags, err := p.repo.Tags(ctx)
	if err != nil {
		return err
	}

	refspecs := make([]string, 0, len(tags))
	for _, tag := range tags {
		refspecs = append(refspecs, gitrepo.TagRefSpec(tag))
	}

	p.logger.Info("pushing tags", "count", len(refspecs))
	return p.repo.PushRefs(ctx, refspecs...)
}
