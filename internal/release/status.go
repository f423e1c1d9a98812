package release

import (
	"context"
	"log/slog"

	"github.com/aeyoll/wr/internal/config"
)

// SyncStatus classifies the relationship between the local branch and its
// tracked remote branch. It is a pure function of three commit identifiers
// and is recomputed fresh on every evaluation; branch state can change
// between calls.
type SyncStatus int

const (
	// UpToDate means local and remote point at the same commit.
	UpToDate SyncStatus = iota

	// NeedToPull means the local branch is an ancestor of the remote.
	NeedToPull

	// NeedToPush means the remote branch is an ancestor of the local one.
	NeedToPush

	// Diverged means neither branch is an ancestor of the other.
	Diverged
)

// String returns a human-readable name for the status.
func (s SyncStatus) String() string {
	switch s {
	case UpToDate:
		return "up-to-date"
	case NeedToPull:
		return "need-to-pull"
	case NeedToPush:
		return "need-to-push"
	case Diverged:
		return "diverged"
	default:
		return "unknown"
	}
}

// EvaluateSyncStatus classifies the drift between a local commit, its
// tracked remote commit and their merge base.
// See https://stackoverflow.com/a/3278427 for the classification rules.
func EvaluateSyncStatus(local, remote, base string) SyncStatus {
	switch {
	case local == remote:
		return UpToDate
	case local == base:
		return NeedToPull
	case remote == base:
		return NeedToPush
	default:
		return Diverged
	}
}

// gateRepository is the slice of the repository the sync gate needs.
type gateRepository interface {
	FetchBranches(ctx context.Context, branches ...string) error
	CurrentBranch(ctx context.Context) (string, error)
	Head(ctx context.Context) (string, error)
	UpstreamHead(ctx context.Context, branch string) (string, error)
	MergeBase(ctx context.Context, a, b string) (string, error)
}

// Gate evaluates repository synchronization and decides whether a release
// may proceed. The tracked branches are always fetched first so the
// comparison reflects the current remote state.
type Gate struct {
	repo   gateRepository
	cfg    *config.Config
	force  bool
	logger *slog.Logger
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithForce allows an up-to-date repository to proceed anyway.
func WithForce(force bool) GateOption {
	return func(g *Gate) {
		g.force = force
	}
}

// WithGateLogger sets the logger used by the gate.
func WithGateLogger(logger *slog.Logger) GateOption {
	return func(g *Gate) {
		g.logger = logger
	}
}

// NewGate creates a sync gate over the given repository.
func NewGate(repo gateRepository, cfg *config.Config, opts ...GateOption) *Gate {
	g := &Gate{
		repo:   repo,
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check fetches the tracked branches, classifies the drift of the current
// branch against its upstream and applies the gate policy: NeedToPush
// proceeds, UpToDate proceeds only under force, everything else stops the
// run. The returned status is valid whenever err is nil.
func (g *Gate) Check(ctx context.Context) (SyncStatus, error) {
	err := g.repo.FetchBranches(ctx, g.cfg.Branches.Stable, g.cfg.Branches.Integration)
	if err != nil {
		return UpToDate, err
	}

	branch, err := g.repo.CurrentBranch(ctx)
	if err != nil {
		return UpToDate, err
	}

	local, err := g.repo.Head(ctx)
	if err != nil {
		return UpToDate, err
	}

	remote, err := g.repo.UpstreamHead(ctx, branch)
	if err != nil {
		return UpToDate, err
	}

	base, err := g.repo.MergeBase(ctx, local, remote)
	if err != nil {
		return UpToDate, err
	}

	status := EvaluateSyncStatus(local, remote, base)
	g.logger.Debug("repository status evaluated", "branch", branch, "status", status.String())

	switch status {
	case NeedToPush:
		return status, nil
	case UpToDate:
		if g.force {
			g.logger.Info("repository is up-to-date, but force flag has been passed")
			return status, nil
		}
		return status, ErrUpToDate
	case NeedToPull:
		return status, ErrNeedToPull
	default:
		return status, ErrDiverged
	}
}
