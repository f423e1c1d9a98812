// Package gitrepo provides a high-level Go wrapper for go-git operations.
// It exposes the task-oriented repository operations the release flow needs:
// tag listing, revision resolution, merge-base computation, and fetch/push
// with explicit refspecs and pluggable credentials.
package gitrepo

import (
	"context"
	"errors"
	"sort"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// DefaultRemoteName is the default remote name used for operations.
const DefaultRemoteName = "origin"

// Options configures repository discovery and remote access.
type Options struct {
	// Path is the directory to open the repository from.
	// Discovery walks up to the nearest .git directory.
	Path string

	// RemoteName is the remote used for fetch/push operations.
	// Defaults to DefaultRemoteName.
	RemoteName string

	// Auth is an optional provider that resolves per-URL AuthMethod.
	// If nil, no authentication will be available.
	Auth CredentialProvider
}

func (o *Options) applyDefaults() {
	if o.Path == "" {
		o.Path = "."
	}
	if o.RemoteName == "" {
		o.RemoteName = DefaultRemoteName
	}
}

// Repo represents a git repository and provides high-level operations.
// It wraps a go-git Repository; all methods read or mutate that single
// repository and are meant to be used sequentially by one logical flow.
type Repo struct {
	repo    *git.Repository
	options Options
}

// Open discovers and opens an existing git repository at opts.Path.
// Returns ErrNotARepository if no repository is found.
func Open(ctx context.Context, opts *Options) (*Repo, error) {
	if opts == nil {
		opts = &Options{}
	}
	opts.applyDefaults()

	repo, err := git.PlainOpenWithOptions(opts.Path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, WrapErrorf(ErrNotARepository, "no repository at %q", opts.Path)
		}
		return nil, WrapError(err, "failed to open repository")
	}

	return &Repo{repo: repo, options: *opts}, nil
}

// Head returns the commit hash the local HEAD points to.
// This is the `@{0}` identifier of the checked-out branch.
func (r *Repo) Head(ctx context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", WrapError(ErrResolveFailed, "failed to resolve HEAD")
	}
	return head.Hash().String(), nil
}

// CurrentBranch returns the short name of the checked-out branch.
// Returns ErrDetachedHead if HEAD does not point to a branch.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", WrapError(ErrResolveFailed, "failed to resolve HEAD")
	}
	if !head.Name().IsBranch() {
		return "", ErrDetachedHead
	}
	return head.Name().Short(), nil
}

// UpstreamHead returns the commit hash of the remote-tracking reference for
// the given branch. This is the `@{u}` identifier after a fetch.
// Returns ErrUpstreamNotConfigured when the branch has no tracking
// configuration or the tracking reference does not exist locally.
func (r *Repo) UpstreamHead(ctx context.Context, branch string) (string, error) {
	cfg, err := r.repo.Branch(branch)
	if err != nil {
		return "", WrapErrorf(ErrUpstreamNotConfigured, "branch %q has no tracking configuration", branch)
	}
	if cfg.Remote == "" || cfg.Merge == "" {
		return "", WrapErrorf(ErrUpstreamNotConfigured, "branch %q has no tracking configuration", branch)
	}

	trackingRef := plumbing.NewRemoteReferenceName(cfg.Remote, cfg.Merge.Short())
	ref, err := r.repo.Reference(trackingRef, true)
	if err != nil {
		return "", WrapErrorf(ErrUpstreamNotConfigured, "tracking reference %q not found", trackingRef.String())
	}
	return ref.Hash().String(), nil
}

// HasUpstream reports whether the given branch has a usable upstream.
func (r *Repo) HasUpstream(ctx context.Context, branch string) error {
	_, err := r.UpstreamHead(ctx, branch)
	return err
}

// MergeBase returns the best common ancestor of two commits.
// Returns ErrNoMergeBase when the commits share no history.
func (r *Repo) MergeBase(ctx context.Context, a, b string) (string, error) {
	commitA, err := r.repo.CommitObject(plumbing.NewHash(a))
	if err != nil {
		return "", WrapErrorf(ErrResolveFailed, "commit %q not found", a)
	}
	commitB, err := r.repo.CommitObject(plumbing.NewHash(b))
	if err != nil {
		return "", WrapErrorf(ErrResolveFailed, "commit %q not found", b)
	}

	bases, err := commitA.MergeBase(commitB)
	if err != nil {
		return "", WrapError(err, "failed to compute merge base")
	}
	if len(bases) == 0 {
		return "", ErrNoMergeBase
	}
	return bases[0].Hash.String(), nil
}

// Tags returns the short names of every tag in the repository,
// sorted alphabetically.
func (r *Repo) Tags(ctx context.Context) ([]string, error) {
	refs, err := r.repo.References()
	if err != nil {
		return nil, WrapError(err, "failed to get references")
	}

	var tags []string
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if ref.Name().IsTag() {
			tags = append(tags, ref.Name().Short())
		}
		return nil
	})
	if err != nil {
		return nil, WrapError(err, "failed to iterate references")
	}

	sort.Strings(tags)
	return tags, nil
}

// IsClean reports whether the worktree has no staged, modified or
// untracked files.
func (r *Repo) IsClean(ctx context.Context) (bool, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return false, WrapError(err, "failed to get worktree")
	}
	status, err := worktree.Status()
	if err != nil {
		return false, WrapError(err, "failed to get worktree status")
	}
	return status.IsClean(), nil
}

// FetchBranches downloads the given branches from the configured remote,
// updating their remote-tracking references, along with all tags.
// An already-up-to-date remote is not an error.
func (r *Repo) FetchBranches(ctx context.Context, branches ...string) error {
	refspecs := make([]gitconfig.RefSpec, 0, len(branches))
	for _, branch := range branches {
		refspecs = append(refspecs, gitconfig.RefSpec(FetchRefSpec(r.options.RemoteName, branch)))
	}

	fetchOpts := &git.FetchOptions{
		RemoteName: r.options.RemoteName,
		RefSpecs:   refspecs,
		Tags:       git.AllTags,
	}

	auth, err := r.authMethod()
	if err != nil {
		return err
	}
	fetchOpts.Auth = auth

	err = r.repo.FetchContext(ctx, fetchOpts)
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return WrapError(ErrRemoteOperation, "fetch failed: "+err.Error())
	}
	return nil
}

// PushRefs pushes the given refspecs to the configured remote.
// An already-up-to-date remote is not an error; any other failure is
// reported as ErrRemoteOperation with the cause attached.
func (r *Repo) PushRefs(ctx context.Context, refspecs ...string) error {
	if len(refspecs) == 0 {
		return nil
	}

	specs := make([]gitconfig.RefSpec, 0, len(refspecs))
	for _, spec := range refspecs {
		specs = append(specs, gitconfig.RefSpec(spec))
	}

	pushOpts := &git.PushOptions{
		RemoteName: r.options.RemoteName,
		RefSpecs:   specs,
	}

	auth, err := r.authMethod()
	if err != nil {
		return err
	}
	pushOpts.Auth = auth

	err = r.repo.PushContext(ctx, pushOpts)
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return WrapError(ErrRemoteOperation, "push failed: "+err.Error())
	}
	return nil
}

// GitflowBranch returns the branch name the repository's git-flow
// configuration assigns to the given role ("master" or "develop").
func (r *Repo) GitflowBranch(role string) (string, error) {
	cfg, err := r.repo.Config()
	if err != nil {
		return "", WrapError(err, "failed to read repository configuration")
	}

	name := cfg.Raw.Section("gitflow").Subsection("branch").Option(role)
	if name == "" {
		return "", WrapErrorf(ErrResolveFailed, "gitflow.branch.%s is not configured", role)
	}
	return name, nil
}

// RemoteURL returns the first URL of the configured remote.
func (r *Repo) RemoteURL() (string, error) {
	remote, err := r.repo.Remote(r.options.RemoteName)
	if err != nil {
		return "", WrapErrorf(ErrResolveFailed, "remote %q not found", r.options.RemoteName)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", WrapErrorf(ErrResolveFailed, "remote %q has no URL", r.options.RemoteName)
	}
	return urls[0], nil
}

// authMethod resolves the transport auth for the configured remote,
// or nil when no provider is set.
//
//nolint:ireturn // transport.AuthMethod is an interface required by go-git
func (r *Repo) authMethod() (transport.AuthMethod, error) {
	if r.options.Auth == nil {
		return nil, nil
	}
	url, err := r.RemoteURL()
	if err != nil {
		return nil, err
	}
	return r.options.Auth.Method(url)
}
