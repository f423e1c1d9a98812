package gitrepo

import (
	"context"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/require"
)

// testRepo is a helper struct that contains a test repository and its filesystem
type testRepo struct {
	repo *Repo
	fs   billy.Filesystem
	ctx  context.Context
}

// setupTestRepo creates a new test repository backed by in-memory storage
func setupTestRepo(t *testing.T) *testRepo {
	t.Helper()

	fs := memfs.New()
	r, err := git.Init(memory.NewStorage(), fs)
	require.NoError(t, err, "failed to initialize test repository")

	return &testRepo{
		repo: &Repo{repo: r, options: Options{Path: ".", RemoteName: DefaultRemoteName}},
		fs:   fs,
		ctx:  context.Background(),
	}
}

// commitFile writes a file, stages it and commits, returning the commit hash
func (tr *testRepo) commitFile(t *testing.T, name, content, message string) string {
	t.Helper()

	err := util.WriteFile(tr.fs, name, []byte(content), 0o644)
	require.NoError(t, err, "failed to write file")

	worktree, err := tr.repo.repo.Worktree()
	require.NoError(t, err, "failed to get worktree")

	_, err = worktree.Add(name)
	require.NoError(t, err, "failed to add file")

	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err, "failed to commit")

	return hash.String()
}

// createTag creates a lightweight tag pointing at HEAD
func (tr *testRepo) createTag(t *testing.T, name string) {
	t.Helper()

	head, err := tr.repo.repo.Head()
	require.NoError(t, err, "failed to get HEAD")

	ref := plumbing.NewHashReference(plumbing.NewTagReferenceName(name), head.Hash())
	err = tr.repo.repo.Storer.SetReference(ref)
	require.NoError(t, err, "failed to create tag reference")
}

// setTracking configures branch.<name>.remote/merge as if set-upstream had run
func (tr *testRepo) setTracking(t *testing.T, branch string) {
	t.Helper()

	cfg, err := tr.repo.repo.Config()
	require.NoError(t, err, "failed to read config")

	cfg.Branches[branch] = &gitconfig.Branch{
		Name:   branch,
		Remote: DefaultRemoteName,
		Merge:  plumbing.NewBranchReferenceName(branch),
	}
	err = tr.repo.repo.Storer.SetConfig(cfg)
	require.NoError(t, err, "failed to write config")
}

// setRemoteRef creates a remote-tracking reference pointing at the given hash
func (tr *testRepo) setRemoteRef(t *testing.T, branch, hash string) {
	t.Helper()

	ref := plumbing.NewHashReference(
		plumbing.NewRemoteReferenceName(DefaultRemoteName, branch),
		plumbing.NewHash(hash),
	)
	err := tr.repo.repo.Storer.SetReference(ref)
	require.NoError(t, err, "failed to create remote-tracking reference")
}

// checkoutNewBranch creates a branch at HEAD and checks it out
func (tr *testRepo) checkoutNewBranch(t *testing.T, name string) {
	t.Helper()

	worktree, err := tr.repo.repo.Worktree()
	require.NoError(t, err, "failed to get worktree")

	err = worktree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Create: true,
	})
	require.NoError(t, err, "failed to checkout branch")
}

// checkoutBranch checks out an existing branch
func (tr *testRepo) checkoutBranch(t *testing.T, name string) {
	t.Helper()

	worktree, err := tr.repo.repo.Worktree()
	require.NoError(t, err, "failed to get worktree")

	err = worktree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
	})
	require.NoError(t, err, "failed to checkout branch")
}
