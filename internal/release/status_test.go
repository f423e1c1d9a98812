package release

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeyoll/wr/internal/config"
	"github.com/aeyoll/wr/internal/gitrepo"
)

func TestEvaluateSyncStatus(t *testing.T) {
	tests := []struct {
		name                string
		local, remote, base string
		want                SyncStatus
	}{
		{
			name:  "same commit everywhere is up-to-date",
			local: "a", remote: "a", base: "a",
			want: UpToDate,
		},
		{
			name:  "local is ancestor of remote",
			local: "a", remote: "b", base: "a",
			want: NeedToPull,
		},
		{
			name:  "remote is ancestor of local",
			local: "a", remote: "b", base: "b",
			want: NeedToPush,
		},
		{
			name:  "neither is ancestor of the other",
			local: "a", remote: "b", base: "c",
			want: Diverged,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateSyncStatus(tt.local, tt.remote, tt.base))
		})
	}
}

// fakeGateRepo is a scripted gateRepository.
type fakeGateRepo struct {
	fetched     []string
	branch      string
	local       string
	remote      string
	base        string
	fetchErr    error
	upstreamErr error
}

func (f *fakeGateRepo) FetchBranches(ctx context.Context, branches ...string) error {
	f.fetched = append(f.fetched, branches...)
	return f.fetchErr
}

func (f *fakeGateRepo) CurrentBranch(ctx context.Context) (string, error) {
	return f.branch, nil
}

func (f *fakeGateRepo) Head(ctx context.Context) (string, error) {
	return f.local, nil
}

func (f *fakeGateRepo) UpstreamHead(ctx context.Context, branch string) (string, error) {
	if f.upstreamErr != nil {
		return "", f.upstreamErr
	}
	return f.remote, nil
}

func (f *fakeGateRepo) MergeBase(ctx context.Context, a, b string) (string, error) {
	return f.base, nil
}

func TestGateCheck(t *testing.T) {
	cfg := config.Default()
	ctx := context.Background()

	tests := []struct {
		name    string
		repo    *fakeGateRepo
		opts    []GateOption
		want    SyncStatus
		wantErr error
	}{
		{
			name: "need to push proceeds",
			repo: &fakeGateRepo{branch: "develop", local: "a", remote: "b", base: "b"},
			want: NeedToPush,
		},
		{
			name:    "up-to-date without force stops",
			repo:    &fakeGateRepo{branch: "develop", local: "a", remote: "a", base: "a"},
			wantErr: ErrUpToDate,
		},
		{
			name: "up-to-date with force proceeds",
			repo: &fakeGateRepo{branch: "develop", local: "a", remote: "a", base: "a"},
			opts: []GateOption{WithForce(true)},
			want: UpToDate,
		},
		{
			name:    "need to pull stops",
			repo:    &fakeGateRepo{branch: "develop", local: "a", remote: "b", base: "a"},
			wantErr: ErrNeedToPull,
		},
		{
			name:    "diverged stops",
			repo:    &fakeGateRepo{branch: "develop", local: "a", remote: "b", base: "c"},
			wantErr: ErrDiverged,
		},
		{
			name:    "missing upstream is its own condition",
			repo:    &fakeGateRepo{branch: "develop", local: "a", upstreamErr: gitrepo.ErrUpstreamNotConfigured},
			wantErr: gitrepo.ErrUpstreamNotConfigured,
		},
		{
			name:    "fetch failure propagates",
			repo:    &fakeGateRepo{fetchErr: gitrepo.ErrRemoteOperation},
			wantErr: gitrepo.ErrRemoteOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := NewGate(tt.repo, cfg, tt.opts...)
			status, err := gate.Check(ctx)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}
}

// TestGateFetchesTrackedBranches verifies the gate fetches before comparing,
// so a stale local view of the remote cannot slip through.
func TestGateFetchesTrackedBranches(t *testing.T) {
	cfg := config.Default()
	repo := &fakeGateRepo{branch: "develop", local: "a", remote: "b", base: "b"}

	_, err := NewGate(repo, cfg).Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"master", "develop"}, repo.fetched)
}
