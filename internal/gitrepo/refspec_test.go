package gitrepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefSpecs(t *testing.T) {
	assert.Equal(t, "refs/heads/main:refs/heads/main", BranchRefSpec("main"))
	assert.Equal(t, "refs/tags/1.0.0:refs/tags/1.0.0", TagRefSpec("1.0.0"))
	assert.Equal(t, "+refs/heads/develop:refs/remotes/origin/develop", FetchRefSpec("origin", "develop"))
}

func TestProjectFromRemoteURL(t *testing.T) {
	tests := []struct {
		name      string
		remoteURL string
		want      string
		wantErr   bool
	}{
		{
			name:      "scp-like URL",
			remoteURL: "git@gitlab.com:group/project.git",
			want:      "group/project",
		},
		{
			name:      "scp-like URL without suffix",
			remoteURL: "git@gitlab.example.com:group/sub/project",
			want:      "group/sub/project",
		},
		{
			name:      "ssh scheme URL",
			remoteURL: "ssh://git@gitlab.com/group/project.git",
			want:      "group/project",
		},
		{
			name:      "https URL",
			remoteURL: "https://gitlab.com/group/project.git",
			want:      "group/project",
		},
		{
			name:      "not a remote URL",
			remoteURL: "just-a-string",
			wantErr:   true,
		},
		{
			name:      "empty path",
			remoteURL: "https://gitlab.com/",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ProjectFromRemoteURL(tt.remoteURL)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrResolveFailed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
