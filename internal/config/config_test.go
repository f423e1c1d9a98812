package config

import (
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "origin", cfg.Remote)
	assert.Equal(t, "gitlab.com", cfg.GitLab.Host)
	assert.Equal(t, "master", cfg.Branches.Stable)
	assert.Equal(t, "develop", cfg.Branches.Integration)
	assert.Equal(t, time.Second, cfg.Deploy.PollInterval())
	assert.Equal(t, 60, cfg.Deploy.LocateAttempts)
	assert.Equal(t, time.Duration(0), cfg.Deploy.Timeout())
	require.NoError(t, cfg.validate())
}

func TestFileOverrides(t *testing.T) {
	cfg := Default()

	data := []byte(`
remote = "upstream"

[gitlab]
host = "gitlab.example.com"
project = "group/project"

[deploy]
poll_interval_seconds = 2
locate_attempts = 10
timeout_minutes = 30
`)
	require.NoError(t, toml.Unmarshal(data, cfg))

	assert.Equal(t, "upstream", cfg.Remote)
	assert.Equal(t, "gitlab.example.com", cfg.GitLab.Host)
	assert.Equal(t, "group/project", cfg.GitLab.Project)
	assert.Equal(t, 2*time.Second, cfg.Deploy.PollInterval())
	assert.Equal(t, 10, cfg.Deploy.LocateAttempts)
	assert.Equal(t, 30*time.Minute, cfg.Deploy.Timeout())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WR_GITLAB_HOST", "gitlab.internal")
	t.Setenv("WR_GITLAB_TOKEN", "secret")
	t.Setenv("WR_GITLAB_PROJECT", "team/app")

	cfg := Default()
	cfg.applyEnv()

	assert.Equal(t, "gitlab.internal", cfg.GitLab.Host)
	assert.Equal(t, "secret", cfg.GitLab.Token)
	assert.Equal(t, "team/app", cfg.GitLab.Project)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Deploy.LocateAttempts = 0
	require.Error(t, cfg.validate())

	cfg = Default()
	cfg.Deploy.PollIntervalSeconds = -1
	require.Error(t, cfg.validate())

	cfg = Default()
	cfg.Remote = ""
	require.Error(t, cfg.validate())
}
