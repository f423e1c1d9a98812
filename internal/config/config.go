// Package config holds the process configuration for wr.
// A single Config value is constructed at startup and passed by reference
// into each component; there is no lazily-initialized global state.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// configFileName is the path of the optional config file below the XDG
// config directory.
const configFileName = "wr/config.toml"

// Environment variable overrides, applied after the config file.
const (
	envGitLabHost    = "WR_GITLAB_HOST"
	envGitLabToken   = "WR_GITLAB_TOKEN"
	envGitLabProject = "WR_GITLAB_PROJECT"
)

// Config is the process-wide configuration.
type Config struct {
	// Remote is the git remote used for fetch and push.
	Remote string `toml:"remote"`

	GitLab   GitLabConfig `toml:"gitlab"`
	Branches BranchConfig `toml:"branches"`
	Deploy   DeployConfig `toml:"deploy"`
}

// GitLabConfig locates the GitLab instance and project driving deployments.
type GitLabConfig struct {
	// Host is the GitLab instance hostname, without scheme.
	Host string `toml:"host"`

	// Token is the API token. Usually supplied through WR_GITLAB_TOKEN.
	Token string `toml:"token"`

	// Project is the project path ("group/project"). When empty it is
	// derived from the repository's remote URL.
	Project string `toml:"project"`
}

// BranchConfig names the two long-lived git-flow branches.
// The values default to the classic git-flow names and are replaced with
// the repository's gitflow configuration once it has been opened.
type BranchConfig struct {
	// Stable is the production branch (git-flow "master" role).
	Stable string `toml:"stable"`

	// Integration is the development branch (git-flow "develop" role).
	Integration string `toml:"integration"`
}

// DeployConfig bounds the deployment polling loops.
type DeployConfig struct {
	// PollIntervalSeconds is the delay between polling attempts.
	PollIntervalSeconds int `toml:"poll_interval_seconds"`

	// LocateAttempts bounds the pipeline discovery loop.
	LocateAttempts int `toml:"locate_attempts"`

	// TimeoutMinutes is an optional overall deadline for a deployment.
	// Zero means no deadline.
	TimeoutMinutes int `toml:"timeout_minutes"`
}

// PollInterval returns the polling interval as a duration.
func (d DeployConfig) PollInterval() time.Duration {
	return time.Duration(d.PollIntervalSeconds) * time.Second
}

// Timeout returns the overall deployment deadline, zero when disabled.
func (d DeployConfig) Timeout() time.Duration {
	return time.Duration(d.TimeoutMinutes) * time.Minute
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Remote: "origin",
		GitLab: GitLabConfig{
			Host: "gitlab.com",
		},
		Branches: BranchConfig{
			Stable:      "master",
			Integration: "develop",
		},
		Deploy: DeployConfig{
			PollIntervalSeconds: 1,
			LocateAttempts:      60,
		},
	}
}

// Load builds the configuration from defaults, the optional XDG config
// file, and environment variable overrides, in that order.
func Load() (*Config, error) {
	cfg := Default()

	if path, err := xdg.SearchConfigFile(configFileName); err == nil {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, readErr)
		}
		if unmarshalErr := toml.Unmarshal(data, cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, unmarshalErr)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if host := os.Getenv(envGitLabHost); host != "" {
		c.GitLab.Host = host
	}
	if token := os.Getenv(envGitLabToken); token != "" {
		c.GitLab.Token = token
	}
	if project := os.Getenv(envGitLabProject); project != "" {
		c.GitLab.Project = project
	}
}

func (c *Config) validate() error {
	if c.Remote == "" {
		return fmt.Errorf("remote must not be empty")
	}
	if c.Deploy.PollIntervalSeconds <= 0 {
		return fmt.Errorf("deploy.poll_interval_seconds must be positive")
	}
	if c.Deploy.LocateAttempts <= 0 {
		return fmt.Errorf("deploy.locate_attempts must be positive")
	}
	return nil
}
