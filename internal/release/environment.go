package release

import (
	"fmt"
	"strings"

	"github.com/aeyoll/wr/internal/config"
)

// Environment is a deployment target. It is configuration, not mutable
// state: each environment maps to a pipeline ref to watch, a deploy job
// name and the branches that get pushed.
type Environment int

const (
	// Production releases are cut from the integration branch, tagged,
	// and deployed from the stable branch pipeline.
	Production Environment = iota

	// Staging deployments push the integration branch only; nothing is
	// cut or tagged.
	Staging
)

// String returns the lowercase name of the environment.
func (e Environment) String() string {
	switch e {
	case Production:
		return "production"
	case Staging:
		return "staging"
	default:
		return "unknown"
	}
}

// ParseEnvironment parses an environment name, case-insensitively.
func ParseEnvironment(s string) (Environment, error) {
	switch strings.ToLower(s) {
	case "production":
		return Production, nil
	case "staging":
		return Staging, nil
	default:
		return Production, fmt.Errorf("unknown environment %q", s)
	}
}

// DeployJobName returns the token identifying the deploy job of this
// environment within a pipeline.
func (e Environment) DeployJobName() string {
	if e == Staging {
		return "deploy_staging"
	}
	return "deploy_prod"
}

// PipelineRef returns the ref whose pipelines carry this environment's
// deploy job.
func (e Environment) PipelineRef(cfg *config.Config) string {
	if e == Staging {
		return cfg.Branches.Integration
	}
	return cfg.Branches.Stable
}
