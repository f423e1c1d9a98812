package release

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeyoll/wr/internal/config"
)

func TestEnvironmentMapping(t *testing.T) {
	cfg := config.Default()
	cfg.Branches.Stable = "main"
	cfg.Branches.Integration = "next"

	assert.Equal(t, "deploy_prod", Production.DeployJobName())
	assert.Equal(t, "deploy_staging", Staging.DeployJobName())
	assert.Equal(t, "main", Production.PipelineRef(cfg))
	assert.Equal(t, "next", Staging.PipelineRef(cfg))
}

func TestParseEnvironment(t *testing.T) {
	env, err := ParseEnvironment("Production")
	require.NoError(t, err)
	assert.Equal(t, Production, env)

	env, err = ParseEnvironment("staging")
	require.NoError(t, err)
	assert.Equal(t, Staging, env)

	_, err = ParseEnvironment("qa")
	require.Error(t, err)
}
