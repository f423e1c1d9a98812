package cicd

import "errors"

// ErrPipelineNotFound is returned when no matching pipeline appeared on the
// remote service within the bounded discovery window. It is distinct from
// transport failures: the service answered, but nothing matched.
var ErrPipelineNotFound = errors.New("pipeline was not found")

// ErrDeploymentFailed is returned when the deploy job reached the Failed
// terminal state.
var ErrDeploymentFailed = errors.New("deploy job failed")

// ErrServiceUnavailable is returned when a call to the remote service
// fails for a transport-level reason; the cause is attached.
var ErrServiceUnavailable = errors.New("CI/CD service call failed")
