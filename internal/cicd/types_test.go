package cicd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseJobStatus(t *testing.T) {
	assert.Equal(t, StatusCreated, ParseJobStatus("created"))
	assert.Equal(t, StatusWaitingForResource, ParseJobStatus("waiting_for_resource"))
	assert.Equal(t, StatusManual, ParseJobStatus("manual"))
	assert.Equal(t, StatusUnknown, ParseJobStatus("some-new-state"))
	assert.Equal(t, StatusUnknown, ParseJobStatus(""))
}

func TestJobStatusTerminal(t *testing.T) {
	terminal := []JobStatus{StatusSuccess, StatusFailed, StatusCanceled, StatusSkipped}
	for _, status := range terminal {
		assert.True(t, status.IsTerminal(), status.String())
	}

	nonTerminal := []JobStatus{
		StatusCreated, StatusWaitingForResource, StatusPreparing, StatusPending,
		StatusRunning, StatusManual, StatusScheduled, StatusUnknown,
	}
	for _, status := range nonTerminal {
		assert.False(t, status.IsTerminal(), status.String())
	}
}

func TestJobStatusRoundTrip(t *testing.T) {
	for status, name := range statusNames {
		if status == StatusUnknown {
			continue
		}
		assert.Equal(t, status, ParseJobStatus(name))
	}
}
