// Package cicd drives the remote CI/CD service: locating pipelines,
// selecting deploy jobs and observing them to a terminal state.
package cicd

import "time"

// Pipeline is a read-only snapshot of a CI/CD run on the remote service.
// The status is the free-form string reported by the service ("running",
// "skipped", "success", ...); pipelines are never persisted locally.
type Pipeline struct {
	ID        int
	Status    string
	Ref       string
	SHA       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Job is a read-only snapshot of a single unit of work within a pipeline.
type Job struct {
	ID     int
	Name   string
	Status JobStatus
}

// JobStatus is the closed state machine a job moves through.
type JobStatus int

const (
	// StatusUnknown is reported for wire strings outside the closed set.
	StatusUnknown JobStatus = iota

	// StatusCreated means the job is queued behind other jobs.
	StatusCreated

	// StatusWaitingForResource means the job waits on a shared resource.
	StatusWaitingForResource

	// StatusPreparing means the job's execution environment is being set up.
	StatusPreparing

	// StatusPending means the job is queued for a runner.
	StatusPending

	// StatusRunning means the job is executing.
	StatusRunning

	// StatusSuccess means the job finished successfully. Terminal.
	StatusSuccess

	// StatusFailed means the job finished unsuccessfully. Terminal.
	StatusFailed

	// StatusCanceled means the job was canceled. Terminal.
	StatusCanceled

	// StatusSkipped means the job was skipped. Terminal.
	StatusSkipped

	// StatusManual means the job waits for a manual action.
	StatusManual

	// StatusScheduled means the job is scheduled for a later time.
	StatusScheduled
)

var statusNames = map[JobStatus]string{
	StatusUnknown:            "unknown",
	StatusCreated:            "created",
	StatusWaitingForResource: "waiting_for_resource",
	StatusPreparing:          "preparing",
	StatusPending:            "pending",
	StatusRunning:            "running",
	StatusSuccess:            "success",
	StatusFailed:             "failed",
	StatusCanceled:           "canceled",
	StatusSkipped:            "skipped",
	StatusManual:             "manual",
	StatusScheduled:          "scheduled",
}

// String returns the wire representation of the status.
func (s JobStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseJobStatus maps a wire string onto the closed status set.
// Unrecognized strings map to StatusUnknown rather than failing; the
// remote service is free to grow new states.
func ParseJobStatus(s string) JobStatus {
	for status, name := range statusNames {
		if name == s && status != StatusUnknown {
			return status
		}
	}
	return StatusUnknown
}

// IsTerminal reports whether the job will not change state anymore.
func (s JobStatus) IsTerminal() bool {
	switch s {
	case StatusSuccess, StatusFailed, StatusCanceled, StatusSkipped:
		return true
	default:
		return false
	}
}
