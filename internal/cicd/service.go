package cicd

import "context"

// Service is the remote pipeline service the orchestrator drives.
// Responses are read-only snapshots; writes are fire-and-forget beyond the
// success or failure of the call itself.
type Service interface {
	// ListPipelines returns the pipelines for a ref, most recent first.
	ListPipelines(ctx context.Context, ref string) ([]Pipeline, error)

	// ListJobs returns the jobs of a pipeline.
	ListJobs(ctx context.Context, pipelineID int) ([]Job, error)

	// GetJob returns a fresh snapshot of a single job.
	GetJob(ctx context.Context, jobID int) (Job, error)

	// PlayJob triggers a manual job. Only the success or failure of the
	// request matters; the service remains the source of truth for the
	// job's subsequent status.
	PlayJob(ctx context.Context, jobID int) error
}
