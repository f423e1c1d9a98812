package cicd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	// DefaultPollInterval is the delay between polling attempts.
	DefaultPollInterval = time.Second

	// DefaultLocateAttempts bounds the pipeline discovery loop. Pipeline
	// creation is asynchronous relative to the push that triggered it, so
	// discovery retries before giving up.
	DefaultLocateAttempts = 60
)

// Orchestrator locates the pipeline triggered by a release push, selects
// its deploy job, waits out ordering constraints among earlier jobs,
// triggers the job and observes it to a terminal state.
//
// All waiting is cancellable through the context; an optional overall
// timeout bounds the whole deployment.
type Orchestrator struct {
	service        Service
	logger         *slog.Logger
	interval       time.Duration
	locateAttempts int
	timeout        time.Duration
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger used by the orchestrator.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithPollInterval sets the delay between polling attempts.
func WithPollInterval(interval time.Duration) Option {
	return func(o *Orchestrator) {
		o.interval = interval
	}
}

// WithLocateAttempts bounds the pipeline discovery loop.
func WithLocateAttempts(attempts int) Option {
	return func(o *Orchestrator) {
		o.locateAttempts = attempts
	}
}

// WithTimeout sets an overall deadline for a deployment. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Orchestrator) {
		o.timeout = timeout
	}
}

// NewOrchestrator creates an orchestrator over the given service.
func NewOrchestrator(service Service, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		service:        service,
		logger:         slog.Default(),
		interval:       DefaultPollInterval,
		locateAttempts: DefaultLocateAttempts,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Deploy runs a full deployment against the pipelines of the given ref.
// jobName is the token identifying the deploy job within the pipeline.
//
// Returns nil when the job succeeded or when no actionable deploy job
// exists (nothing to deploy yet, or already handled). Returns
// ErrPipelineNotFound when discovery timed out and ErrDeploymentFailed
// when the job reached the Failed state.
func (o *Orchestrator) Deploy(ctx context.Context, ref, jobName string) error {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	o.logger.Info("fetching latest pipeline", "ref", ref)
	pipeline, err := o.locatePipeline(ctx, ref)
	if err != nil {
		return err
	}

	jobs, err := o.service.ListJobs(ctx, pipeline.ID)
	if err != nil {
		return err
	}

	job := selectDeployJob(jobs, jobName)
	if job == nil {
		o.logger.Info("no actionable deploy job in pipeline", "pipeline", pipeline.ID, "job", jobName)
		return nil
	}

	current, err := o.waitForPredecessors(ctx, *job)
	if err != nil {
		return err
	}

	if err := o.service.PlayJob(ctx, current.ID); err != nil {
		return err
	}
	o.logger.Info("playing job", "name", current.Name)

	return o.awaitTerminal(ctx, current)
}

// locatePipeline polls for a pipeline on the ref whose status is "running"
// or "skipped" (a pipeline skipped by duplicate-commit rules is still a
// valid match). The loop is bounded; no matching pipeline within the
// window means ErrPipelineNotFound.
func (o *Orchestrator) locatePipeline(ctx context.Context, ref string) (Pipeline, error) {
	for attempt := 0; attempt < o.locateAttempts; attempt++ {
		if err := sleepContext(ctx, o.interval); err != nil {
			return Pipeline{}, err
		}

		pipelines, err := o.service.ListPipelines(ctx, ref)
		if err != nil {
			return Pipeline{}, err
		}

		for _, pipeline := range pipelines {
			if pipeline.Status == "running" || pipeline.Status == "skipped" {
				return pipeline, nil
			}
		}
	}
	return Pipeline{}, ErrPipelineNotFound
}

// selectDeployJob picks the first job whose name contains the deploy token
// and which has not already succeeded or failed. Jobs arrive in the order
// supplied by the remote service.
func selectDeployJob(jobs []Job, jobName string) *Job {
	for i := range jobs {
		job := &jobs[i]
		if strings.Contains(job.Name, jobName) &&
			job.Status != StatusSuccess && job.Status != StatusFailed {
			return job
		}
	}
	return nil
}

// waitForPredecessors polls the job out of the Created state. Created only
// means the job is queued behind other jobs, not stuck, so this phase has
// no attempt bound; cancellation comes from the context.
func (o *Orchestrator) waitForPredecessors(ctx context.Context, job Job) (Job, error) {
	if job.Status == StatusCreated {
		o.logger.Info("waiting for previous jobs to be over", "name", job.Name)
	}

	for job.Status == StatusCreated {
		if err := sleepContext(ctx, o.interval); err != nil {
			return Job{}, err
		}

		refreshed, err := o.service.GetJob(ctx, job.ID)
		if err != nil {
			return Job{}, err
		}
		job = refreshed
	}
	return job, nil
}

// awaitTerminal polls the job until it reports Success or Failed, the two
// outcomes the caller distinguishes.
func (o *Orchestrator) awaitTerminal(ctx context.Context, job Job) error {
	for {
		refreshed, err := o.service.GetJob(ctx, job.ID)
		if err != nil {
			return err
		}

		switch refreshed.Status {
		case StatusSuccess:
			o.logger.Info("job succeeded", "name", refreshed.Name)
			return nil
		case StatusFailed:
			o.logger.Error("job failed", "name", refreshed.Name)
			return fmt.Errorf("%w: %s", ErrDeploymentFailed, refreshed.Name)
		}

		if err := sleepContext(ctx, o.interval); err != nil {
			return err
		}
	}
}

// sleepContext sleeps for the given duration unless the context ends first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
