package cicd

import (
	"context"
	"fmt"
	"time"

	gitlab "gitlab.com/gitlab-org/api/client-go"
)

// GitLabService implements Service against the GitLab REST API.
type GitLabService struct {
	client  *gitlab.Client
	project string
}

// NewGitLabService creates a client for the given instance host and
// project path ("group/project").
func NewGitLabService(host, token, project string) (*GitLabService, error) {
	client, err := gitlab.NewClient(token, gitlab.WithBaseURL(fmt.Sprintf("https://%s/api/v4", host)))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", host, err)
	}
	return &GitLabService{client: client, project: project}, nil
}

// ListPipelines returns the project's pipelines for a ref, ordered by id
// descending so the most recent pipeline comes first.
func (s *GitLabService) ListPipelines(ctx context.Context, ref string) ([]Pipeline, error) {
	opts := &gitlab.ListProjectPipelinesOptions{
		Ref:     gitlab.Ptr(ref),
		OrderBy: gitlab.Ptr("id"),
		Sort:    gitlab.Ptr("desc"),
	}

	infos, _, err := s.client.Pipelines.ListProjectPipelines(s.project, opts, gitlab.WithContext(ctx))
	if err != nil {
		return nil, serviceError("list pipelines", err)
	}

	pipelines := make([]Pipeline, 0, len(infos))
	for _, info := range infos {
		pipelines = append(pipelines, Pipeline{
			ID:        info.ID,
			Status:    info.Status,
			Ref:       info.Ref,
			SHA:       info.SHA,
			CreatedAt: timeOrZero(info.CreatedAt),
			UpdatedAt: timeOrZero(info.UpdatedAt),
		})
	}
	return pipelines, nil
}

// ListJobs returns the jobs of a pipeline.
func (s *GitLabService) ListJobs(ctx context.Context, pipelineID int) ([]Job, error) {
	raw, _, err := s.client.Jobs.ListPipelineJobs(s.project, pipelineID, &gitlab.ListJobsOptions{}, gitlab.WithContext(ctx))
	if err != nil {
		return nil, serviceError("list jobs", err)
	}

	jobs := make([]Job, 0, len(raw))
	for _, job := range raw {
		jobs = append(jobs, convertJob(job))
	}
	return jobs, nil
}

// GetJob returns a fresh snapshot of a single job.
func (s *GitLabService) GetJob(ctx context.Context, jobID int) (Job, error) {
	job, _, err := s.client.Jobs.GetJob(s.project, jobID, gitlab.WithContext(ctx))
	if err != nil {
		return Job{}, serviceError("get job", err)
	}
	return convertJob(job), nil
}

// PlayJob triggers a manual job.
func (s *GitLabService) PlayJob(ctx context.Context, jobID int) error {
	_, _, err := s.client.Jobs.PlayJob(s.project, jobID, &gitlab.PlayJobOptions{}, gitlab.WithContext(ctx))
	if err != nil {
		return serviceError("play job", err)
	}
	return nil
}

func convertJob(job *gitlab.Job) Job {
	return Job{
		ID:     job.ID,
		Name:   job.Name,
		Status: ParseJobStatus(job.Status),
	}
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func serviceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrServiceUnavailable, op, err)
}
