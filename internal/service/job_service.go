package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"pukaist/internal/domain"
	"pukaist/internal/port"
)

// JobService exposes the processing queue to the API and drives individual
// jobs through their pipeline stages for the worker.
type JobService interface {
	List(ctx context.Context, tenantID string, status domain.JobStatus, offset, limit int) ([]domain.Job, int, error)
	GetByID(ctx context.Context, tenantID string, jobID uuid.UUID) (*domain.Job, error)
	// Requeue moves a flagged job back to queued for another attempt.
	Requeue(ctx context.Context, tenantID string, jobID uuid.UUID) error
	// ProcessJob runs every stage of a claimed job. Failures release the job
	// back to the queue until the attempt budget is spent, then flag it for
	// review.
	ProcessJob(ctx context.Context, job *domain.Job, maxRetries int)
}

type jobService struct {
	repo    port.JobRepository
	docRepo port.DocumentRepository
	runner  port.StageRunner
}

// NewJobService creates a new JobService implementation.
func NewJobService(repo port.JobRepository, docRepo port.DocumentRepository, runner port.StageRunner) JobService {
	return &jobService{repo: repo, docRepo: docRepo, runner: runner}
}

func (s *jobService) List(ctx context.Context, tenantID string, status domain.JobStatus, offset, limit int) ([]domain.Job, int, error) {
	return s.repo.List(ctx, tenantID, status, offset, limit)
}

func (s *jobService) GetByID(ctx context.Context, tenantID string, jobID uuid.UUID) (*domain.Job, error) {
	return s.repo.GetByID(ctx, tenantID, jobID)
}

func (s *jobService) Requeue(ctx context.Context, tenantID string, jobID uuid.UUID) error {
	return s.repo.Requeue(ctx, tenantID, jobID)
}

func (s *jobService) ProcessJob(ctx context.Context, job *domain.Job, maxRetries int) {
	for _, stage := range job.Intent.Stages() {
		if err := s.repo.SetStage(ctx, job.ID, stage); err != nil {
			log.Printf("jobService.ProcessJob: set stage %s on %s: %v", stage, job.ID, err)
		}
		if err := s.runner.Run(ctx, job, stage); err != nil {
			s.fail(ctx, job, stage, err, maxRetries)
			return
		}
	}

	if err := s.repo.MarkCompleted(ctx, job.ID); err != nil {
		log.Printf("jobService.ProcessJob: complete %s: %v", job.ID, err)
		return
	}
	if err := s.docRepo.UpdateStatus(ctx, job.TenantID, job.DocID, domain.DocumentStatusProcessed); err != nil {
		log.Printf("jobService.ProcessJob: mark doc %s processed: %v", job.DocID, err)
	}
	log.Printf("jobService.ProcessJob: job %s completed (attempt %d)", job.ID, job.Attempts)
}

// fail either releases the job for another attempt or flags it once the
// attempt budget is exhausted.
func (s *jobService) fail(ctx context.Context, job *domain.Job, stage domain.PipelineStage, runErr error, maxRetries int) {
	msg := string(stage) + ": " + runErr.Error()
	if job.Attempts >= maxRetries {
		log.Printf("jobService.ProcessJob: job %s flagged after %d attempts: %v", job.ID, job.Attempts, runErr)
		if err := s.repo.MarkFlagged(ctx, job.ID, msg); err != nil {
			log.Printf("jobService.ProcessJob: flag %s: %v", job.ID, err)
		}
		return
	}
	log.Printf("jobService.ProcessJob: job %s failed at %s (attempt %d/%d), releasing: %v",
		job.ID, stage, job.Attempts, maxRetries, runErr)
	if err := s.repo.Release(ctx, job.ID, msg); err != nil {
		log.Printf("jobService.ProcessJob: release %s: %v", job.ID, err)
	}
}
