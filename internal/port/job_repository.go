package port

import (
	"context"

	"github.com/google/uuid"

	"pukaist/internal/domain"
)

// JobRepository persists background processing jobs.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, tenantID string, jobID uuid.UUID) (*domain.Job, error)
	List(ctx context.Context, tenantID string, status domain.JobStatus, offset, limit int) ([]domain.Job, int, error)
	// ClaimQueued atomically moves up to limit queued jobs to processing and
	// returns them, incrementing their attempt counter.
	ClaimQueued(ctx context.Context, limit int) ([]domain.Job, error)
	SetStage(ctx context.Context, jobID uuid.UUID, stage domain.PipelineStage) error
	MarkCompleted(ctx context.Context, jobID uuid.UUID) error
	MarkFlagged(ctx context.Context, jobID uuid.UUID, lastError string) error
	// Release puts a processing job back in the queue after a transient
	// failure, recording the error for the next attempt.
	Release(ctx context.Context, jobID uuid.UUID, lastError string) error
	Requeue(ctx context.Context, tenantID string, jobID uuid.UUID) error
}
