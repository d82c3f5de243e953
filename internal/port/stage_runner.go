package port

import (
	"context"

	"pukaist/internal/domain"
)

// StageRunner executes a single pipeline stage for a job. Implementations
// talk to the actual processing backends; the bundled local runner only
// records the walk-through.
type StageRunner interface {
	Run(ctx context.Context, job *domain.Job, stage domain.PipelineStage) error
}
