package pipeline

import (
	"context"
	"log"

	"pukaist/internal/domain"
	"pukaist/internal/port"
)

// LocalRunner is the default StageRunner: it walks each stage without calling
// any external backend, so the queue lifecycle works end to end on a single
// machine. Real OCR/LLM/geo backends plug in behind the same interface.
type LocalRunner struct{}

// NewLocalRunner creates a LocalRunner.
func NewLocalRunner() port.StageRunner {
	return &LocalRunner{}
}

func (r *LocalRunner) Run(ctx context.Context, job *domain.Job, stage domain.PipelineStage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	log.Printf("pipeline.LocalRunner: job %s stage %s (doc %s)", job.ID, stage, job.DocID)
	return nil
}
