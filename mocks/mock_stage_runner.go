package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pukaist/internal/domain"
)

// MockStageRunner is a mock implementation of port.StageRunner.
type MockStageRunner struct {
	mock.Mock
}

func (m *MockStageRunner) Run(ctx context.Context, job *domain.Job, stage domain.PipelineStage) error {
	args := m.Called(ctx, job, stage)
	return args.Error(0)
}
