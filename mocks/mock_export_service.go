package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"pukaist/internal/domain"
)

// MockExportService is a mock implementation of service.ExportService.
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Export(ctx context.Context, tenantID, name string, opts domain.ExportOptions) (*domain.ExportResult, error) {
	args := m.Called(ctx, tenantID, name, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExportResult), args.Error(1)
}
