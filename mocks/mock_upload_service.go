package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pukaist/internal/service"
)

// MockUploadService is a mock implementation of service.UploadService.
type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) SignedURL(ctx context.Context, input service.SignedURLInput) (*service.SignedURLResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SignedURLResult), args.Error(1)
}

func (m *MockUploadService) Complete(ctx context.Context, tenantID string, uploadID uuid.UUID) (*service.CompleteResult, error) {
	args := m.Called(ctx, tenantID, uploadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CompleteResult), args.Error(1)
}
