package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pukaist/internal/domain"
	"pukaist/internal/service"
)

// MockCollectionService is a mock implementation of service.CollectionService.
type MockCollectionService struct {
	mock.Mock
}

func (m *MockCollectionService) Create(ctx context.Context, input service.CollectionCreateInput) (*domain.Collection, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}

func (m *MockCollectionService) List(ctx context.Context, tenantID string) ([]domain.Collection, error) {
	args := m.Called(ctx, tenantID)
	var out []domain.Collection
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.Collection)
	}
	return out, args.Error(1)
}

func (m *MockCollectionService) GetByName(ctx context.Context, tenantID, name string) (*domain.Collection, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}

func (m *MockCollectionService) AddDoc(ctx context.Context, tenantID, name, docID string) (*domain.Collection, error) {
	args := m.Called(ctx, tenantID, name, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}

func (m *MockCollectionService) RemoveDoc(ctx context.Context, tenantID, name, docID string) (*domain.Collection, error) {
	args := m.Called(ctx, tenantID, name, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collection), args.Error(1)
}

func (m *MockCollectionService) Delete(ctx context.Context, tenantID, name string, userID uuid.UUID) (*domain.UndoAction, error) {
	args := m.Called(ctx, tenantID, name, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UndoAction), args.Error(1)
}

func (m *MockCollectionService) Summary(ctx context.Context, tenantID, name string) (*service.CollectionSummary, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CollectionSummary), args.Error(1)
}
