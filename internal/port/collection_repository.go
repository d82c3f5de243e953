package port

import (
	"context"

	"github.com/google/uuid"

	"pukaist/internal/domain"
)

// CollectionRepository persists per-tenant, name-keyed collections.
type CollectionRepository interface {
	List(ctx context.Context, tenantID string) ([]domain.Collection, error)
	GetByName(ctx context.Context, tenantID, name string) (*domain.Collection, error)
	// Save inserts or replaces the collection identified by its name.
	Save(ctx context.Context, c *domain.Collection) error
	Delete(ctx context.Context, tenantID, name string) error
}

// DocumentRepository is the registry of uploaded documents.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, tenantID string, docID uuid.UUID) (*domain.Document, error)
	UpdateStatus(ctx context.Context, tenantID string, docID uuid.UUID, status domain.DocumentStatus) error
}
