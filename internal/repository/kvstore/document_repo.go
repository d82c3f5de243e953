package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"pukaist/internal/domain"
	"pukaist/internal/port"
)

type documentRepo struct {
	kv port.KeyValueStore
}

// NewDocumentRepo creates a DocumentRepository storing one snapshot per
// document.
func NewDocumentRepo(kv port.KeyValueStore) port.DocumentRepository {
	return &documentRepo{kv: kv}
}

func docKey(tenantID string, docID uuid.UUID) string {
	return fmt.Sprintf("pukaist:doc:%s:%s", tenantID, docID)
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("documentRepo.Create: encoding: %w", err)
	}
	if err := r.kv.Set(ctx, docKey(doc.TenantID, doc.ID), data); err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, tenantID string, docID uuid.UUID) (*domain.Document, error) {
	data, err := r.kv.Get(ctx, docKey(tenantID, docID))
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("documentRepo.GetByID: decoding: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) UpdateStatus(ctx context.Context, tenantID string, docID uuid.UUID, status domain.DocumentStatus) error {
	doc, err := r.GetByID(ctx, tenantID, docID)
	if err != nil {
		return err
	}
	doc.Status = status
	return r.Create(ctx, doc)
}
