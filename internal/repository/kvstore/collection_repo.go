package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"pukaist/internal/domain"
	"pukaist/internal/port"
)

type collectionRepo struct {
	kv port.KeyValueStore
}

// NewCollectionRepo creates a CollectionRepository persisting the whole
// per-tenant collection list as one snapshot, overwritten on every mutation.
func NewCollectionRepo(kv port.KeyValueStore) port.CollectionRepository {
	return &collectionRepo{kv: kv}
}

func collectionsKey(tenantID string) string {
	return "pukaist:collections:" + tenantID
}

func (r *collectionRepo) load(ctx context.Context, tenantID string) ([]domain.Collection, error) {
	data, err := r.kv.Get(ctx, collectionsKey(tenantID))
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("collectionRepo.load: %w", err)
	}
	var cols []domain.Collection
	if err := json.Unmarshal(data, &cols); err != nil {
		return nil, fmt.Errorf("collectionRepo.load: decoding: %w", err)
	}
	return cols, nil
}

func (r *collectionRepo) save(ctx context.Context, tenantID string, cols []domain.Collection) error {
	data, err := json.Marshal(cols)
	if err != nil {
		return fmt.Errorf("collectionRepo.save: encoding: %w", err)
	}
	if err := r.kv.Set(ctx, collectionsKey(tenantID), data); err != nil {
		return fmt.Errorf("collectionRepo.save: %w", err)
	}
	return nil
}

func (r *collectionRepo) List(ctx context.Context, tenantID string) ([]domain.Collection, error) {
	return r.load(ctx, tenantID)
}

func (r *collectionRepo) GetByName(ctx context.Context, tenantID, name string) (*domain.Collection, error) {
	cols, err := r.load(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	normalized := strings.TrimSpace(name)
	for i := range cols {
		if cols[i].Name == normalized {
			return &cols[i], nil
		}
	}
	return nil, domain.ErrCollectionNotFound
}

func (r *collectionRepo) Save(ctx context.Context, c *domain.Collection) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return domain.ErrCollectionNameEmpty
	}
	cols, err := r.load(ctx, c.TenantID)
	if err != nil {
		return err
	}
	replaced := false
	for i := range cols {
		if cols[i].Name == c.Name {
			cols[i] = *c
			replaced = true
			break
		}
	}
	if !replaced {
		cols = append(cols, *c)
	}
	return r.save(ctx, c.TenantID, cols)
}

func (r *collectionRepo) Delete(ctx context.Context, tenantID, name string) error {
	cols, err := r.load(ctx, tenantID)
	if err != nil {
		return err
	}
	normalized := strings.TrimSpace(name)
	kept := cols[:0]
	for i := range cols {
		if cols[i].Name != normalized {
			kept = append(kept, cols[i])
		}
	}
	if len(kept) == len(cols) {
		return domain.ErrCollectionNotFound
	}
	return r.save(ctx, tenantID, kept)
}
