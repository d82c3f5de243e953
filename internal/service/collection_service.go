package service

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"pukaist/internal/domain"
	"pukaist/internal/port"
	"pukaist/internal/render"
)

// CollectionCreateInput is the DTO for collection creation.
type CollectionCreateInput struct {
	TenantID    string
	CreatedBy   uuid.UUID
	Name        string
	Description string
	DocIDs      []string
}

// CollectionSummary aggregates a collection for the review dashboard: doc
// counts, theme distribution, and an upload-activity sparkline.
type CollectionSummary struct {
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	DocCount      int            `json:"doc_count"`
	MissingDocs   int            `json:"missing_docs"`
	Themes        map[string]int `json:"themes"`
	ActivityPath  string         `json:"activity_path"`
	ActivityDays  int            `json:"activity_days"`
	FirstUploaded *time.Time     `json:"first_uploaded,omitempty"`
	LastUploaded  *time.Time     `json:"last_uploaded,omitempty"`
}

// CollectionService manages name-keyed document collections.
type CollectionService interface {
	Create(ctx context.Context, input CollectionCreateInput) (*domain.Collection, error)
	List(ctx context.Context, tenantID string) ([]domain.Collection, error)
	GetByName(ctx context.Context, tenantID, name string) (*domain.Collection, error)
	AddDoc(ctx context.Context, tenantID, name, docID string) (*domain.Collection, error)
	RemoveDoc(ctx context.Context, tenantID, name, docID string) (*domain.Collection, error)
	// Delete removes the collection after an undo window; the returned action
	// lets the caller cancel before the window closes.
	Delete(ctx context.Context, tenantID, name string, userID uuid.UUID) (*domain.UndoAction, error)
	Summary(ctx context.Context, tenantID, name string) (*CollectionSummary, error)
}

type collectionService struct {
	repo    port.CollectionRepository
	docRepo port.DocumentRepository
	undo    UndoService
}

// NewCollectionService creates a new CollectionService implementation.
func NewCollectionService(repo port.CollectionRepository, docRepo port.DocumentRepository, undo UndoService) CollectionService {
	return &collectionService{repo: repo, docRepo: docRepo, undo: undo}
}

// Create inserts a new collection. Creating an existing name merges the
// provided doc IDs into it instead of failing.
func (s *collectionService) Create(ctx context.Context, input CollectionCreateInput) (*domain.Collection, error) {
	existing, err := s.repo.GetByName(ctx, input.TenantID, input.Name)
	if err == nil {
		for _, id := range input.DocIDs {
			existing.DocIDs = appendUnique(existing.DocIDs, id)
		}
		if input.Description != "" {
			existing.Description = input.Description
		}
		existing.UpdatedAt = time.Now().UTC()
		if err := s.repo.Save(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	now := time.Now().UTC()
	c := &domain.Collection{
		Name:        input.Name,
		Description: input.Description,
		TenantID:    input.TenantID,
		DocIDs:      append([]string{}, input.DocIDs...),
		CreatedBy:   input.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if c.DocIDs == nil {
		c.DocIDs = []string{}
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *collectionService) List(ctx context.Context, tenantID string) ([]domain.Collection, error) {
	return s.repo.List(ctx, tenantID)
}

func (s *collectionService) GetByName(ctx context.Context, tenantID, name string) (*domain.Collection, error) {
	return s.repo.GetByName(ctx, tenantID, name)
}

func (s *collectionService) AddDoc(ctx context.Context, tenantID, name, docID string) (*domain.Collection, error) {
	c, err := s.repo.GetByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	c.DocIDs = appendUnique(c.DocIDs, docID)
	c.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *collectionService) RemoveDoc(ctx context.Context, tenantID, name, docID string) (*domain.Collection, error) {
	c, err := s.repo.GetByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	kept := c.DocIDs[:0]
	for _, id := range c.DocIDs {
		if id != docID {
			kept = append(kept, id)
		}
	}
	c.DocIDs = kept
	c.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete starts an undo window instead of deleting immediately. The actual
// removal runs when the window expires or is dismissed; undoing within the
// window keeps the collection untouched.
func (s *collectionService) Delete(ctx context.Context, tenantID, name string, userID uuid.UUID) (*domain.UndoAction, error) {
	if _, err := s.repo.GetByName(ctx, tenantID, name); err != nil {
		return nil, err
	}
	action := s.undo.Start(userID, UndoInput{
		Message: "Collection \"" + name + "\" deleted",
		OnExpire: func() {
			// Detached from the request; the delete must survive it.
			if err := s.repo.Delete(context.Background(), tenantID, name); err != nil {
				log.Printf("collectionService.Delete: deferred delete of %q failed: %v", name, err)
			}
		},
	})
	return &action, nil
}

func (s *collectionService) Summary(ctx context.Context, tenantID, name string) (*CollectionSummary, error) {
	c, err := s.repo.GetByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}

	summary := &CollectionSummary{
		Name:        c.Name,
		Description: c.Description,
		DocCount:    len(c.DocIDs),
		Themes:      map[string]int{},
	}

	var uploadDays []time.Time
	for _, idStr := range c.DocIDs {
		docID, err := uuid.Parse(idStr)
		if err != nil {
			summary.MissingDocs++
			continue
		}
		doc, err := s.docRepo.GetByID(ctx, tenantID, docID)
		if err != nil {
			summary.MissingDocs++
			continue
		}
		if doc.Theme != "" {
			summary.Themes[doc.Theme]++
		}
		uploadDays = append(uploadDays, doc.CreatedAt)
	}

	if len(uploadDays) > 0 {
		sort.Slice(uploadDays, func(i, j int) bool { return uploadDays[i].Before(uploadDays[j]) })
		first, last := uploadDays[0], uploadDays[len(uploadDays)-1]
		summary.FirstUploaded = &first
		summary.LastUploaded = &last

		counts := uploadsPerDay(uploadDays)
		summary.ActivityDays = len(counts)
		path, _ := render.Sparkline(counts, render.DefaultSparklineBox)
		summary.ActivityPath = path
	}

	return summary, nil
}

// uploadsPerDay buckets sorted timestamps into a contiguous per-day series
// from the first to the last upload.
func uploadsPerDay(sorted []time.Time) []float64 {
	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	start := day(sorted[0])
	end := day(sorted[len(sorted)-1])
	n := int(end.Sub(start).Hours()/24) + 1
	counts := make([]float64, n)
	for _, t := range sorted {
		idx := int(day(t).Sub(start).Hours() / 24)
		counts[idx]++
	}
	return counts
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
