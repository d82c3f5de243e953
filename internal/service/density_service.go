package service

import (
	"context"

	"github.com/google/uuid"

	"pukaist/internal/domain"
	"pukaist/internal/port"
)

// DensityService manages the per-user UI density preference.
type DensityService interface {
	Get(ctx context.Context, userID uuid.UUID) domain.DensityMode
	Set(ctx context.Context, userID uuid.UUID, mode domain.DensityMode) error
	Toggle(ctx context.Context, userID uuid.UUID) domain.DensityMode
}

type densityService struct {
	kv port.KeyValueStore
}

// NewDensityService creates a new DensityService implementation.
func NewDensityService(kv port.KeyValueStore) DensityService {
	return &densityService{kv: kv}
}

func densityKey(userID uuid.UUID) string {
	return "pukaist:density:" + userID.String()
}

// Get returns the persisted density mode, normalizing a missing or corrupt
// value to the default.
func (s *densityService) Get(ctx context.Context, userID uuid.UUID) domain.DensityMode {
	var mode domain.DensityMode
	if !readState(ctx, s.kv, densityKey(userID), &mode) {
		return domain.DefaultDensity
	}
	if !domain.ValidDensityModes[mode] {
		return domain.DefaultDensity
	}
	return mode
}

// Set writes through to storage; a reader immediately after Set sees the new
// value.
func (s *densityService) Set(ctx context.Context, userID uuid.UUID, mode domain.DensityMode) error {
	if !domain.ValidDensityModes[mode] {
		return domain.ErrInvalidDensityMode
	}
	writeState(ctx, s.kv, densityKey(userID), mode)
	return nil
}

// Toggle flips between compact and comfortable and returns the new value.
func (s *densityService) Toggle(ctx context.Context, userID uuid.UUID) domain.DensityMode {
	next := domain.DensityCompact
	if s.Get(ctx, userID) == domain.DensityCompact {
		next = domain.DensityComfortable
	}
	writeState(ctx, s.kv, densityKey(userID), next)
	return next
}
