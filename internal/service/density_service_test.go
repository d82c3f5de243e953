package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pukaist/internal/domain"
	memorykv "pukaist/internal/kv/memory"
)

func TestDensityGet_Default(t *testing.T) {
	svc := NewDensityService(memorykv.NewStore())
	assert.Equal(t, domain.DensityComfortable, svc.Get(context.Background(), uuid.New()))
}

func TestDensitySet_Invalid(t *testing.T) {
	svc := NewDensityService(memorykv.NewStore())
	err := svc.Set(context.Background(), uuid.New(), domain.DensityMode("cozy"))
	assert.ErrorIs(t, err, domain.ErrInvalidDensityMode)
}

func TestDensityToggle_Involution(t *testing.T) {
	svc := NewDensityService(memorykv.NewStore())
	ctx := context.Background()
	userID := uuid.New()

	first := svc.Toggle(ctx, userID)
	assert.Equal(t, domain.DensityCompact, first)

	second := svc.Toggle(ctx, userID)
	assert.Equal(t, domain.DensityComfortable, second)

	// Toggling twice lands back on the starting value.
	assert.Equal(t, second, svc.Get(ctx, userID))
}

func TestDensityGet_CorruptFallsBack(t *testing.T) {
	kv := memorykv.NewStore()
	ctx := context.Background()
	userID := uuid.New()
	require.NoError(t, kv.Set(ctx, densityKey(userID), []byte(`"cramped"`)))

	svc := NewDensityService(kv)
	assert.Equal(t, domain.DefaultDensity, svc.Get(ctx, userID))
}

func TestDensitySet_Persists(t *testing.T) {
	kv := memorykv.NewStore()
	ctx := context.Background()
	userID := uuid.New()

	svc := NewDensityService(kv)
	require.NoError(t, svc.Set(ctx, userID, domain.DensityCompact))

	// A fresh service over the same store sees the persisted value.
	again := NewDensityService(kv)
	assert.Equal(t, domain.DensityCompact, again.Get(ctx, userID))
}
