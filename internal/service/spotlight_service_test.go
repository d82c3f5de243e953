package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	memorykv "pukaist/internal/kv/memory"
)

func TestSpotlightMarkSeen(t *testing.T) {
	svc := NewSpotlightService(memorykv.NewStore())
	ctx := context.Background()
	userID := uuid.New()

	assert.Empty(t, svc.Seen(ctx, userID))

	svc.MarkSeen(ctx, userID, "density-toggle")
	seen := svc.MarkSeen(ctx, userID, "collection-export")

	assert.Equal(t, []string{"collection-export", "density-toggle"}, seen)

	// Marking twice is idempotent.
	assert.Equal(t, seen, svc.MarkSeen(ctx, userID, "density-toggle"))
}

func TestSpotlightReset(t *testing.T) {
	svc := NewSpotlightService(memorykv.NewStore())
	ctx := context.Background()
	userID := uuid.New()

	svc.MarkSeen(ctx, userID, "density-toggle")
	svc.Reset(ctx, userID)
	assert.Empty(t, svc.Seen(ctx, userID))
}
