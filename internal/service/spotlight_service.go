package service

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"pukaist/internal/port"
)

// SpotlightService tracks which feature spotlights a user has already seen,
// so each one shows at most once.
type SpotlightService interface {
	Seen(ctx context.Context, userID uuid.UUID) []string
	MarkSeen(ctx context.Context, userID uuid.UUID, feature string) []string
	Reset(ctx context.Context, userID uuid.UUID)
}

type spotlightService struct {
	kv port.KeyValueStore
}

// NewSpotlightService creates a new SpotlightService implementation.
func NewSpotlightService(kv port.KeyValueStore) SpotlightService {
	return &spotlightService{kv: kv}
}

func spotlightKey(userID uuid.UUID) string {
	return "pukaist:seen-spotlights:" + userID.String()
}

func (s *spotlightService) load(ctx context.Context, userID uuid.UUID) map[string]bool {
	seen := map[string]bool{}
	readState(ctx, s.kv, spotlightKey(userID), &seen)
	return seen
}

func (s *spotlightService) Seen(ctx context.Context, userID uuid.UUID) []string {
	return sortedKeys(s.load(ctx, userID))
}

func (s *spotlightService) MarkSeen(ctx context.Context, userID uuid.UUID, feature string) []string {
	seen := s.load(ctx, userID)
	seen[feature] = true
	writeState(ctx, s.kv, spotlightKey(userID), seen)
	return sortedKeys(seen)
}

func (s *spotlightService) Reset(ctx context.Context, userID uuid.UUID) {
	writeState(ctx, s.kv, spotlightKey(userID), map[string]bool{})
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
