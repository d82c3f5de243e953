package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pukaist/internal/domain"
	memorykv "pukaist/internal/kv/memory"
)

// fakeClock advances manually so streak arithmetic is deterministic.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestProgress() (ProgressService, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	return NewProgressServiceWithClock(memorykv.NewStore(), clock.now), clock
}

func TestRecordVisit_FirstVisit(t *testing.T) {
	svc, clock := newTestProgress()
	ctx := context.Background()
	userID := uuid.New()

	streak := svc.RecordVisit(ctx, userID)

	assert.Equal(t, 1, streak.CurrentDays)
	assert.Equal(t, clock.t, streak.FirstVisit)
	assert.Equal(t, clock.t, streak.LastVisit)
}

func TestRecordVisit_SameDayUnchanged(t *testing.T) {
	svc, clock := newTestProgress()
	ctx := context.Background()
	userID := uuid.New()

	svc.RecordVisit(ctx, userID)
	clock.advance(3 * time.Hour)
	streak := svc.RecordVisit(ctx, userID)

	assert.Equal(t, 1, streak.CurrentDays)
	assert.Equal(t, clock.t, streak.LastVisit)
}

func TestRecordVisit_NextDayIncrements(t *testing.T) {
	svc, clock := newTestProgress()
	ctx := context.Background()
	userID := uuid.New()

	svc.RecordVisit(ctx, userID)
	clock.advance(30 * time.Hour)
	streak := svc.RecordVisit(ctx, userID)

	assert.Equal(t, 2, streak.CurrentDays)
}

func TestRecordVisit_TwoDayGapResets(t *testing.T) {
	svc, clock := newTestProgress()
	ctx := context.Background()
	userID := uuid.New()

	svc.RecordVisit(ctx, userID)
	clock.advance(30 * time.Hour)
	svc.RecordVisit(ctx, userID)
	clock.advance(72 * time.Hour)
	streak := svc.RecordVisit(ctx, userID)

	assert.Equal(t, 1, streak.CurrentDays)
}

func TestRecordVisit_Exactly48HoursResets(t *testing.T) {
	svc, clock := newTestProgress()
	ctx := context.Background()
	userID := uuid.New()

	svc.RecordVisit(ctx, userID)
	clock.advance(48 * time.Hour)
	streak := svc.RecordVisit(ctx, userID)

	assert.Equal(t, 1, streak.CurrentDays)
}

func TestMarkLessonViewed_Idempotent(t *testing.T) {
	svc, clock := newTestProgress()
	ctx := context.Background()
	userID := uuid.New()

	first := svc.MarkLessonViewed(ctx, userID, "land", "m1", "u1", "l1")
	assert.Equal(t, 1, first.TotalLessonsViewed)
	firstViewed := first.Pathways["land"].Modules["m1"].Units["u1"].Lessons["l1"].ViewedAt

	clock.advance(time.Hour)
	repeat := svc.MarkLessonViewed(ctx, userID, "land", "m1", "u1", "l1")

	// Repeat views neither bump the total nor refresh the first-view stamp.
	assert.Equal(t, 1, repeat.TotalLessonsViewed)
	assert.Equal(t, firstViewed, repeat.Pathways["land"].Modules["m1"].Units["u1"].Lessons["l1"].ViewedAt)

	other := svc.MarkLessonViewed(ctx, userID, "land", "m1", "u1", "l2")
	assert.Equal(t, 2, other.TotalLessonsViewed)
}

func TestMarkUnitCompleted_RefreshesTimestamp(t *testing.T) {
	svc, clock := newTestProgress()
	ctx := context.Background()
	userID := uuid.New()

	first := svc.MarkUnitCompleted(ctx, userID, "water", "m1", "u1")
	stamp1 := first.Pathways["water"].Modules["m1"].Units["u1"].CompletedAt
	require.NotNil(t, stamp1)

	clock.advance(time.Hour)
	second := svc.MarkUnitCompleted(ctx, userID, "water", "m1", "u1")
	stamp2 := second.Pathways["water"].Modules["m1"].Units["u1"].CompletedAt
	require.NotNil(t, stamp2)

	assert.True(t, stamp2.After(*stamp1))
}

func TestPathwayProgress_Percent(t *testing.T) {
	svc, _ := newTestProgress()
	ctx := context.Background()
	userID := uuid.New()

	svc.MarkUnitCompleted(ctx, userID, "land", "m1", "u1")
	svc.MarkUnitCompleted(ctx, userID, "land", "m2", "u1")

	assert.Equal(t, 67, svc.PathwayProgress(ctx, userID, "land", 3))
	assert.Equal(t, 100, svc.PathwayProgress(ctx, userID, "land", 2))
	assert.Equal(t, 0, svc.PathwayProgress(ctx, userID, "land", 0))

	// Re-completing a unit does not move the percentage.
	svc.MarkUnitCompleted(ctx, userID, "land", "m1", "u1")
	assert.Equal(t, 100, svc.PathwayProgress(ctx, userID, "land", 2))
}

func TestModuleProgress_ScopedToModule(t *testing.T) {
	svc, _ := newTestProgress()
	ctx := context.Background()
	userID := uuid.New()

	svc.MarkUnitCompleted(ctx, userID, "land", "m1", "u1")
	svc.MarkUnitCompleted(ctx, userID, "land", "m2", "u1")

	assert.Equal(t, 50, svc.ModuleProgress(ctx, userID, "land", "m1", 2))
	assert.Equal(t, 0, svc.ModuleProgress(ctx, userID, "land", "m3", 2))
}

func TestProgressReset_DefaultPathways(t *testing.T) {
	svc, _ := newTestProgress()
	ctx := context.Background()
	userID := uuid.New()

	svc.MarkLessonViewed(ctx, userID, "custom", "m1", "u1", "l1")
	svc.RecordVisit(ctx, userID)

	state := svc.Reset(ctx, userID)

	assert.Equal(t, 0, state.TotalLessonsViewed)
	assert.Zero(t, state.Streak.CurrentDays)
	assert.NotContains(t, state.Pathways, "custom")
	for _, p := range domain.DefaultPathways {
		require.Contains(t, state.Pathways, p)
		assert.Empty(t, state.Pathways[p].Modules)
	}
}

func TestProgressGet_CorruptBlobFallsBack(t *testing.T) {
	kv := memorykv.NewStore()
	ctx := context.Background()
	userID := uuid.New()
	require.NoError(t, kv.Set(ctx, curriculumKey(userID), []byte("{not json")))

	svc := NewProgressService(kv)
	state := svc.Get(ctx, userID)
	assert.Len(t, state.Pathways, len(domain.DefaultPathways))
}
