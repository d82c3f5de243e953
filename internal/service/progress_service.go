package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"pukaist/internal/domain"
	"pukaist/internal/port"
)

// ProgressService tracks per-user curriculum progress: lesson views, unit
// completion, percentage rollups, and the day streak.
type ProgressService interface {
	Get(ctx context.Context, userID uuid.UUID) *domain.ProgressState
	RecordVisit(ctx context.Context, userID uuid.UUID) domain.Streak
	MarkLessonViewed(ctx context.Context, userID uuid.UUID, pathway, module, unit, lesson string) *domain.ProgressState
	MarkUnitCompleted(ctx context.Context, userID uuid.UUID, pathway, module, unit string) *domain.ProgressState
	PathwayProgress(ctx context.Context, userID uuid.UUID, pathway string, totalUnits int) int
	ModuleProgress(ctx context.Context, userID uuid.UUID, pathway, module string, totalUnits int) int
	Reset(ctx context.Context, userID uuid.UUID) *domain.ProgressState
}

// learningState is the second persisted blob: streak and cumulative totals,
// stored under its own key separately from the curriculum map.
type learningState struct {
	Streak             domain.Streak `json:"streak"`
	TotalLessonsViewed int           `json:"total_lessons_viewed"`
}

type progressService struct {
	kv  port.KeyValueStore
	now func() time.Time
}

// NewProgressService creates a new ProgressService implementation.
func NewProgressService(kv port.KeyValueStore) ProgressService {
	return NewProgressServiceWithClock(kv, time.Now)
}

// NewProgressServiceWithClock creates a ProgressService with an injected
// clock so streak arithmetic is testable.
func NewProgressServiceWithClock(kv port.KeyValueStore, now func() time.Time) ProgressService {
	return &progressService{kv: kv, now: now}
}

func curriculumKey(userID uuid.UUID) string {
	return "pukaist:curriculum-progress:" + userID.String()
}

func learningKey(userID uuid.UUID) string {
	return "pukaist:learning-progress:" + userID.String()
}

func (s *progressService) load(ctx context.Context, userID uuid.UUID) *domain.ProgressState {
	state := domain.DefaultProgressState()
	readState(ctx, s.kv, curriculumKey(userID), &state.Pathways)
	var learning learningState
	if readState(ctx, s.kv, learningKey(userID), &learning) {
		state.Streak = learning.Streak
		state.TotalLessonsViewed = learning.TotalLessonsViewed
	}
	if state.Pathways == nil {
		state.Pathways = domain.DefaultProgressState().Pathways
	}
	return state
}

// persist writes both blobs back wholesale. The two writes are independent;
// a failure between them leaves each blob individually recoverable.
func (s *progressService) persist(ctx context.Context, userID uuid.UUID, state *domain.ProgressState) {
	writeState(ctx, s.kv, curriculumKey(userID), state.Pathways)
	writeState(ctx, s.kv, learningKey(userID), learningState{
		Streak:             state.Streak,
		TotalLessonsViewed: state.TotalLessonsViewed,
	})
}

func (s *progressService) Get(ctx context.Context, userID uuid.UUID) *domain.ProgressState {
	return s.load(ctx, userID)
}

// RecordVisit applies the day-streak rule, evaluated once per session load:
// no prior visit initializes the streak; a gap of more than one day and less
// than two increments it; two days or more resets it; a same-day visit
// leaves it unchanged. The last-visit pointer always moves to now.
func (s *progressService) RecordVisit(ctx context.Context, userID uuid.UUID) domain.Streak {
	state := s.load(ctx, userID)
	now := s.now().UTC()

	switch {
	case state.Streak.LastVisit.IsZero():
		state.Streak.CurrentDays = 1
		state.Streak.FirstVisit = now
	default:
		gap := now.Sub(state.Streak.LastVisit)
		switch {
		case gap >= 48*time.Hour:
			state.Streak.CurrentDays = 1
		case gap > 24*time.Hour:
			state.Streak.CurrentDays++
		}
	}
	state.Streak.LastVisit = now

	s.persist(ctx, userID, state)
	return state.Streak
}

// ensureUnit lazily creates the pathway/module/unit chain on first reference;
// no pre-registration is required.
func ensureUnit(state *domain.ProgressState, pathway, module, unit string) *domain.UnitProgress {
	p, ok := state.Pathways[pathway]
	if !ok {
		p = &domain.PathwayProgress{Modules: map[string]*domain.ModuleProgress{}}
		state.Pathways[pathway] = p
	}
	if p.Modules == nil {
		p.Modules = map[string]*domain.ModuleProgress{}
	}
	m, ok := p.Modules[module]
	if !ok {
		m = &domain.ModuleProgress{Units: map[string]*domain.UnitProgress{}}
		p.Modules[module] = m
	}
	if m.Units == nil {
		m.Units = map[string]*domain.UnitProgress{}
	}
	u, ok := m.Units[unit]
	if !ok {
		u = &domain.UnitProgress{Lessons: map[string]domain.LessonProgress{}}
		m.Units[unit] = u
	}
	if u.Lessons == nil {
		u.Lessons = map[string]domain.LessonProgress{}
	}
	return u
}

// MarkLessonViewed is idempotent: the total increments once per unique lesson
// and the first-view timestamp is preserved on repeat calls.
func (s *progressService) MarkLessonViewed(ctx context.Context, userID uuid.UUID, pathway, module, unit, lesson string) *domain.ProgressState {
	state := s.load(ctx, userID)
	u := ensureUnit(state, pathway, module, unit)
	if _, seen := u.Lessons[lesson]; !seen {
		u.Lessons[lesson] = domain.LessonProgress{
			ViewedAt:  s.now().UTC(),
			Completed: true,
		}
		state.TotalLessonsViewed++
	}
	s.persist(ctx, userID, state)
	return state
}

// MarkUnitCompleted is idempotent but refreshes the completion timestamp on
// every call, unlike lesson views which keep the first timestamp.
func (s *progressService) MarkUnitCompleted(ctx context.Context, userID uuid.UUID, pathway, module, unit string) *domain.ProgressState {
	state := s.load(ctx, userID)
	u := ensureUnit(state, pathway, module, unit)
	now := s.now().UTC()
	u.CompletedAt = &now
	s.persist(ctx, userID, state)
	return state
}

// PathwayProgress returns round(100 * completedUnits / totalUnits). The
// caller supplies totalUnits; the tracker has no authoritative unit catalog,
// so a stale total can push the percentage past intuitive bounds.
func (s *progressService) PathwayProgress(ctx context.Context, userID uuid.UUID, pathway string, totalUnits int) int {
	if totalUnits <= 0 {
		return 0
	}
	state := s.load(ctx, userID)
	completed := 0
	if p, ok := state.Pathways[pathway]; ok {
		for _, m := range p.Modules {
			completed += completedUnits(m)
		}
	}
	return percent(completed, totalUnits)
}

func (s *progressService) ModuleProgress(ctx context.Context, userID uuid.UUID, pathway, module string, totalUnits int) int {
	if totalUnits <= 0 {
		return 0
	}
	state := s.load(ctx, userID)
	completed := 0
	if p, ok := state.Pathways[pathway]; ok {
		if m, ok := p.Modules[module]; ok {
			completed = completedUnits(m)
		}
	}
	return percent(completed, totalUnits)
}

func completedUnits(m *domain.ModuleProgress) int {
	n := 0
	for _, u := range m.Units {
		if u.CompletedAt != nil {
			n++
		}
	}
	return n
}

func percent(completed, total int) int {
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// Reset clears both in-memory and persisted state to the default structure.
func (s *progressService) Reset(ctx context.Context, userID uuid.UUID) *domain.ProgressState {
	state := domain.DefaultProgressState()
	s.persist(ctx, userID, state)
	return state
}
