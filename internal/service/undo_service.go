package service

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"pukaist/internal/domain"
)

// UndoInput describes one reversible action handed to the coordinator.
type UndoInput struct {
	Message  string
	Duration time.Duration // zero means the configured default
	OnUndo   func()
	OnExpire func()
}

// UndoService coordinates optimistic-delete-with-undo interactions. At most
// one action is pending per user; an action resolves exactly once, either
// through Undo or through the expire/confirm path (timeout, dismissal, or
// displacement by a newer action).
type UndoService interface {
	Start(userID uuid.UUID, input UndoInput) domain.UndoAction
	Undo(userID, actionID uuid.UUID) error
	Dismiss(userID, actionID uuid.UUID) error
	Current(userID uuid.UUID) (*domain.UndoAction, time.Duration, bool)
	Shutdown()
}

// pendingAction owns the countdown timer for one action. The resolved flag
// is the single-use guard: whichever path wins the compare-and-swap fires
// its callback, the loser is a no-op, so a timer firing concurrently with an
// explicit undo can never double-invoke.
type pendingAction struct {
	action   domain.UndoAction
	timer    *time.Timer
	resolved atomic.Bool
	onUndo   func()
	onExpire func()
}

type undoService struct {
	mu              sync.Mutex
	pending         map[uuid.UUID]*pendingAction
	defaultDuration time.Duration
}

// NewUndoService creates an UndoService with the given default countdown.
func NewUndoService(defaultDuration time.Duration) UndoService {
	if defaultDuration <= 0 {
		defaultDuration = 5 * time.Second
	}
	return &undoService{
		pending:         make(map[uuid.UUID]*pendingAction),
		defaultDuration: defaultDuration,
	}
}

// Start registers a new pending action. A still-pending previous action for
// the same user is resolved through its expire path first: silent
// displacement is implicit confirmation, the same policy as Dismiss.
func (s *undoService) Start(userID uuid.UUID, input UndoInput) domain.UndoAction {
	duration := input.Duration
	if duration <= 0 {
		duration = s.defaultDuration
	}

	now := time.Now().UTC()
	action := domain.UndoAction{
		ID:        uuid.New(),
		Message:   input.Message,
		Duration:  duration,
		CreatedAt: now,
		ExpiresAt: now.Add(duration),
	}

	p := &pendingAction{
		action:   action,
		onUndo:   input.OnUndo,
		onExpire: input.OnExpire,
	}

	s.mu.Lock()
	prev := s.pending[userID]
	s.pending[userID] = p
	p.timer = time.AfterFunc(duration, func() {
		s.resolveExpire(userID, p)
	})
	s.mu.Unlock()

	if prev != nil {
		prev.timer.Stop()
		fireExpire(prev)
	}

	return action
}

// Undo resolves the pending action through the undo path.
func (s *undoService) Undo(userID, actionID uuid.UUID) error {
	p, err := s.take(userID, actionID)
	if err != nil {
		return err
	}
	p.timer.Stop()
	if !p.resolved.CompareAndSwap(false, true) {
		return domain.ErrUndoActionResolved
	}
	if p.onUndo != nil {
		p.onUndo()
	}
	return nil
}

// Dismiss resolves the pending action through the expire/confirm path;
// navigating away from a pending action is treated as implicit confirmation.
func (s *undoService) Dismiss(userID, actionID uuid.UUID) error {
	p, err := s.take(userID, actionID)
	if err != nil {
		return err
	}
	p.timer.Stop()
	if !fireExpire(p) {
		return domain.ErrUndoActionResolved
	}
	return nil
}

// Current returns the pending action and its remaining time for UI sampling.
func (s *undoService) Current(userID uuid.UUID) (*domain.UndoAction, time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[userID]
	if !ok || p.resolved.Load() {
		return nil, 0, false
	}
	remaining := time.Until(p.action.ExpiresAt)
	if remaining < 0 {
		remaining = 0
	}
	action := p.action
	return &action, remaining, true
}

// Shutdown stops all countdown timers without firing callbacks. Pending
// actions are abandoned; server shutdown is not a confirmation.
func (s *undoService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, p := range s.pending {
		p.timer.Stop()
		p.resolved.Store(true)
		delete(s.pending, userID)
	}
}

// take removes the identified action from the pending map, leaving
// resolution to the caller.
func (s *undoService) take(userID, actionID uuid.UUID) (*pendingAction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[userID]
	if !ok || p.action.ID != actionID {
		return nil, domain.ErrUndoActionNotFound
	}
	delete(s.pending, userID)
	return p, nil
}

// resolveExpire is the timer callback: drop the action from the map if it is
// still current, then fire the confirm path.
func (s *undoService) resolveExpire(userID uuid.UUID, p *pendingAction) {
	s.mu.Lock()
	if cur, ok := s.pending[userID]; ok && cur == p {
		delete(s.pending, userID)
	}
	s.mu.Unlock()
	fireExpire(p)
}

// fireExpire fires the confirm callback if this action has not already
// resolved. Returns false when the action was already resolved.
func fireExpire(p *pendingAction) bool {
	if !p.resolved.CompareAndSwap(false, true) {
		return false
	}
	if p.onExpire != nil {
		p.onExpire()
	}
	log.Printf("undoService: action %s confirmed (%s)", p.action.ID, p.action.Message)
	return true
}
