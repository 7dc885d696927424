package auth

import (
	"context"
	"math"
	"sync"
	"time"

	"storefront/internal/domain"
)

const (
	DefaultMaxFailures   = 5
	DefaultLockoutWindow = 30 * time.Minute
)

// ThrottleState stores the failed-login counter. Every method must be atomic
// with respect to concurrent callers.
type ThrottleState interface {
	Snapshot(ctx context.Context) (failed int, lastFailure time.Time, err error)
	RecordFailure(ctx context.Context, now time.Time) (int, error)
	Reset(ctx context.Context) error
}

// Throttle locks out logins after MaxFailures consecutive failures for Window.
// The counter is global: it is not keyed by account or client address.
type Throttle struct {
	State       ThrottleState
	MaxFailures int
	Window      time.Duration
	OnLocked    func(remainingMinutes int)
}

func NewThrottle(state ThrottleState) *Throttle {
	if state == nil {
		state = NewMemoryState()
	}
	return &Throttle{
		State:       state,
		MaxFailures: DefaultMaxFailures,
		Window:      DefaultLockoutWindow,
	}
}

// Check returns domain.LockedError while the lockout window is active.
func (t *Throttle) Check(ctx context.Context, now time.Time) error {
	failed, last, err := t.State.Snapshot(ctx)
	if err != nil {
		return err
	}
	if failed < t.MaxFailures {
		return nil
	}
	elapsed := now.Sub(last)
	if elapsed >= t.Window {
		return nil
	}
	remaining := int(math.Ceil(float64(t.Window-elapsed) / float64(time.Minute)))
	if t.OnLocked != nil {
		t.OnLocked(remaining)
	}
	return domain.LockedError{RemainingMinutes: remaining}
}

// Fail records a failed attempt and returns the updated counter.
func (t *Throttle) Fail(ctx context.Context, now time.Time) (int, error) {
	return t.State.RecordFailure(ctx, now)
}

// Succeed clears the counter after a successful login.
func (t *Throttle) Succeed(ctx context.Context) error {
	return t.State.Reset(ctx)
}

// MemoryState keeps the counter in process memory.
type MemoryState struct {
	mu          sync.Mutex
	failed      int
	lastFailure time.Time
}

func NewMemoryState() *MemoryState {
	return &MemoryState{}
}

func (s *MemoryState) Snapshot(context.Context) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed, s.lastFailure, nil
}

func (s *MemoryState) RecordFailure(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed++
	s.lastFailure = now
	return s.failed, nil
}

func (s *MemoryState) Reset(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed = 0
	return nil
}
