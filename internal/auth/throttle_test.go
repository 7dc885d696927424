package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"storefront/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThrottle_LocksAfterFiveFailures(t *testing.T) {
	ctx := context.Background()
	th := NewThrottle(nil)
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	for i := 1; i <= 5; i++ {
		require.NoError(t, th.Check(ctx, now))
		n, err := th.Fail(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	err := th.Check(ctx, now)
	var locked domain.LockedError
	require.True(t, errors.As(err, &locked), "expected LockedError, got %v", err)
	assert.Equal(t, 30, locked.RemainingMinutes)
}

func TestThrottle_RemainingMinutesRoundsUp(t *testing.T) {
	ctx := context.Background()
	th := NewThrottle(nil)
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, _ = th.Fail(ctx, start)
	}

	err := th.Check(ctx, start.Add(10*time.Minute+30*time.Second))
	var locked domain.LockedError
	require.True(t, errors.As(err, &locked))
	assert.Equal(t, 20, locked.RemainingMinutes)

	err = th.Check(ctx, start.Add(29*time.Minute+59*time.Second))
	require.True(t, errors.As(err, &locked))
	assert.Equal(t, 1, locked.RemainingMinutes)
}

func TestThrottle_UnlocksAfterWindow(t *testing.T) {
	ctx := context.Background()
	th := NewThrottle(nil)
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, _ = th.Fail(ctx, start)
	}

	assert.NoError(t, th.Check(ctx, start.Add(30*time.Minute)))

	// counter is not cleared by time alone: the next failure locks again
	n, err := th.Fail(ctx, start.Add(31*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.True(t, domain.IsLocked(th.Check(ctx, start.Add(31*time.Minute))))
}

func TestThrottle_SuccessResetsCounter(t *testing.T) {
	ctx := context.Background()
	th := NewThrottle(nil)
	now := time.Now()

	for i := 0; i < 4; i++ {
		_, _ = th.Fail(ctx, now)
	}
	require.NoError(t, th.Succeed(ctx))

	require.NoError(t, th.Check(ctx, now))
	n, err := th.Fail(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, th.Check(ctx, now))
}

func TestThrottle_OnLockedHook(t *testing.T) {
	ctx := context.Background()
	th := NewThrottle(nil)
	var got int
	th.OnLocked = func(m int) { got = m }
	now := time.Now()
	for i := 0; i < 5; i++ {
		_, _ = th.Fail(ctx, now)
	}
	_ = th.Check(ctx, now.Add(5*time.Minute))
	assert.Equal(t, 25, got)
}

func TestMemoryState_ConcurrentFailuresAreCounted(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryState()
	now := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.RecordFailure(ctx, now)
		}()
	}
	wg.Wait()

	failed, last, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, failed)
	assert.True(t, last.Equal(now))
}

type failingState struct{ err error }

func (f failingState) Snapshot(context.Context) (int, time.Time, error) { return 0, time.Time{}, f.err }
func (f failingState) RecordFailure(context.Context, time.Time) (int, error) {
	return 0, f.err
}
func (f failingState) Reset(context.Context) error { return f.err }

func TestThrottle_StateErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	th := NewThrottle(failingState{err: boom})
	assert.ErrorIs(t, th.Check(context.Background(), time.Now()), boom)
}
