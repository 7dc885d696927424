package auth

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"
)

// fakeRedisEvaler emulates the three throttle scripts against an in-memory hash.
type fakeRedisEvaler struct {
	hashes    map[string]map[string]int64
	calls     int
	returnErr error
}

func newFakeRedisEvaler() *fakeRedisEvaler {
	return &fakeRedisEvaler{hashes: map[string]map[string]int64{}}
}

func (f *fakeRedisEvaler) Eval(ctx context.Context, script string, keys []string, args ...interface{}) (interface{}, error) {
	f.calls++
	if f.returnErr != nil {
		return nil, f.returnErr
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	h, ok := f.hashes[keys[0]]
	if !ok {
		h = map[string]int64{}
		f.hashes[keys[0]] = h
	}
	switch script {
	case snapshotScript:
		return []interface{}{h["failed"], h["last_failure_ms"]}, nil
	case recordFailureScript:
		h["failed"]++
		ms, _ := strconv.ParseInt(toString(args[0]), 10, 64)
		h["last_failure_ms"] = ms
		return h["failed"], nil
	case resetScript:
		h["failed"] = 0
		return int64(1), nil
	}
	return nil, errors.New("unknown script")
}

func toString(v interface{}) string {
	switch x := v.(type) {
	case int64:
		return strconv.FormatInt(x, 10)
	case string:
		return x
	}
	return ""
}

func TestRedisState_DefaultKey(t *testing.T) {
	s := NewRedisState(newFakeRedisEvaler(), "")
	if s.key != DefaultThrottleKey {
		t.Fatalf("expected default key %q, got %q", DefaultThrottleKey, s.key)
	}
}

func TestRedisState_EmptySnapshot(t *testing.T) {
	s := NewRedisState(newFakeRedisEvaler(), "k")
	failed, last, err := s.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if failed != 0 || !last.IsZero() {
		t.Fatalf("expected zero state, got %d %v", failed, last)
	}
}

func TestRedisState_RecordAndReset(t *testing.T) {
	ctx := context.Background()
	s := NewRedisState(newFakeRedisEvaler(), "k")
	now := time.UnixMilli(1735725600000)

	for i := 1; i <= 3; i++ {
		n, err := s.RecordFailure(ctx, now)
		if err != nil {
			t.Fatalf("record failure: %v", err)
		}
		if n != i {
			t.Fatalf("count: got %d want %d", n, i)
		}
	}

	failed, last, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if failed != 3 || !last.Equal(now) {
		t.Fatalf("snapshot mismatch: %d %v", failed, last)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	failed, _, _ = s.Snapshot(ctx)
	if failed != 0 {
		t.Fatalf("expected reset counter, got %d", failed)
	}
}

func TestRedisState_WithThrottle(t *testing.T) {
	ctx := context.Background()
	th := NewThrottle(NewRedisState(newFakeRedisEvaler(), ""))
	now := time.UnixMilli(1735725600000)
	for i := 0; i < 5; i++ {
		if _, err := th.Fail(ctx, now); err != nil {
			t.Fatalf("fail: %v", err)
		}
	}
	if err := th.Check(ctx, now); err == nil {
		t.Fatalf("expected lockout")
	}
}

func TestRedisState_ErrorWrapped(t *testing.T) {
	f := newFakeRedisEvaler()
	f.returnErr = errors.New("conn refused")
	s := NewRedisState(f, "k")

	if _, _, err := s.Snapshot(context.Background()); !errors.Is(err, f.returnErr) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if _, err := s.RecordFailure(context.Background(), time.Now()); !errors.Is(err, f.returnErr) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if err := s.Reset(context.Background()); !errors.Is(err, f.returnErr) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
