package auth

import (
	"context"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// RedisEvaler is the subset of a Redis client RedisState needs.
type RedisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) (interface{}, error)
}

// GoRedisEvaler adapts a go-redis client to RedisEvaler.
type GoRedisEvaler struct{ c *redis.Client }

func NewGoRedisEvaler(addr string) *GoRedisEvaler {
	return &GoRedisEvaler{c: redis.NewClient(&redis.Options{Addr: addr})}
}

func (g *GoRedisEvaler) Eval(ctx context.Context, script string, keys []string, args ...interface{}) (interface{}, error) {
	return g.c.Eval(ctx, script, keys, args...).Result()
}

func (g *GoRedisEvaler) Ping(ctx context.Context) error {
	return g.c.Ping(ctx).Err()
}

func (g *GoRedisEvaler) Close() error {
	return g.c.Close()
}

// DefaultThrottleKey is the hash holding the shared counter.
const DefaultThrottleKey = "storefront:login_throttle"

const (
	snapshotScript = `
local v = redis.call('HMGET', KEYS[1], 'failed', 'last_failure_ms')
return {tonumber(v[1]) or 0, tonumber(v[2]) or 0}
`
	recordFailureScript = `
local n = redis.call('HINCRBY', KEYS[1], 'failed', 1)
redis.call('HSET', KEYS[1], 'last_failure_ms', ARGV[1])
return n
`
	resetScript = `
redis.call('HSET', KEYS[1], 'failed', 0)
return 1
`
)

// RedisState shares the throttle counter between server instances.
// Each operation runs as one script so increments are never lost.
type RedisState struct {
	client RedisEvaler
	key    string
}

func NewRedisState(client RedisEvaler, key string) *RedisState {
	if key == "" {
		key = DefaultThrottleKey
	}
	return &RedisState{client: client, key: key}
}

func (s *RedisState) Snapshot(ctx context.Context) (int, time.Time, error) {
	res, err := s.client.Eval(ctx, snapshotScript, []string{s.key})
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis snapshot key=%s: %w", s.key, err)
	}
	vals, ok := res.([]interface{})
	if !ok || len(vals) != 2 {
		return 0, time.Time{}, fmt.Errorf("redis snapshot key=%s: unexpected reply %T", s.key, res)
	}
	failed, err := toInt64(vals[0])
	if err != nil {
		return 0, time.Time{}, err
	}
	lastMs, err := toInt64(vals[1])
	if err != nil {
		return 0, time.Time{}, err
	}
	var last time.Time
	if lastMs > 0 {
		last = time.UnixMilli(lastMs)
	}
	return int(failed), last, nil
}

func (s *RedisState) RecordFailure(ctx context.Context, now time.Time) (int, error) {
	res, err := s.client.Eval(ctx, recordFailureScript, []string{s.key}, now.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("redis record failure key=%s: %w", s.key, err)
	}
	n, err := toInt64(res)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (s *RedisState) Reset(ctx context.Context) error {
	if _, err := s.client.Eval(ctx, resetScript, []string{s.key}); err != nil {
		return fmt.Errorf("redis reset key=%s: %w", s.key, err)
	}
	return nil
}

func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("unexpected redis integer %T", v)
	}
}
