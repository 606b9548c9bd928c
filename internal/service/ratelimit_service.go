package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateDecision is the outcome of a throttle check.
type RateDecision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// RateLimiter throttles clients with a fixed window per key: the
// counter hard-resets at the window boundary, no carry-over.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateDecision, error)
}

// RateLimitConfig tunes window size and ceiling.
type RateLimitConfig struct {
	Window      time.Duration
	MaxRequests int
	Clock       func() time.Time
}

type rateBucket struct {
	count   int
	resetAt time.Time
}

// MemoryRateLimiter keeps buckets in process memory. Suitable for a
// single instance; use the Redis limiter when running more than one.
type MemoryRateLimiter struct {
	cfg RateLimitConfig
	now func() time.Time

	mu      sync.Mutex
	buckets map[string]rateBucket
}

// NewMemoryRateLimiter constructs an in-memory fixed-window limiter.
func NewMemoryRateLimiter(cfg RateLimitConfig) *MemoryRateLimiter {
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = 30
	}
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	return &MemoryRateLimiter{cfg: cfg, now: now, buckets: make(map[string]rateBucket)}
}

// Allow counts a request against the key's current window.
func (l *MemoryRateLimiter) Allow(_ context.Context, key string) (RateDecision, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	bucket, ok := l.buckets[key]
	if !ok || !bucket.resetAt.After(now) {
		l.buckets[key] = rateBucket{count: 1, resetAt: now.Add(l.cfg.Window)}
		return RateDecision{Allowed: true}, nil
	}

	if bucket.count >= l.cfg.MaxRequests {
		return RateDecision{Allowed: false, RetryAfter: bucket.resetAt.Sub(now)}, nil
	}

	bucket.count++
	l.buckets[key] = bucket
	return RateDecision{Allowed: true}, nil
}

// StartSweeper evicts stale buckets so the map stays bounded.
func (l *MemoryRateLimiter) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = l.cfg.Window
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.sweep()
			}
		}
	}()
}

func (l *MemoryRateLimiter) sweep() {
	now := l.now()
	l.mu.Lock()
	for key, bucket := range l.buckets {
		if !bucket.resetAt.After(now) {
			delete(l.buckets, key)
		}
	}
	l.mu.Unlock()
}

// RedisRateLimiter shares fixed windows across instances. Each window
// gets its own key (suffixed by window start) so the reset-at-boundary
// semantic matches the in-memory limiter exactly.
type RedisRateLimiter struct {
	cfg    RateLimitConfig
	client *redis.Client
	now    func() time.Time
}

// NewRedisRateLimiter constructs a Redis-backed fixed-window limiter.
func NewRedisRateLimiter(client *redis.Client, cfg RateLimitConfig) *RedisRateLimiter {
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = 30
	}
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	return &RedisRateLimiter{cfg: cfg, client: client, now: now}
}

// Allow counts a request in the key's current window. Errors talking
// to Redis are returned so the caller can decide to fail open.
func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (RateDecision, error) {
	now := l.now()
	windowStart := now.Truncate(l.cfg.Window)
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, windowStart.Unix())

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return RateDecision{}, fmt.Errorf("rate limit incr: %w", err)
	}
	if count == 1 {
		// Expire a little after the boundary so clock skew between
		// instances cannot drop a live window.
		if err := l.client.Expire(ctx, redisKey, l.cfg.Window+time.Second).Err(); err != nil {
			return RateDecision{}, fmt.Errorf("rate limit expire: %w", err)
		}
	}

	if count > int64(l.cfg.MaxRequests) {
		return RateDecision{Allowed: false, RetryAfter: windowStart.Add(l.cfg.Window).Sub(now)}, nil
	}
	return RateDecision{Allowed: true}, nil
}
