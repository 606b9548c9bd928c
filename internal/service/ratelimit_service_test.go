package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterAllowsUpToCeiling(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	limiter := NewMemoryRateLimiter(RateLimitConfig{Window: time.Minute, MaxRequests: 5, Clock: clock.Now})

	for i := 0; i < 5; i++ {
		decision, err := limiter.Allow(context.Background(), "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, decision.Allowed, "request %d should pass", i+1)
	}

	decision, err := limiter.Allow(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Greater(t, decision.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, decision.RetryAfter, time.Minute)
}

func TestMemoryLimiterResetsAtWindowBoundary(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	limiter := NewMemoryRateLimiter(RateLimitConfig{Window: time.Minute, MaxRequests: 2, Clock: clock.Now})

	for i := 0; i < 2; i++ {
		decision, err := limiter.Allow(context.Background(), "1.2.3.4")
		require.NoError(t, err)
		require.True(t, decision.Allowed)
	}
	decision, err := limiter.Allow(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	require.False(t, decision.Allowed)

	clock.Advance(time.Minute)

	decision, err = limiter.Allow(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestMemoryLimiterKeysAreIndependent(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	limiter := NewMemoryRateLimiter(RateLimitConfig{Window: time.Minute, MaxRequests: 1, Clock: clock.Now})

	first, err := limiter.Allow(context.Background(), "1.1.1.1")
	require.NoError(t, err)
	assert.True(t, first.Allowed)

	blocked, err := limiter.Allow(context.Background(), "1.1.1.1")
	require.NoError(t, err)
	assert.False(t, blocked.Allowed)

	other, err := limiter.Allow(context.Background(), "2.2.2.2")
	require.NoError(t, err)
	assert.True(t, other.Allowed)
}

func TestMemoryLimiterSweepEvictsStaleBuckets(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	limiter := NewMemoryRateLimiter(RateLimitConfig{Window: time.Minute, MaxRequests: 3, Clock: clock.Now})

	_, err := limiter.Allow(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	require.Len(t, limiter.buckets, 1)

	clock.Advance(2 * time.Minute)
	limiter.sweep()
	assert.Empty(t, limiter.buckets)
}
