package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskalign/posture-api/internal/monitoring"
)

func newFallbackLimiter(ipLimit int) *RateLimiter {
	redisClient := &RedisClient{enabled: false}
	config := Config{
		IPLimitPerMin:      ipLimit,
		AnalyzeLimitPerMin: ipLimit,
		BurstMultiplier:    1,
	}
	return NewRateLimiter(redisClient, config, monitoring.NewMetrics())
}

func TestRateLimiterFallbackMode(t *testing.T) {
	limiter := newFallbackLimiter(5)
	ctx := context.Background()

	// Burst capacity floors at 5, so the first 5 requests pass
	for i := 0; i < 5; i++ {
		result, err := limiter.AllowIP(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, result.Allowed, "Request %d should be allowed", i+1)
		assert.Equal(t, 5, result.Limit)
	}

	result, err := limiter.AllowIP(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, result.Allowed, "6th request should be blocked")
	assert.Greater(t, result.RetryAfter, time.Duration(0))
}

func TestRateLimiterIsolatesIPs(t *testing.T) {
	limiter := newFallbackLimiter(5)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		result, err := limiter.AllowIP(ctx, "10.0.0.1")
		require.NoError(t, err)
		require.True(t, result.Allowed)
	}

	blocked, err := limiter.AllowIP(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, blocked.Allowed)

	other, err := limiter.AllowIP(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, other.Allowed, "Distinct IP should not share a bucket")
}

func TestRateLimiterStats(t *testing.T) {
	limiter := newFallbackLimiter(5)

	_, err := limiter.AllowIP(context.Background(), "10.0.0.3")
	require.NoError(t, err)

	stats := limiter.GetStats()
	assert.Equal(t, false, stats["redis_enabled"])
	assert.Equal(t, 1, stats["fallback_limiters"])
}
