package ratelimit

import (
	"fmt"
	"net/http"
	"time"

	"github.com/deskalign/posture-api/internal/monitoring"
	"github.com/gin-gonic/gin"
)

// IPRateLimitMiddleware creates middleware for IP-based rate limiting
func IPRateLimitMiddleware(limiter *RateLimiter, metrics *monitoring.Metrics) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ip := ctx.ClientIP()

		result, err := limiter.AllowIP(ctx.Request.Context(), ip)
		if err != nil {
			// Fail open if the limiter itself errors
			ctx.Next()
			return
		}

		ctx.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		ctx.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		ctx.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetAt.Unix()))

		if !result.Allowed {
			if metrics != nil {
				metrics.IncrementRateLimitIPBlock()
			}
			retryAfter := int(result.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			ctx.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			ctx.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"message":     fmt.Sprintf("Too many requests from IP %s. Try again in %d seconds.", ip, retryAfter),
				"retry_after": retryAfter,
			})
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}

// EndpointRateLimitMiddleware creates per-endpoint rate limiting for expensive routes
func EndpointRateLimitMiddleware(limiter *RateLimiter, endpoint string, limitPerMin int, metrics *monitoring.Metrics) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ip := ctx.ClientIP()
		key := fmt.Sprintf("ratelimit:endpoint:%s:%s", endpoint, ip)

		result, err := limiter.allow(ctx.Request.Context(), key, limitPerMin, time.Minute)
		if err != nil {
			ctx.Next()
			return
		}

		if !result.Allowed {
			if metrics != nil {
				metrics.IncrementRateLimitEndpoint(endpoint)
			}
			retryAfter := int(result.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			ctx.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			ctx.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Endpoint rate limit exceeded",
				"message":     fmt.Sprintf("Too many requests to %s. Try again in %d seconds.", endpoint, retryAfter),
				"retry_after": retryAfter,
			})
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}
