package middleware

import (
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/eduboost/course-portal-api/internal/service"
	"github.com/eduboost/course-portal-api/pkg/config"
	appErrors "github.com/eduboost/course-portal-api/pkg/errors"
	"github.com/eduboost/course-portal-api/pkg/response"
)

// RateLimit throttles requests per client address. Denials carry a
// Retry-After header plus structured details so clients can surface a
// retry hint. Limiter errors fail open: availability beats throttling.
func RateLimit(limiter service.RateLimiter, cfg config.RateLimitConfig, metrics *service.MetricsService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Warn("rate limiter unavailable, failing open", zap.Error(err))
			c.Next()
			return
		}
		if decision.Allowed {
			c.Next()
			return
		}

		if metrics != nil {
			metrics.RecordRateLimited()
		}

		retryAfterSeconds := int(math.Ceil(decision.RetryAfter.Seconds()))
		if retryAfterSeconds < 1 {
			retryAfterSeconds = 1
		}
		c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))

		rateErr := appErrors.WithDetails(appErrors.ErrRateLimited, map[string]interface{}{
			"retryAfterSeconds": retryAfterSeconds,
			"windowMs":          int64(cfg.Window / time.Millisecond),
			"maxRequests":       cfg.MaxRequests,
		})
		response.Error(c, rateErr)
		c.Abort()
	}
}
