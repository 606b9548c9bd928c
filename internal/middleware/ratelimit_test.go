package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eduboost/course-portal-api/internal/service"
	"github.com/eduboost/course-portal-api/pkg/config"
)

type stubLimiter struct {
	decision service.RateDecision
	err      error
}

func (s *stubLimiter) Allow(context.Context, string) (service.RateDecision, error) {
	return s.decision, s.err
}

func newRateLimitRouter(limiter service.RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := config.RateLimitConfig{Window: time.Minute, MaxRequests: 30}
	r := gin.New()
	r.Use(RateLimit(limiter, cfg, nil, zap.NewNop()))
	r.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	return r
}

func TestRateLimitAllowsWithinCeiling(t *testing.T) {
	r := newRateLimitRouter(&stubLimiter{decision: service.RateDecision{Allowed: true}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitDeniesWithRetryHint(t *testing.T) {
	r := newRateLimitRouter(&stubLimiter{decision: service.RateDecision{Allowed: false, RetryAfter: 42 * time.Second}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "42", w.Header().Get("Retry-After"))

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				RetryAfterSeconds int   `json:"retryAfterSeconds"`
				WindowMs          int64 `json:"windowMs"`
				MaxRequests       int   `json:"maxRequests"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "RATE_LIMITED", envelope.Error.Code)
	assert.Equal(t, 42, envelope.Error.Details.RetryAfterSeconds)
	assert.Equal(t, int64(60000), envelope.Error.Details.WindowMs)
	assert.Equal(t, 30, envelope.Error.Details.MaxRequests)
}

func TestRateLimitFailsOpenOnLimiterError(t *testing.T) {
	r := newRateLimitRouter(&stubLimiter{err: errors.New("redis down")})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitRoundsSubSecondRetryUp(t *testing.T) {
	r := newRateLimitRouter(&stubLimiter{decision: service.RateDecision{Allowed: false, RetryAfter: 300 * time.Millisecond}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}
