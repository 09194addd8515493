// file: internal/server/middleware/ratelimit_test.go
// version: 1.1.0
// guid: 9f2c61de-4b07-4d3a-a1e8-77c0d52b8b64

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func rateLimitedRouter(limiter *IPRateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/api/search", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestIPRateLimiter_BurstThenThrottle(t *testing.T) {
	t.Parallel()

	limiter := NewIPRateLimiter(60, 2)
	router := rateLimitedRouter(limiter)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		codes = append(codes, resp.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2])
}

func TestIPRateLimiter_PerClientIsolation(t *testing.T) {
	t.Parallel()

	limiter := NewIPRateLimiter(60, 1)
	router := rateLimitedRouter(limiter)

	first := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	firstResp := httptest.NewRecorder()
	router.ServeHTTP(firstResp, first)
	assert.Equal(t, http.StatusOK, firstResp.Code)

	// A different client gets its own bucket.
	second := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	second.RemoteAddr = "10.0.0.2:1234"
	secondResp := httptest.NewRecorder()
	router.ServeHTTP(secondResp, second)
	assert.Equal(t, http.StatusOK, secondResp.Code)
}

func TestIPRateLimiter_HealthExempt(t *testing.T) {
	t.Parallel()

	limiter := NewIPRateLimiter(60, 1)
	router := rateLimitedRouter(limiter)

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "10.0.0.3:1234"
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		assert.Equal(t, http.StatusOK, resp.Code)
	}
}

func TestIPRateLimiter_IdleBucketsEvicted(t *testing.T) {
	t.Parallel()

	limiter := NewIPRateLimiter(60, 1)
	limiter.idleTTL = 10 * time.Millisecond

	limiter.bucketFor("10.0.0.1")
	time.Sleep(30 * time.Millisecond)
	limiter.bucketFor("10.0.0.2")

	limiter.mu.Lock()
	_, stale := limiter.buckets["10.0.0.1"]
	_, fresh := limiter.buckets["10.0.0.2"]
	limiter.mu.Unlock()

	assert.False(t, stale, "idle bucket should be evicted")
	assert.True(t, fresh)
}
