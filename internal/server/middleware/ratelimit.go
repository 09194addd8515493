// file: internal/server/middleware/ratelimit.go
// version: 1.1.0
// guid: 6d4f7a02-9c1e-4f7b-b8d2-3a9e5c41f0aa

package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter throttles search traffic with a per-client token bucket.
// Buckets idle longer than idleTTL are dropped to keep the map bounded.
type IPRateLimiter struct {
	mu             sync.Mutex
	buckets        map[string]*clientBucket
	requestsPerMin int
	burst          int
	idleTTL        time.Duration
}

func NewIPRateLimiter(requestsPerMinute int, burst int) *IPRateLimiter {
	if requestsPerMinute < 1 {
		requestsPerMinute = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &IPRateLimiter{
		buckets:        make(map[string]*clientBucket),
		requestsPerMin: requestsPerMinute,
		burst:          burst,
		idleTTL:        15 * time.Minute,
	}
}

func (r *IPRateLimiter) bucketFor(ip string) *rate.Limiter {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	for key, b := range r.buckets {
		if now.Sub(b.lastSeen) > r.idleTTL {
			delete(r.buckets, key)
		}
	}

	b, ok := r.buckets[ip]
	if !ok {
		perSecond := float64(r.requestsPerMin) / 60.0
		b = &clientBucket{
			limiter:  rate.NewLimiter(rate.Limit(perSecond), r.burst),
			lastSeen: now,
		}
		r.buckets[ip] = b
		return b.limiter
	}

	b.lastSeen = now
	return b.limiter
}

// Middleware returns a Gin middleware that enforces the configured limit.
// Health and metrics probes are exempt so monitoring never trips the limiter.
func (r *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/health" || path == "/metrics" {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		if !r.bucketFor(ip).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
