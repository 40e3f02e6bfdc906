// middleware.go
package main

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware adds the standard hardening headers to every
// response.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

// RequestLogMiddleware emits one JSON line per request.
func RequestLogMiddleware() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf(`{"time":"%s","method":"%s","path":"%s","status":%d,"latency":"%s","ip":"%s","error":"%s"}`+"\n",
			param.TimeStamp.Format(time.RFC3339),
			param.Method,
			param.Path,
			param.StatusCode,
			param.Latency,
			param.ClientIP,
			param.ErrorMessage,
		)
	})
}

// submitLimiter is a per-IP token bucket guarding the public form endpoints
// against scripted spam.
type submitLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	max     int
	window  time.Duration
}

type bucket struct {
	tokens int
	last   time.Time
}

// RateLimitMiddleware allows maxRequests per client IP per window.
func RateLimitMiddleware(maxRequests int, window time.Duration) gin.HandlerFunc {
	rl := &submitLimiter{
		buckets: make(map[string]*bucket),
		max:     maxRequests,
		window:  window,
	}

	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.String(http.StatusTooManyRequests, "Too many submissions. Please try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (rl *submitLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.buckets[ip]
	if !ok {
		b = &bucket{tokens: rl.max, last: now}
		rl.buckets[ip] = b
	}

	// Refill proportionally to elapsed time.
	refill := int(now.Sub(b.last) / (rl.window / time.Duration(rl.max)))
	if refill > 0 {
		b.tokens += refill
		if b.tokens > rl.max {
			b.tokens = rl.max
		}
		b.last = now
	}

	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}
