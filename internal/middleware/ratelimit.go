package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// client represents a rate-limited client with request count and window start.
type client struct {
	windowStart time.Time
	count       int
}

// rateLimiter is a fixed window, per client IP counter.
// NOTE: state is per process; several replicas each apply the full limit.
type rateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   int
	window  time.Duration
	now     func() time.Time
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		clients: make(map[string]*client),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// allow registers one request from ip and reports whether it is within the limit.
func (rl *rateLimiter) allow(ip string) bool {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, ok := rl.clients[ip]
	if !ok || now.Sub(cl.windowStart) > rl.window {
		rl.clients[ip] = &client{windowStart: now, count: 1}
		rl.sweep(now)
		return true
	}
	cl.count++
	return cl.count <= rl.limit
}

// sweep drops clients whose window expired. Called with mu held.
func (rl *rateLimiter) sweep(now time.Time) {
	for ip, cl := range rl.clients {
		if now.Sub(cl.windowStart) > rl.window {
			delete(rl.clients, ip)
		}
	}
}

// RateLimiter limits the number of requests per client IP to perMinute
// requests per one minute window. Exceeding clients get 429.
//
// Response when limit exceeded:
//
//	HTTP/1.1 429 Too Many Requests
//	{"error": "rate limit exceeded"}
func RateLimiter(perMinute int) gin.HandlerFunc {
	return rateLimit(newRateLimiter(perMinute, time.Minute))
}

func rateLimit(rl *rateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
