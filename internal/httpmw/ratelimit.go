package httpmw

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	rateLimitWindow   = 15 * time.Minute
	rateLimitRequests = 100
)

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a per-client-IP token bucket sized to allow
// rateLimitRequests per rateLimitWindow. Client IP comes from gin, which
// honours the trusted-proxy configuration.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
}

func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{
		clients: map[string]*client{},
	}
	go rl.reap()
	return rl
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[ip]
	if !ok {
		c = &client{
			limiter: rate.NewLimiter(
				rate.Every(rateLimitWindow/rateLimitRequests),
				rateLimitRequests,
			),
		}
		rl.clients[ip] = c
	}
	c.lastSeen = time.Now()
	return c.limiter
}

// reap drops entries for IPs not seen within one window.
func (rl *RateLimiter) reap() {
	for {
		time.Sleep(rateLimitWindow)

		rl.mu.Lock()
		cutoff := time.Now().Add(-rateLimitWindow)
		for ip, c := range rl.clients {
			if c.lastSeen.Before(cutoff) {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiterFor(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests",
				"code":  "RATE_LIMITED",
			})
			return
		}
		c.Next()
	}
}
