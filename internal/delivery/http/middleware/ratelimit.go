package middleware

import (
	"sync"
	"time"

	"focusflow/config"
	"focusflow/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	defaultAuthRPS   = 5
	defaultAuthBurst = 10

	visitorTTL = 10 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware enforces a per-IP token bucket on the routes it wraps.
type RateLimitMiddleware struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
}

// NewRateLimitMiddleware builds the limiter from configuration, falling back
// to a conservative default for the auth routes.
func NewRateLimitMiddleware(cfg *config.Config) *RateLimitMiddleware {
	rps := float64(defaultAuthRPS)
	burst := defaultAuthBurst
	if cfg.RateLimit != nil {
		if cfg.RateLimit.RPS > 0 {
			rps = cfg.RateLimit.RPS
		}
		if cfg.RateLimit.Burst > 0 {
			burst = cfg.RateLimit.Burst
		}
	}

	rl := &RateLimitMiddleware{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
	go rl.cleanup()

	return rl
}

// Limit rejects requests exceeding the caller's bucket with a 429.
func (rl *RateLimitMiddleware) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !rl.limiterFor(c.RealIP()).Allow() {
			return response.TooManyRequests(c, "RATE_LIMITED", "Too many requests, slow down")
		}

		return next(c)
	}
}

func (rl *RateLimitMiddleware) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.rps, rl.burst)
		rl.visitors[ip] = &visitor{limiter: limiter, lastSeen: time.Now()}

		return limiter
	}

	v.lastSeen = time.Now()

	return v.limiter
}

func (rl *RateLimitMiddleware) cleanup() {
	for {
		time.Sleep(visitorTTL)
		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastSeen) > visitorTTL {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
