package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"microblog/internal/config"
	handlers "microblog/internal/handler"
)

// limiterIdleTTL is the minimum time a client must stay silent before its
// bucket is dropped.
const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	paths     map[string]bool
	idleTTL   time.Duration
	lastPrune time.Time
	now       func() time.Time
}

// NewRateLimiter limits the given paths; an empty list limits every path.
func NewRateLimiter(cfg config.RateLimit, paths ...string) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(cfg.RPS),
		burst:    cfg.Burst,
		paths:    make(map[string]bool, len(paths)),
		idleTTL:  idleTTL(rate.Limit(cfg.RPS), cfg.Burst),
		now:      time.Now,
	}
	for _, p := range paths {
		rl.paths[p] = true
	}
	return rl
}

// idleTTL never drops a bucket before it would have refilled, so a returning
// client gets no more tokens than it would have kept.
func idleTTL(limit rate.Limit, burst int) time.Duration {
	if limit <= 0 || limit == rate.Inf {
		return limiterIdleTTL
	}
	refill := time.Duration(float64(burst) / float64(limit) * float64(time.Second))
	if refill > limiterIdleTTL {
		return refill
	}
	return limiterIdleTTL
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastPrune) >= rl.idleTTL {
		rl.prune(now)
	}

	if v, exists := rl.visitors[key]; exists {
		v.lastSeen = now
		return v.limiter
	}

	limiter := rate.NewLimiter(rl.limit, rl.burst)
	rl.visitors[key] = &visitor{limiter: limiter, lastSeen: now}
	return limiter
}

// prune drops visitors idle for at least idleTTL. Caller holds mu.
func (rl *RateLimiter) prune(now time.Time) {
	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) >= rl.idleTTL {
			delete(rl.visitors, key)
		}
	}
	rl.lastPrune = now
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(rl.paths) > 0 && !rl.paths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		if !rl.limiter(clientIP(r)).Allow() {
			w.Header().Set("Retry-After", "1")
			handlers.WriteError(w, "Слишком много запросов", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
