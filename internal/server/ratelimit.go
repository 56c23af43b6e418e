package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"resumelens/internal/errors"

	"golang.org/x/time/rate"
)

// RateLimiter hands out a token bucket per key (client IP or API key) and
// evicts buckets that have gone quiet so the map does not grow unbounded.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	lastSeen map[string]time.Time
	rate     rate.Limit
	burst    int
	done     chan struct{}
	logger   *errors.Logger
}

// NewRateLimiter builds a limiter allowing requestsPerMin sustained requests
// with bursts up to burstCapacity. The window argument is accepted for
// config compatibility; x/time/rate works on a per-second refill rate.
func NewRateLimiter(requestsPerMin int, window time.Duration, burstCapacity int, logger *errors.Logger) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		lastSeen: make(map[string]time.Time),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:    burstCapacity,
		done:     make(chan struct{}),
		logger:   logger,
	}

	go rl.evictLoop(10 * time.Minute)
	return rl
}

// Allow reports whether a request under key fits within its bucket. Never
// blocks.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	limiter, ok := rl.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = limiter
	}
	rl.lastSeen[key] = time.Now()
	rl.mu.Unlock()

	return limiter.Allow()
}

// GetStats reports limiter counts and configured rates for the stats
// endpoint.
func (rl *RateLimiter) GetStats() map[string]any {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return map[string]any{
		"active_limiters": len(rl.limiters),
		"rate_per_second": float64(rl.rate),
		"rate_per_minute": float64(rl.rate) * 60.0,
		"burst_capacity":  rl.burst,
	}
}

// Close stops the eviction goroutine.
func (rl *RateLimiter) Close() {
	close(rl.done)
}

func (rl *RateLimiter) evictLoop(age time.Duration) {
	ticker := time.NewTicker(age)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evictIdle(age)
		case <-rl.done:
			return
		}
	}
}

// evictIdle drops buckets whose key has not been seen within age.
func (rl *RateLimiter) evictIdle(age time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-age)
	for key, seen := range rl.lastSeen {
		if seen.Before(cutoff) {
			delete(rl.limiters, key)
			delete(rl.lastSeen, key)
		}
	}

	if rl.logger != nil {
		rl.logger.Debug("Rate limiter cleanup completed",
			"remaining_limiters", len(rl.limiters))
	}
}

// rateLimitMiddleware rejects requests over the configured rate with 429.
// Disabled limiting yields a pass-through wrapper.
func (s *Server) rateLimitMiddleware() func(http.HandlerFunc) http.HandlerFunc {
	if s.RateLimit == nil || !s.RateLimit.Enabled {
		return func(next http.HandlerFunc) http.HandlerFunc { return next }
	}

	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			key := getRateLimitKey(r, s.RateLimit.ByAPIKey, s.RateLimit.ByIP)
			if key == "" {
				next(w, r)
				return
			}

			if !s.RateLimiter.Allow(key) {
				s.Logger.Info("Rate limit exceeded",
					"key", key,
					"endpoint", r.URL.Path,
					"client_ip", getClientIP(r))
				writeErrorResponse(w, "Rate limit exceeded", "Too many requests", http.StatusTooManyRequests)
				return
			}

			next(w, r)
		}
	}
}

// getRateLimitKey prefers the API key when per-key limiting is on, falling
// back to the client IP. An empty key means the request is not limited.
func getRateLimitKey(r *http.Request, byAPIKey, byIP bool) string {
	if byAPIKey {
		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			if after, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
				apiKey = after
			}
		}
		if apiKey != "" {
			return "api:" + apiKey
		}
	}

	if byIP {
		return "ip:" + getClientIP(r)
	}
	return ""
}

// getClientIP resolves the originating client address, honoring proxy
// headers before falling back to the socket address.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := parseFirstIP(xff); ip != "" {
			return ip
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if net.ParseIP(xri) != nil {
			return xri
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// parseFirstIP returns the first syntactically valid address in a
// comma-separated X-Forwarded-For list.
func parseFirstIP(ips string) string {
	for ip := range strings.SplitSeq(ips, ",") {
		ip = strings.TrimSpace(ip)
		if net.ParseIP(ip) != nil {
			return ip
		}
	}
	return ""
}
