package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"vid-catalog/internal/handler/http/respond"
)

// RateLimitConfig holds the per-client token bucket parameters.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained request rate allowed per client
	// IP. Default: 10.
	RequestsPerSecond float64

	// Burst is the bucket size. Default: 20.
	Burst int

	// TTL is how long an idle client's bucket is kept before it is
	// evicted. Default: 5 minutes.
	TTL time.Duration
}

// DefaultRateLimitConfig returns the limits applied to mutating endpoints.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 10,
		Burst:             20,
		TTL:               5 * time.Minute,
	}
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a token bucket per client IP. Idle buckets are
// evicted lazily during lookups, so no background goroutine is needed.
type RateLimiter struct {
	config RateLimitConfig

	mu      sync.Mutex
	clients map[string]*clientBucket
}

// NewRateLimiter builds a limiter with the given config.
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		config:  config,
		clients: make(map[string]*clientBucket),
	}
}

func (rl *RateLimiter) limiterFor(ip string, now time.Time) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Evict stale buckets while we hold the lock. The map stays small:
	// one entry per client seen within the TTL.
	for key, bucket := range rl.clients {
		if now.Sub(bucket.lastSeen) > rl.config.TTL {
			delete(rl.clients, key)
		}
	}

	bucket, ok := rl.clients[ip]
	if !ok {
		bucket = &clientBucket{
			limiter: rate.NewLimiter(rate.Limit(rl.config.RequestsPerSecond), rl.config.Burst),
		}
		rl.clients[ip] = bucket
	}
	bucket.lastSeen = now
	return bucket.limiter
}

// Middleware rejects requests exceeding the client's bucket with 429 and a
// Retry-After hint.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.limiterFor(ip, time.Now()).Allow() {
			w.Header().Set("Retry-After", strconv.Itoa(1))
			respond.JSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP derives the client key from RemoteAddr. The service is expected
// to sit behind a proxy that rewrites RemoteAddr; forwarding headers are
// deliberately not trusted.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
