package httpapi

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/datawithdylan/site/internal/metrics"
)

const (
	DefaultRatePerMinute = 10
	DefaultRateBurst     = 5

	limiterIdleTTL = 10 * time.Minute
	maxClients     = 10000
)

// RateLimiter keeps one token bucket per client IP for the signup endpoints.
type RateLimiter struct {
	mu         sync.Mutex
	limiters   map[string]*clientLimiter
	limit      rate.Limit
	burst      int
	now        func() time.Time
	lastGC     time.Time
	maxClients int
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows perMinute requests per client with the given burst.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = DefaultRatePerMinute
	}
	if burst <= 0 {
		burst = DefaultRateBurst
	}
	return &RateLimiter{
		limiters:   make(map[string]*clientLimiter),
		limit:      rate.Every(time.Minute / time.Duration(perMinute)),
		burst:      burst,
		now:        time.Now,
		maxClients: maxClients,
	}
}

// Allow reports whether the client identified by key may proceed.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastGC) > limiterIdleTTL {
		for k, c := range l.limiters {
			if now.Sub(c.lastSeen) > limiterIdleTTL {
				delete(l.limiters, k)
			}
		}
		l.lastGC = now
	}

	c, ok := l.limiters[key]
	if !ok {
		if len(l.limiters) >= l.maxClients {
			l.evictOldest()
		}
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// evictOldest drops the least recently seen client. Callers hold mu.
func (l *RateLimiter) evictOldest() {
	var (
		oldestKey string
		oldest    time.Time
	)
	for k, c := range l.limiters {
		if oldestKey == "" || c.lastSeen.Before(oldest) {
			oldestKey, oldest = k, c.lastSeen
		}
	}
	delete(l.limiters, oldestKey)
}

// Middleware rejects requests over the limit by calling onLimited instead of next.
func (l *RateLimiter) Middleware(onLimited http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(clientIP(r)) {
				metrics.Signups.WithLabelValues(metrics.ResultRateLimited).Inc()
				onLimited(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP is the peer address, or the proxy-reported one when the server
// is configured to trust proxy headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func rateLimitedJSON(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Retry-After", "60")
	respondJSON(w, http.StatusTooManyRequests, subscribeResponse{
		Status:  "error",
		Message: MsgRateLimited,
	})
}
