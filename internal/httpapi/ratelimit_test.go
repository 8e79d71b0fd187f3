package httpapi

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterPerClient(t *testing.T) {
	l := NewRateLimiter(60, 2)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("1.1.1.1"))
	assert.False(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("2.2.2.2"), "buckets are per client")

	now = now.Add(time.Second)
	assert.True(t, l.Allow("1.1.1.1"), "one token refills per second at 60/min")
}

func TestRateLimiterForgetsIdleClients(t *testing.T) {
	l := NewRateLimiter(60, 1)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow("1.1.1.1")
	now = now.Add(limiterIdleTTL + time.Minute)
	l.Allow("2.2.2.2")

	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.limiters["1.1.1.1"]
	assert.False(t, ok)
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.7:5555"
	assert.Equal(t, "203.0.113.7", clientIP(r))

	r.RemoteAddr = "203.0.113.8"
	assert.Equal(t, "203.0.113.8", clientIP(r))
}

func TestRateLimiterCapsTrackedClients(t *testing.T) {
	l := NewRateLimiter(60, 1)
	l.maxClients = 3
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3", "10.0.0.4"} {
		now = now.Add(time.Second)
		l.Allow(ip)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Len(t, l.limiters, 3)
	_, ok := l.limiters["10.0.0.1"]
	assert.False(t, ok, "least recently seen client is evicted")
	_, ok = l.limiters["10.0.0.4"]
	assert.True(t, ok)
}
