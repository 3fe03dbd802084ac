// Package memory implements the RateLimiter port with per-client token
// buckets held in memory.
package memory

import (
	"sync"

	"golang.org/x/time/rate"

	"github.com/chibicitiberiu/3d-coin-maker/internal/core/ports/driven"
)

// Ensure Limiter implements the interface.
var _ driven.RateLimiter = (*Limiter)(nil)

// Limiter tracks a token bucket per client key. Buckets are created on
// first use and refill at a fixed rate.
type Limiter struct {
	limit rate.Limit
	burst int

	mu      sync.Mutex
	clients map[string]*rate.Limiter
}

// New creates a limiter allowing perMinute operations per client, with
// bursts up to burst. Non-positive values disable limiting.
func New(perMinute, burst int) *Limiter {
	l := &Limiter{
		clients: make(map[string]*rate.Limiter),
	}
	if perMinute <= 0 || burst <= 0 {
		l.limit = rate.Inf
		l.burst = 1
		return l
	}
	l.limit = rate.Limit(float64(perMinute) / 60.0)
	l.burst = burst
	return l
}

// Allow reports whether the client may perform another operation,
// consuming one token if so.
func (l *Limiter) Allow(clientKey string) bool {
	l.mu.Lock()
	bucket, ok := l.clients[clientKey]
	if !ok {
		bucket = rate.NewLimiter(l.limit, l.burst)
		l.clients[clientKey] = bucket
	}
	l.mu.Unlock()
	return bucket.Allow()
}
