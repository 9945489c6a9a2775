package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter applies a token bucket per key. A nil *Limiter allows everything.
type Limiter struct {
	limit rate.Limit
	burst int

	mu    sync.Mutex
	byKey map[string]*rate.Limiter
}

// New returns nil when rps or burst is not positive, which disables limiting.
func New(rps float64, burst int) *Limiter {
	if rps <= 0 || burst <= 0 {
		return nil
	}
	return &Limiter{
		limit: rate.Limit(rps),
		burst: burst,
		byKey: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether one token can be consumed for key at now.
func (l *Limiter) Allow(key string, now time.Time) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.byKey[key]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.byKey[key] = lim
	}
	return lim.AllowN(now, 1)
}

// Forget drops the bucket for key.
func (l *Limiter) Forget(key string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	delete(l.byKey, key)
	l.mu.Unlock()
}
