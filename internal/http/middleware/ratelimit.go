package middleware

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const localLimiterMaxKeys = 10000

type limiterEntry struct {
	limiter *rate.Limiter
	seen    time.Time
}

// localLimiter is the in-process fallback when Redis is not configured: a
// token bucket per identity refilling maxRequests per window.
type localLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	limit   rate.Limit
	burst   int
	window  time.Duration
}

func newLocalLimiter(maxRequests int, window time.Duration) *localLimiter {
	return &localLimiter{
		entries: make(map[string]*limiterEntry),
		limit:   rate.Limit(float64(maxRequests) / window.Seconds()),
		burst:   maxRequests,
		window:  window,
	}
}

func (l *localLimiter) allow(key string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		if len(l.entries) >= localLimiterMaxKeys {
			l.prune(now)
		}
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = e
	}
	e.seen = now
	return e.limiter.AllowN(now, 1)
}

// prune drops identities idle for longer than a window. Callers hold l.mu.
func (l *localLimiter) prune(now time.Time) {
	for k, e := range l.entries {
		if now.Sub(e.seen) > l.window {
			delete(l.entries, k)
		}
	}
}
