package webhook

import (
	"sync"
	"time"
)

// Limiter is a fixed-window per-origin request counter. Buckets live in
// process memory and are swept lazily on each call; the limiter does not
// coordinate across instances.
type Limiter struct {
	window time.Duration
	max    int
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	windowStart time.Time
	count       int
}

// NewLimiter creates a limiter allowing max requests per window for each
// origin key
func NewLimiter(window time.Duration, maxRequests int) *Limiter {
	return &Limiter{
		window:  window,
		max:     maxRequests,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

// Admit reports whether a request from the given origin is allowed.
// When denied, retryAfter is the time remaining until the origin's window
// resets, rounded up to a whole second.
func (l *Limiter) Admit(origin string) (allowed bool, retryAfter time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	b, ok := l.buckets[origin]
	if !ok || now.Sub(b.windowStart) >= l.window {
		l.buckets[origin] = &bucket{windowStart: now, count: 1}
		return true, 0
	}

	b.count++
	if b.count > l.max {
		retryAfter = b.windowStart.Add(l.window).Sub(now)
		if rem := retryAfter % time.Second; rem > 0 {
			retryAfter += time.Second - rem
		}
		return false, retryAfter
	}
	return true, 0
}

// sweep drops expired buckets, called under lock
func (l *Limiter) sweep(now time.Time) {
	for origin, b := range l.buckets {
		if now.Sub(b.windowStart) >= l.window {
			delete(l.buckets, origin)
		}
	}
}
