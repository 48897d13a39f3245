package ratelimit

import (
	"sync"
	"time"
)

// GlobalKey is the key under which all single-product fetches are
// throttled. One shared key means the limit applies process-wide rather
// than per host or per caller.
const GlobalKey = "product-fetch"

// Limiter gates outbound fetches. Implementations must be safe for
// concurrent use from multiple request handlers.
type Limiter interface {
	Allow(key string) bool
}

// KeyedLimiter allows at most one request per key within a fixed window.
// A rejected request does not touch the stored timestamp, so hammering a
// key never extends its cooldown.
type KeyedLimiter struct {
	window time.Duration
	mu     sync.Mutex
	last   map[string]time.Time
	now    func() time.Time
}

func NewKeyedLimiter(window time.Duration) *KeyedLimiter {
	return &KeyedLimiter{
		window: window,
		last:   make(map[string]time.Time),
		now:    time.Now,
	}
}

func (l *KeyedLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if last, ok := l.last[key]; ok && now.Sub(last) < l.window {
		return false
	}

	l.last[key] = now
	return true
}
