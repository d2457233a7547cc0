package cache

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrRateLimited is returned by Limiter.Allow once a key has used up its window.
var ErrRateLimited = errors.New("rate limit exceeded")

const (
	DefaultRateLimit  = 30
	DefaultRateWindow = 60 * time.Second
)

type window struct {
	start time.Time
	count int
}

// Limiter is a fixed-window request counter per key. A window opens with the
// first request of a key and admits limit requests until it closes.
type Limiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     Clock
	windows map[string]*window
}

// NewLimiter creates a limiter. Non-positive values fall back to 30 requests per 60s.
func NewLimiter(limit int, period time.Duration, clock Clock) *Limiter {
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	if period <= 0 {
		period = DefaultRateWindow
	}
	if clock == nil {
		clock = time.Now
	}
	return &Limiter{
		limit:   limit,
		window:  period,
		now:     clock,
		windows: make(map[string]*window),
	}
}

// Allow counts one request for key. It returns an error wrapping ErrRateLimited
// when the current window is full.
func (l *Limiter) Allow(key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.window {
		l.windows[key] = &window{start: now, count: 1}
		return nil
	}
	if w.count >= l.limit {
		retry := w.start.Add(l.window).Sub(now)
		return fmt.Errorf("%w: %q may retry in %s", ErrRateLimited, key, retry.Round(time.Second))
	}
	w.count++
	return nil
}

// Remaining is how many requests key may still make in its current window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || l.now().Sub(w.start) >= l.window {
		return l.limit
	}
	return l.limit - w.count
}

// Prune forgets keys whose window has closed and returns how many were removed.
func (l *Limiter) Prune() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for key, w := range l.windows {
		if now.Sub(w.start) >= l.window {
			delete(l.windows, key)
			removed++
		}
	}
	return removed
}
