// Package ratelimit implements a fixed-window request counter. Counters live
// in process memory only, so the limits hold for a single serving instance;
// horizontally scaled deployments need an external shared counter instead.
package ratelimit

import (
	"strconv"
	"sync"
	"time"

	"github.com/AnirbanSinha27/Issue-tracking-platform/internal/apierror"
)

type entry struct {
	count   int
	resetAt time.Time
}

type Limiter struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	entries map[string]*entry

	now func() time.Time
}

func New(limit int, window time.Duration) *Limiter {
	return &Limiter{
		limit:   limit,
		window:  window,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Check records one request for key. When the window has elapsed the counter
// starts over; once the count reaches the limit further requests fail with a
// RateLimited error until the window resets.
func (l *Limiter) Check(key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[key]
	if !ok || now.After(e.resetAt) {
		e = &entry{resetAt: now.Add(l.window)}
		l.entries[key] = e
	}

	if e.count >= l.limit {
		return apierror.RateLimited("Too many requests")
	}

	e.count++
	return nil
}

// Headers reports the remaining quota for key as X-RateLimit-* header values.
func (l *Limiter) Headers(key string) map[string]string {
	l.mu.Lock()
	defer l.mu.Unlock()

	limit := strconv.Itoa(l.limit)
	e, ok := l.entries[key]
	if !ok {
		return map[string]string{
			"X-RateLimit-Limit":     limit,
			"X-RateLimit-Remaining": limit,
			"X-RateLimit-Reset":     strconv.FormatInt(l.now().Add(l.window).Unix(), 10),
		}
	}

	remaining := l.limit - e.count
	if remaining < 0 {
		remaining = 0
	}

	return map[string]string{
		"X-RateLimit-Limit":     limit,
		"X-RateLimit-Remaining": strconv.Itoa(remaining),
		"X-RateLimit-Reset":     strconv.FormatInt(e.resetAt.Unix(), 10),
	}
}
