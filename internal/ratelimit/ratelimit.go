// Package ratelimit bounds how often a client identifier may invoke a
// protected operation, using per-operation fixed-window counters.
//
// The window is approximate: up to 2x the limit can pass across a
// window boundary, which is acceptable for abuse mitigation. Counters
// live in process memory only, so limits are per-instance.
package ratelimit

import (
	"sync"
	"time"
)

// Limit describes one fixed-window policy
type Limit struct {
	MaxRequests int
	Window      time.Duration
}

// Preconfigured limits for the abuse-prone endpoints
var (
	LoginLimit         = Limit{MaxRequests: 5, Window: 15 * time.Minute}
	APILimit           = Limit{MaxRequests: 100, Window: time.Minute}
	UploadLimit        = Limit{MaxRequests: 10, Window: time.Hour}
	ArticleCreateLimit = Limit{MaxRequests: 20, Window: time.Hour}
)

// Decision is the outcome of a single rate-limit check
type Decision struct {
	Allowed   bool      `json:"success"`
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	Reset     time.Time `json:"reset"`
}

type entry struct {
	count     int
	resetTime time.Time
}

// Limiter is an in-memory fixed-window rate limiter. Construct one
// per process and inject it; it is safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
	stop    chan struct{}
	stopped sync.Once
}

// New creates a Limiter with the real clock
func New() *Limiter {
	return &Limiter{
		entries: make(map[string]*entry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
}

// NewWithClock creates a Limiter with an injected clock, for tests
func NewWithClock(now func() time.Time) *Limiter {
	l := New()
	l.now = now
	return l
}

// Check records one request for identifier under operation and
// returns whether it is allowed within the given limit.
func (l *Limiter) Check(operation, identifier string, limit Limit) Decision {
	key := operation + ":" + identifier
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok || !now.Before(e.resetTime) {
		e = &entry{count: 1, resetTime: now.Add(limit.Window)}
		l.entries[key] = e
		return Decision{
			Allowed:   true,
			Limit:     limit.MaxRequests,
			Remaining: limit.MaxRequests - 1,
			Reset:     e.resetTime,
		}
	}

	e.count++
	if e.count > limit.MaxRequests {
		// Keep the counter pinned just past the limit so repeated
		// denials do not overflow the informational value.
		e.count = limit.MaxRequests + 1
		return Decision{
			Allowed:   false,
			Limit:     limit.MaxRequests,
			Remaining: 0,
			Reset:     e.resetTime,
		}
	}

	return Decision{
		Allowed:   true,
		Limit:     limit.MaxRequests,
		Remaining: limit.MaxRequests - e.count,
		Reset:     e.resetTime,
	}
}

// Sweep removes expired entries. Housekeeping only; correctness does
// not depend on it since Check resets expired entries on contact.
func (l *Limiter) Sweep() {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, e := range l.entries {
		if !now.Before(e.resetTime) {
			delete(l.entries, key)
		}
	}
}

// StartSweeper runs Sweep every interval until Stop is called
func (l *Limiter) StartSweeper(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.Sweep()
			case <-l.stop:
				return
			}
		}
	}()
}

// Stop terminates the sweeper goroutine
func (l *Limiter) Stop() {
	l.stopped.Do(func() {
		close(l.stop)
	})
}

// Len returns the number of live counter entries
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
