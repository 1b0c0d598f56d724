package rate

import (
	"sync"
	"time"
)

// Config holds rate limiter tuning parameters.
type Config struct {
	MaxAttempts int
	Window      time.Duration
}

type record struct {
	count       int
	windowStart time.Time
}

// Limiter enforces a per-key fixed-window attempt budget using an
// in-memory counter map.
type Limiter struct {
	mu      sync.Mutex
	config  Config
	records map[string]*record
	now     func() time.Time
}

// New creates a rate [Limiter] with the given configuration.
func New(cfg Config) *Limiter {
	return &Limiter{
		config:  cfg,
		records: make(map[string]*record),
		now:     time.Now,
	}
}

// Check decides whether the key is within its attempt budget. A true result
// means the attempt was allowed and has been counted; a false result means
// the key is rejected and the count stays at the limit.
func (l *Limiter) Check(key string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[key]
	if !ok {
		l.records[key] = &record{count: 1, windowStart: now}
		return true
	}

	if now.Sub(rec.windowStart) > l.config.Window {
		rec.count = 1
		rec.windowStart = now
		return true
	}

	if rec.count >= l.config.MaxAttempts {
		return false
	}

	rec.count++
	return true
}

// Attempts returns the current counted attempts for a key. Missing keys
// return zero.
func (l *Limiter) Attempts(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[key]
	if !ok {
		return 0
	}
	return rec.count
}

// Sweep drops records whose window elapsed before the cutoff, bounding
// memory growth from one-off keys. Called by the Engine's background sweep.
func (l *Limiter) Sweep() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, rec := range l.records {
		if now.Sub(rec.windowStart) > l.config.Window {
			delete(l.records, key)
			removed++
		}
	}
	return removed
}
