// Package ratelimit throttles chat requests per client address using
// token buckets.
package ratelimit

import (
	"sync"
	"time"
)

// Config sizes the per-client buckets.
type Config struct {
	Burst         float64       // Tokens a client may spend at once
	PerMinute     float64       // Sustained requests per client per minute
	CleanupPeriod time.Duration // How often idle clients are evicted
}

// PerClientLimiter hands each client address its own token bucket.
// Buckets that refill completely are evicted, so the map stays bounded
// by the number of recently active clients.
type PerClientLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	cfg     Config
	onDrop  func()
	stop    chan struct{}
	stopped sync.Once
}

// NewPerClient creates a limiter and starts its eviction loop.
// Call Stop when the limiter is no longer needed.
func NewPerClient(cfg Config) *PerClientLimiter {
	if cfg.CleanupPeriod <= 0 {
		cfg.CleanupPeriod = 5 * time.Minute
	}
	l := &PerClientLimiter{
		buckets: make(map[string]*bucket),
		cfg:     cfg,
		stop:    make(chan struct{}),
	}
	go l.evictLoop()
	return l
}

// OnDrop registers a callback invoked whenever a request is rejected.
// Set it before the limiter serves traffic.
func (l *PerClientLimiter) OnDrop(fn func()) {
	l.onDrop = fn
}

// Allow reports whether the client may proceed, spending one token.
// An empty address is never throttled; it means the peer could not be
// resolved and collapsing all such requests into one bucket would let
// them starve each other.
func (l *PerClientLimiter) Allow(addr string) bool {
	if addr == "" {
		return true
	}

	l.mu.Lock()
	b, ok := l.buckets[addr]
	if !ok {
		b = newBucket(l.cfg.Burst, l.cfg.PerMinute/60)
		l.buckets[addr] = b
	}
	l.mu.Unlock()

	if b.take() {
		return true
	}
	if l.onDrop != nil {
		l.onDrop()
	}
	return false
}

// ActiveClients returns the number of tracked client buckets.
func (l *PerClientLimiter) ActiveClients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *PerClientLimiter) evictLoop() {
	ticker := time.NewTicker(l.cfg.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.mu.Lock()
			for addr, b := range l.buckets {
				if b.idle() {
					delete(l.buckets, addr)
				}
			}
			l.mu.Unlock()
		}
	}
}

// Stop ends the eviction loop. Safe to call more than once.
func (l *PerClientLimiter) Stop() {
	l.stopped.Do(func() { close(l.stop) })
}
