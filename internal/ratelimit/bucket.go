package ratelimit

import (
	"sync"
	"time"
)

// bucket is a token bucket credited continuously by elapsed wall time.
type bucket struct {
	mu       sync.Mutex
	tokens   float64
	capacity float64
	rate     float64 // tokens per second
	last     time.Time
}

func newBucket(capacity, rate float64) *bucket {
	return &bucket{
		tokens:   capacity,
		capacity: capacity,
		rate:     rate,
		last:     time.Now(),
	}
}

// refill credits tokens for the time since the last call. Caller holds mu.
func (b *bucket) refill() {
	now := time.Now()
	b.tokens += now.Sub(b.last).Seconds() * b.rate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.last = now
}

// take spends one token if one is available.
func (b *bucket) take() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refill()
	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// idle reports whether the bucket has refilled completely, meaning its
// client has not spent a token for at least capacity/rate seconds.
func (b *bucket) idle() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refill()
	return b.tokens >= b.capacity
}
