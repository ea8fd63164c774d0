package auth

import (
	"context"
	"fmt"
	"sync"
	"time"
)

/*
RateLimiter is a token bucket that bounds how often remote agents are
called. It starts full.
*/
type RateLimiter struct {
	mu       sync.Mutex
	rate     float64 // tokens per second
	capacity float64
	tokens   float64
	last     time.Time
}

/*
NewRateLimiter allows rate operations per interval. Both must be positive.
*/
func NewRateLimiter(rate int64, interval time.Duration) (*RateLimiter, error) {
	if rate <= 0 || interval <= 0 {
		return nil, fmt.Errorf("rate and interval must be positive, got %d per %s", rate, interval)
	}

	return &RateLimiter{
		rate:     float64(rate) / interval.Seconds(),
		capacity: float64(rate),
		tokens:   float64(rate),
		last:     time.Now(),
	}, nil
}

/*
Allow consumes a token if one is available.
*/
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refill()

	if rl.tokens < 1.0 {
		return false
	}

	rl.tokens--
	return true
}

/*
WaitTime returns how long until the next token is available.
*/
func (rl *RateLimiter) WaitTime() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refill()

	if rl.tokens >= 1.0 {
		return 0
	}

	return time.Duration((1.0 - rl.tokens) / rl.rate * float64(time.Second))
}

/*
Wait blocks until a token is consumed or ctx ends.
*/
func (rl *RateLimiter) Wait(ctx context.Context) error {
	for {
		if rl.Allow() {
			return nil
		}

		timer := time.NewTimer(rl.WaitTime())

		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

/*
Reset refills the bucket.
*/
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.tokens = rl.capacity
	rl.last = time.Now()
}

// refill must be called with mu held.
func (rl *RateLimiter) refill() {
	now := time.Now()
	rl.tokens = min(rl.capacity, rl.tokens+now.Sub(rl.last).Seconds()*rl.rate)
	rl.last = now
}
