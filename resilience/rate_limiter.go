package resilience

import (
	"sync"
	"time"
)

// RateLimiterConfig configures a token bucket.
type RateLimiterConfig struct {
	// Rate is the number of requests allowed per second.
	Rate float64
	// Burst is the bucket size. Defaults to Rate rounded up, at least 1.
	Burst int
}

// RateLimiter is a token bucket. It never blocks: callers are told whether
// the request may proceed.
type RateLimiter struct {
	config RateLimiterConfig
	now    func() time.Time

	mu       sync.Mutex
	tokens   float64
	lastSeen time.Time
}

// NewRateLimiter creates a full bucket.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.Rate <= 0 {
		config.Rate = 10
	}
	if config.Burst <= 0 {
		config.Burst = max(1, int(config.Rate+0.999))
	}
	rl := &RateLimiter{config: config, now: time.Now}
	rl.tokens = float64(config.Burst)
	rl.lastSeen = rl.now()
	return rl
}

// Allow takes one token if available.
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refill()
	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}
	return false
}

// RetryAfter returns how long until the next token is available.
func (rl *RateLimiter) RetryAfter() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refill()
	if rl.tokens >= 1 {
		return 0
	}
	return time.Duration((1 - rl.tokens) / rl.config.Rate * float64(time.Second))
}

// Idle reports whether the bucket has refilled completely, meaning the
// limiter holds no state worth keeping.
func (rl *RateLimiter) Idle() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.refill()
	return rl.tokens >= float64(rl.config.Burst)
}

func (rl *RateLimiter) refill() {
	now := rl.now()
	rl.tokens += now.Sub(rl.lastSeen).Seconds() * rl.config.Rate
	rl.lastSeen = now
	if rl.tokens > float64(rl.config.Burst) {
		rl.tokens = float64(rl.config.Burst)
	}
}
