package middleware

import (
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/voicecheck/errors"
	"github.com/kbukum/voicecheck/logger"
	"github.com/kbukum/voicecheck/resilience"
)

// RateLimitConfig configures per-client rate limiting. A zero RPS disables it.
type RateLimitConfig struct {
	// RPS is the sustained number of requests per second allowed per key.
	RPS float64 `yaml:"rps" mapstructure:"rps"`
	// Burst is the bucket size per key. Defaults to RPS rounded up.
	Burst int `yaml:"burst" mapstructure:"burst"`
	// KeyFunc extracts the rate limit key from a request. Defaults to client IP.
	KeyFunc func(*gin.Context) string `yaml:"-" mapstructure:"-"`
}

// Enabled reports whether limiting is switched on.
func (c RateLimitConfig) Enabled() bool { return c.RPS > 0 }

// Validate checks the limits.
func (c RateLimitConfig) Validate() error {
	if c.RPS < 0 || math.IsNaN(c.RPS) || math.IsInf(c.RPS, 0) {
		return fmt.Errorf("rps must be a non-negative number (got: %v)", c.RPS)
	}
	if c.Burst < 0 {
		return fmt.Errorf("burst must be non-negative (got: %d)", c.Burst)
	}
	return nil
}

// sweepInterval bounds how often idle buckets are dropped.
const sweepInterval = time.Minute

// RateLimit returns a Gin middleware with one token bucket per key. A request
// over the limit gets the RATE_LIMITED envelope and a Retry-After header.
func RateLimit(cfg RateLimitConfig, log *logger.Logger) gin.HandlerFunc {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = IPBasedKey
	}
	log = componentLogger(log)
	rl := newKeyedLimiter(resilience.RateLimiterConfig{Rate: cfg.RPS, Burst: cfg.Burst})

	return func(c *gin.Context) {
		limiter := rl.get(cfg.KeyFunc(c))
		if !limiter.Allow() {
			wait := limiter.RetryAfter()
			appErr := errors.RateLimited(wait)
			c.Header("Retry-After", strconv.Itoa(appErr.Details["retry_after"].(int)))
			reject(c, log, appErr)
			return
		}
		c.Next()
	}
}

// IPBasedKey extracts the client IP for use as a rate limit key.
func IPBasedKey(c *gin.Context) string {
	return c.ClientIP()
}

type keyedLimiter struct {
	config resilience.RateLimiterConfig
	now    func() time.Time

	mu       sync.Mutex
	limiters map[string]*resilience.RateLimiter

	// lastSweep starts at the first get, read from now.
	lastSweep time.Time
}

func newKeyedLimiter(config resilience.RateLimiterConfig) *keyedLimiter {
	return &keyedLimiter{
		config:   config,
		now:      time.Now,
		limiters: make(map[string]*resilience.RateLimiter),
	}
}

// get returns the bucket for key, creating it on first use. Buckets that
// have refilled completely are dropped at most once per sweepInterval.
func (k *keyedLimiter) get(key string) *resilience.RateLimiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	if k.lastSweep.IsZero() {
		k.lastSweep = now
	}
	if now.Sub(k.lastSweep) >= sweepInterval {
		for id, l := range k.limiters {
			if l.Idle() {
				delete(k.limiters, id)
			}
		}
		k.lastSweep = now
	}

	l, ok := k.limiters[key]
	if !ok {
		l = resilience.NewRateLimiter(k.config)
		k.limiters[key] = l
	}
	return l
}

func (k *keyedLimiter) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.limiters)
}
