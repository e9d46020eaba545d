package auth

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimiter throttles login requests per client IP. It is independent of
// the per-account lockout.
type RateLimiter struct {
	mu       sync.Mutex
	attempts map[string]*attemptInfo
	now      func() time.Time
	// Configuration
	maxAttempts int
	window      time.Duration
	blockTime   time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

type attemptInfo struct {
	count     int
	firstTry  time.Time
	blockedAt time.Time
}

// NewRateLimiter creates a new rate limiter
// maxAttempts: max login attempts within the window
// window: time window for counting attempts
// blockTime: how long to block after exceeding max attempts
func NewRateLimiter(maxAttempts int, window, blockTime time.Duration) *RateLimiter {
	rl := &RateLimiter{
		attempts:    make(map[string]*attemptInfo),
		now:         time.Now,
		maxAttempts: maxAttempts,
		window:      window,
		blockTime:   blockTime,
		stop:        make(chan struct{}),
	}
	// Start cleanup goroutine
	go rl.cleanup(5 * time.Minute)
	return rl
}

// WithClock sets the time source. Intended for tests.
func (rl *RateLimiter) WithClock(now func() time.Time) *RateLimiter {
	rl.mu.Lock()
	rl.now = now
	rl.mu.Unlock()
	return rl
}

// Allow counts an attempt for key and reports whether it may proceed
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	info := rl.attempts[key]
	switch {
	case info == nil:
		info = &attemptInfo{}
		rl.attempts[key] = info
	case !info.blockedAt.IsZero() && now.Sub(info.blockedAt) < rl.blockTime:
		return false
	case !info.blockedAt.IsZero(), now.Sub(info.firstTry) > rl.window:
		// A served block or an elapsed window starts a fresh count
		*info = attemptInfo{}
	}

	if info.count == 0 {
		info.firstTry = now
	}
	info.count++
	if info.count > rl.maxAttempts {
		info.blockedAt = now
		return false
	}
	return true
}

// RecordSuccess forgets the attempts of key after a successful login
func (rl *RateLimiter) RecordSuccess(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.attempts, key)
}

// BlockedUntil returns when the block expires, or zero time if not blocked
func (rl *RateLimiter) BlockedUntil(key string) time.Time {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	info, exists := rl.attempts[key]
	if !exists || info.blockedAt.IsZero() {
		return time.Time{}
	}

	blockedUntil := info.blockedAt.Add(rl.blockTime)
	if rl.now().After(blockedUntil) {
		return time.Time{}
	}

	return blockedUntil
}

// sweep removes entries whose window and block have both expired
func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, info := range rl.attempts {
		windowExpired := now.Sub(info.firstTry) > rl.window
		blockExpired := info.blockedAt.IsZero() || now.Sub(info.blockedAt) > rl.blockTime
		if windowExpired && blockExpired {
			delete(rl.attempts, key)
		}
	}
}

func (rl *RateLimiter) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stop:
			return
		}
	}
}

// Stop ends the cleanup goroutine
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Middleware returns an Echo middleware that rate limits requests
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()

			if !rl.Allow(key) {
				blockedUntil := rl.BlockedUntil(key)
				retryAfter := int(blockedUntil.Sub(rl.now()).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}

				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				return c.JSON(http.StatusTooManyRequests, map[string]any{
					"error":        "too many login attempts",
					"retryAfter":   retryAfter,
					"blockedUntil": blockedUntil.Format(time.RFC3339),
				})
			}

			if err := next(c); err != nil {
				return err
			}
			if c.Response().Status == http.StatusOK {
				rl.RecordSuccess(key)
			}
			return nil
		}
	}
}
