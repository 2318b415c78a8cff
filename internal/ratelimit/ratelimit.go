package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// Limiter implements a simple in-memory sliding window rate limiter
type Limiter struct {
	mu       sync.RWMutex
	counters map[string]*counter
	window   time.Duration
	max      int
}

type counter struct {
	count     int
	expiresAt time.Time
}

// NewLimiter creates a new rate limiter with the specified window and max requests
func NewLimiter(window time.Duration, max int) *Limiter {
	l := &Limiter{
		counters: make(map[string]*counter),
		window:   window,
		max:      max,
	}
	go l.cleanup()
	return l
}

// Allow checks if a request for the given key is allowed
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	c, exists := l.counters[key]

	if !exists || now.After(c.expiresAt) {
		l.counters[key] = &counter{
			count:     1,
			expiresAt: now.Add(l.window),
		}
		return true
	}

	if c.count >= l.max {
		return false
	}

	c.count++
	return true
}

// GetRemaining returns the number of remaining requests for the given key
func (l *Limiter) GetRemaining(key string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	now := time.Now()
	c, exists := l.counters[key]

	if !exists || now.After(c.expiresAt) {
		return l.max
	}

	remaining := l.max - c.count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// cleanup periodically removes expired counters
func (l *Limiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		now := time.Now()
		for key, c := range l.counters {
			if now.After(c.expiresAt) {
				delete(l.counters, key)
			}
		}
		l.mu.Unlock()
	}
}

// LoginLimiter throttles admin login attempts per client IP and per
// username, so a single compromised address cannot brute-force the
// backoffice password.
type LoginLimiter struct {
	byIP   *Limiter
	byUser *Limiter
}

// NewLoginLimiter creates a login limiter with default limits.
func NewLoginLimiter() *LoginLimiter {
	return &LoginLimiter{
		byIP:   NewLimiter(10*time.Minute, 20), // 20 attempts per IP per 10 minutes
		byUser: NewLimiter(10*time.Minute, 10), // 10 attempts per username per 10 minutes
	}
}

// NewCustomLoginLimiter creates a login limiter with custom limits.
func NewCustomLoginLimiter(window time.Duration, ipLimit, userLimit int) *LoginLimiter {
	return &LoginLimiter{
		byIP:   NewLimiter(window, ipLimit),
		byUser: NewLimiter(window, userLimit),
	}
}

// CheckLogin verifies whether a login attempt from the given IP for the
// given username is within limits.
func (m *LoginLimiter) CheckLogin(ip, username string) error {
	if !m.byIP.Allow(ip) {
		return fmt.Errorf("too many login attempts from this IP address, please try again later")
	}

	if username != "" && !m.byUser.Allow(username) {
		return fmt.Errorf("too many login attempts for this account, please try again later")
	}

	return nil
}

// GetLoginRemaining returns remaining login attempts for IP and username.
func (m *LoginLimiter) GetLoginRemaining(ip, username string) (ipRemaining, userRemaining int) {
	ipRemaining = m.byIP.GetRemaining(ip)
	if username != "" {
		userRemaining = m.byUser.GetRemaining(username)
	} else {
		userRemaining = -1 // not applicable
	}

	return ipRemaining, userRemaining
}
