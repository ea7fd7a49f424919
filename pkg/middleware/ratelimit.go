package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ipLimiter tracks one client's limiter and its last access time.
type ipLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter applies a per-IP token bucket. Signup endpoints are the main
// abuse target; the limiter keeps a bot from spraying the feed with junk
// registrations through us.
type RateLimiter struct {
	limiters        map[string]*ipLimiter
	mu              sync.Mutex
	rate            rate.Limit
	burst           int
	maxSize         int
	cleanupInterval time.Duration
	stopCh          chan struct{}
}

// NewRateLimiter creates a per-IP rate limiter.
// requestsPerSecond: sustained rate per IP; burst: bucket size.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		limiters:        make(map[string]*ipLimiter),
		rate:            rate.Limit(requestsPerSecond),
		burst:           burst,
		maxSize:         10000,
		cleanupInterval: 5 * time.Minute,
		stopCh:          make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

// cleanup drops entries idle for a full cleanup interval.
func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-rl.cleanupInterval)
	for ip, limiter := range rl.limiters {
		if limiter.lastAccess.Before(cutoff) {
			delete(rl.limiters, ip)
		}
	}
}

// Shutdown stops the cleanup goroutine.
func (rl *RateLimiter) Shutdown() {
	close(rl.stopCh)
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, exists := rl.limiters[ip]; exists {
		limiter.lastAccess = time.Now()
		return limiter.limiter
	}

	// At capacity, evict the least recently used entry.
	if len(rl.limiters) >= rl.maxSize {
		var oldestIP string
		var oldestTime time.Time
		first := true

		for ip, lim := range rl.limiters {
			if first || lim.lastAccess.Before(oldestTime) {
				oldestIP = ip
				oldestTime = lim.lastAccess
				first = false
			}
		}
		if oldestIP != "" {
			delete(rl.limiters, oldestIP)
		}
	}

	newLimiter := &ipLimiter{
		limiter:    rate.NewLimiter(rl.rate, rl.burst),
		lastAccess: time.Now(),
	}
	rl.limiters[ip] = newLimiter

	return newLimiter.limiter
}

// Middleware wraps a handler with per-IP rate limiting.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limiter := rl.getLimiter(clientIP(r))
		if !limiter.Allow() {
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP strips the port from RemoteAddr so one client maps to one bucket
// across connections.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
