package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ipLimiter hands out one token-bucket limiter per client IP. Entries idle
// for longer than ttl are dropped on the next sweep.
type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipEntry
	rate     rate.Limit
	burst    int
	ttl      time.Duration
	lastSeen time.Time
}

type ipEntry struct {
	limiter *rate.Limiter
	seen    time.Time
}

func newIPLimiter(r rate.Limit, burst int, ttl time.Duration) *ipLimiter {
	return &ipLimiter{
		limiters: make(map[string]*ipEntry),
		rate:     r,
		burst:    burst,
		ttl:      ttl,
	}
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastSeen) > l.ttl {
		for ip, e := range l.limiters {
			if now.Sub(e.seen) > l.ttl {
				delete(l.limiters, ip)
			}
		}
		l.lastSeen = now
	}

	e, ok := l.limiters[ip]
	if !ok {
		e = &ipEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[ip] = e
	}
	e.seen = now
	return e.limiter
}

// LoginRateLimiter throttles credential endpoints per client IP to slow down
// brute-force attempts. 5 requests burst, refilling one every 2 seconds.
func LoginRateLimiter() func(http.Handler) http.Handler {
	limiter := newIPLimiter(rate.Every(2*time.Second), 5, 10*time.Minute)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !limiter.get(ip).Allow() {
				w.Header().Set("Retry-After", "2")
				http.Error(w, "Too many attempts, slow down", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
