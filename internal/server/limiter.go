package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultIdleTTL is how long a client's bucket is kept after its last request.
const DefaultIdleTTL = 10 * time.Minute

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands out one token bucket per client address. Buckets idle
// for longer than idle are dropped on the next sweep.
type IPRateLimiter struct {
	ips map[string]*client
	mu  sync.Mutex
	r   rate.Limit
	b   int

	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips:  make(map[string]*client),
		r:    r,
		b:    b,
		idle: DefaultIdleTTL,
		now:  time.Now,
	}
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	if now.Sub(i.lastSweep) >= i.idle {
		for addr, c := range i.ips {
			if now.Sub(c.lastSeen) >= i.idle {
				delete(i.ips, addr)
			}
		}
		i.lastSweep = now
	}

	c, exists := i.ips[ip]
	if !exists {
		c = &client{limiter: rate.NewLimiter(i.r, i.b)}
		i.ips[ip] = c
	}
	c.lastSeen = now
	return c.limiter
}

// clients reports how many buckets are held.
func (i *IPRateLimiter) clients() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.ips)
}

// LimitMiddleware answers 429 once a client exhausts its bucket.
func (i *IPRateLimiter) LimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !i.getLimiter(ip).Allow() {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
