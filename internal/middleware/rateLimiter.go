package middleware

import (
	"sync"
	"time"

	"github.com/akolanti/SupportBot/internal/config"
	"golang.org/x/time/rate"
)

var limiterInstance = NewIPRateLimiter(rate.Limit(config.RATE_LIMIT_PER_SECOND), config.BURST_RATE_LIMIT_PER_SECOND)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type IPRateLimiter struct {
	ips       map[string]*ipLimiter
	mu        sync.Mutex
	rateLimit rate.Limit
	burstRate int
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{ips: make(map[string]*ipLimiter), rateLimit: r, burstRate: b}
}

func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()
	entry, exists := i.ips[ip]
	if !exists {
		entry = &ipLimiter{limiter: rate.NewLimiter(i.rateLimit, i.burstRate)}
		i.ips[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

// Prune forgets addresses not seen for maxIdle.
func (i *IPRateLimiter) Prune(maxIdle time.Duration) int {
	i.mu.Lock()
	defer i.mu.Unlock()
	removed := 0
	for ip, entry := range i.ips {
		if time.Since(entry.lastSeen) > maxIdle {
			delete(i.ips, ip)
			removed++
		}
	}
	return removed
}

// StartPruning runs Prune on the shared limiter until stop is closed.
func StartPruning(stop <-chan bool, every time.Duration) {
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := limiterInstance.Prune(every); n > 0 {
					logger.Debug("Pruned rate limiters", "count", n)
				}
			case <-stop:
				return
			}
		}
	}()
}
