package signal

import (
	"sync"
	"time"

	"github.com/dkeye/roomsignal/internal/core"
	"golang.org/x/time/rate"
)

// RateLimiter keeps a token bucket per connection: requests commands per
// interval, with bursts up to requests. A nil limiter allows everything.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[core.ConnectionID]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewRateLimiter returns nil when requests or interval is not positive.
func NewRateLimiter(requests int, interval time.Duration) *RateLimiter {
	if requests <= 0 || interval <= 0 {
		return nil
	}
	return &RateLimiter{
		limiters: make(map[core.ConnectionID]*rate.Limiter),
		limit:    rate.Every(interval / time.Duration(requests)),
		burst:    requests,
	}
}

func (rl *RateLimiter) Allow(cid core.ConnectionID) bool {
	if rl == nil {
		return true
	}
	rl.mu.Lock()
	l, ok := rl.limiters[cid]
	if !ok {
		l = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[cid] = l
	}
	rl.mu.Unlock()
	return l.Allow()
}

// Forget drops the bucket of a closed connection.
func (rl *RateLimiter) Forget(cid core.ConnectionID) {
	if rl == nil {
		return
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.limiters, cid)
}

func (rl *RateLimiter) len() int {
	if rl == nil {
		return 0
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}
