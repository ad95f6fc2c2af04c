package scan

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/jobscan"
	"golang.org/x/time/rate"
)

var _ jobscan.HostLimiter = (*HostLimiter)(nil)

// HostLimiter spaces requests per host using token buckets.
// It creates a separate limiter for each host, allowing concurrent
// requests to different hosts while enforcing the spacing within each host.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewHostLimiter creates a HostLimiter that allows one request per interval
// to each host. Each host gets a burst of 1, so the first request is
// immediate. A non-positive interval disables spacing.
func NewHostLimiter(interval time.Duration) *HostLimiter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until the limit allows a request to the host.
// Returns an error if the context is canceled before the wait completes.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	l.mu.Lock()
	limiter, ok := l.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(l.limit, 1)
		l.limiters[host] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}
