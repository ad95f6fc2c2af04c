package mock

import (
	"context"

	"github.com/fwojciec/jobscan"
)

var _ jobscan.HostLimiter = (*HostLimiter)(nil)

// HostLimiter is a mock implementation of jobscan.HostLimiter.
type HostLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
