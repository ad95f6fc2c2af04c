package jobscan

import (
	"context"
	"time"
)

// DefaultHostDelay is the minimum spacing between two requests to the same host.
const DefaultHostDelay = 500 * time.Millisecond

// HostLimiter provides per-host request spacing.
type HostLimiter interface {
	// Wait blocks until a request to host is allowed.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}
