package scan_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/jobscan"
	"github.com/fwojciec/jobscan/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostLimiter(t *testing.T) {
	t.Parallel()

	t.Run("implements jobscan.HostLimiter interface", func(t *testing.T) {
		t.Parallel()
		var _ jobscan.HostLimiter = scan.NewHostLimiter(time.Second)
	})

	t.Run("allows immediate first request", func(t *testing.T) {
		t.Parallel()

		limiter := scan.NewHostLimiter(100 * time.Millisecond)

		start := time.Now()
		err := limiter.Wait(context.Background(), "example.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "first request should be immediate")
	})

	t.Run("spaces requests to same host", func(t *testing.T) {
		t.Parallel()

		limiter := scan.NewHostLimiter(100 * time.Millisecond)

		err := limiter.Wait(context.Background(), "example.com")
		require.NoError(t, err)

		start := time.Now()
		err = limiter.Wait(context.Background(), "example.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, elapsed, 80*time.Millisecond, "should wait for spacing")
	})

	t.Run("different hosts have independent limits", func(t *testing.T) {
		t.Parallel()

		limiter := scan.NewHostLimiter(100 * time.Millisecond)

		err := limiter.Wait(context.Background(), "example.com")
		require.NoError(t, err)

		start := time.Now()
		err = limiter.Wait(context.Background(), "other.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "different host should not wait")
	})

	t.Run("zero interval disables spacing", func(t *testing.T) {
		t.Parallel()

		limiter := scan.NewHostLimiter(0)

		start := time.Now()
		for range 5 {
			require.NoError(t, limiter.Wait(context.Background(), "example.com"))
		}
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := scan.NewHostLimiter(time.Second)

		err := limiter.Wait(context.Background(), "example.com")
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err = limiter.Wait(ctx, "example.com")
		assert.Error(t, err, "should fail when context times out")
	})

	t.Run("concurrent requests are serialized per host", func(t *testing.T) {
		t.Parallel()

		limiter := scan.NewHostLimiter(10 * time.Millisecond)

		var wg sync.WaitGroup
		var completed atomic.Int32

		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := limiter.Wait(context.Background(), "example.com"); err == nil {
					completed.Add(1)
				}
			}()
		}

		wg.Wait()
		assert.Equal(t, int32(5), completed.Load(), "all requests should complete")
	})
}
