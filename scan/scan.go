// Package scan runs the fetch and classify pipeline over a batch of
// posting URLs.
package scan

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/jobscan"
	"golang.org/x/sync/errgroup"
)

var _ jobscan.Scanner = (*Scanner)(nil)

// Scanner fetches and classifies posting URLs.
// With Concurrency 1 (the default) URLs are processed strictly in order.
type Scanner struct {
	Fetcher     jobscan.Fetcher
	Classifier  jobscan.Classifier
	Limiter     jobscan.HostLimiter
	Concurrency int
}

// scanResult holds the verdict for one input position.
type scanResult struct {
	position int
	verdict  *jobscan.PageVerdict
}

// Scan fetches and classifies every URL and returns verdicts in input order.
// Per-URL failures are folded into verdicts. If ctx is canceled, the
// verdicts collected so far are returned (nil for unprocessed positions)
// together with the context error.
func (s *Scanner) Scan(ctx context.Context, urls []string, progress jobscan.ScanProgressFunc) ([]*jobscan.PageVerdict, error) {
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	resultCh := make(chan scanResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, url := range urls {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				v, err := s.scanURL(gctx, url)
				if err != nil {
					return err
				}
				resultCh <- scanResult{position: i, verdict: v}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results; progress is reported from this goroutine only.
	verdicts := make([]*jobscan.PageVerdict, len(urls))
	completed := 0
	for result := range resultCh {
		completed++
		verdicts[result.position] = result.verdict
		if progress != nil {
			progress(jobscan.ScanProgress{
				URL:       result.verdict.URL,
				Completed: completed,
				Total:     len(urls),
				Verdict:   result.verdict,
			})
		}
	}

	if err := ctx.Err(); err != nil {
		return verdicts, err
	}
	return verdicts, nil
}

// ScanURL fetches and classifies a single URL.
// The returned error is non-nil only when ctx is canceled.
func (s *Scanner) ScanURL(ctx context.Context, url string) (*jobscan.PageVerdict, error) {
	return s.scanURL(ctx, url)
}

func (s *Scanner) scanURL(ctx context.Context, url string) (*jobscan.PageVerdict, error) {
	if err := jobscan.ValidateURL(url); err != nil {
		return jobscan.FailedVerdict(url, err), nil
	}

	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx, jobscan.HostOf(url)); err != nil {
			return nil, err
		}
	}

	result := jobscan.FetchPage(ctx, s.Fetcher, url)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !result.OK() {
		v := jobscan.FailedVerdict(url, result.Err)
		v.Duration = result.Duration
		return v, nil
	}

	// The classifier's verdict may already be held elsewhere; fill in
	// fetch details on a copy.
	v := *s.Classifier.Evaluate(url, result.Body)
	v.StatusCode = result.StatusCode
	v.ContentHash = ContentHash(result.Body)
	v.Duration = result.Duration
	if v.FetchedAt.IsZero() {
		v.FetchedAt = time.Now().UTC()
	}
	return &v, nil
}

// ContentHash returns the hex xxhash of a fetched body, used to notice
// when an archived posting changes between scans.
func ContentHash(body string) string {
	h := xxhash.Sum64String(body)
	return fmt.Sprintf("%x", h)
}
