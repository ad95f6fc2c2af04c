package jobscan

import (
	"context"
	"time"
)

// DefaultUserAgent is sent with every request. Job boards commonly reject or
// mis-serve default client identifiers.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultFetchTimeout bounds a single page request.
const DefaultFetchTimeout = 10 * time.Second

// Fetcher retrieves HTML from URLs.
// Implementations make a single attempt and report failures as *FetchError.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its markup.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// FetchResult is the terminal outcome of one fetch attempt.
// Exactly one of Body or Err is meaningful.
type FetchResult struct {
	URL        string
	StatusCode int // 0 when no response was received
	Body       string
	Err        *FetchError
	Duration   time.Duration
}

// OK reports whether the fetch produced a body.
func (r *FetchResult) OK() bool {
	return r.Err == nil
}

// FetchPage calls f and folds any error into the returned result.
// Errors that are not a *FetchError are reported as ConnectionFailure.
func FetchPage(ctx context.Context, f Fetcher, url string) *FetchResult {
	begin := time.Now()
	html, err := f.Fetch(ctx, url)
	result := &FetchResult{URL: url, Duration: time.Since(begin)}
	if err == nil {
		result.StatusCode = 200
		result.Body = html
		return result
	}

	fe, ok := FetchErrorOf(err)
	if !ok {
		fe = &FetchError{
			Kind:    ConnectionFailure,
			Timeout: ctx.Err() == context.DeadlineExceeded,
			Err:     err,
		}
	}
	result.Err = fe
	result.StatusCode = fe.StatusCode
	return result
}
