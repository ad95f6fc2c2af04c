// Package http provides an HTTP-based implementation of jobscan.Fetcher
// for posting pages that don't require JavaScript rendering.
package http

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/jobscan"
	"golang.org/x/net/html/charset"
)

// DefaultMaxBodySize caps how much of a response body is read.
const DefaultMaxBodySize = 10 << 20

// Ensure Fetcher implements jobscan.Fetcher at compile time.
var _ jobscan.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using a single HTTP GET.
// It does not retry and does not execute JavaScript.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to jobscan.DefaultFetchTimeout (10s) if not specified or not positive.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
// Defaults to jobscan.DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize limits how many bytes of a body are read.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     jobscan.DefaultFetchTimeout,
		userAgent:   jobscan.DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.timeout <= 0 {
		f.timeout = jobscan.DefaultFetchTimeout
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
// Failures are returned as *jobscan.FetchError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := jobscan.ValidateURL(url); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", jobscan.Errorf(jobscan.EINVALID, "invalid request for %s: %v", url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", connectionFailure(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &jobscan.FetchError{Kind: jobscan.HTTPStatus, StatusCode: resp.StatusCode}
	}

	// Decode legacy encodings (e.g. ISO-8859-1 postings) to UTF-8 so that
	// accented terms such as "híbrido" compare correctly.
	body, err := charset.NewReader(io.LimitReader(resp.Body, f.maxBodySize), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", &jobscan.FetchError{Kind: jobscan.ParseFailure, StatusCode: resp.StatusCode, Err: err}
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", connectionFailure(err)
	}

	return string(data), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

func connectionFailure(err error) *jobscan.FetchError {
	return &jobscan.FetchError{
		Kind:    jobscan.ConnectionFailure,
		Timeout: isTimeout(err),
		Err:     err,
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
