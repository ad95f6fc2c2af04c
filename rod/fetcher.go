// Package rod implements a jobscan.Fetcher that renders pages in headless
// Chrome before returning their HTML.
package rod

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/fwojciec/jobscan"
	"github.com/go-rod/rod"
)

// Ensure Fetcher implements jobscan.Fetcher at compile time.
var _ jobscan.Fetcher = (*Fetcher)(nil)

// statusScript reads the HTTP status of the main document from the
// Navigation Timing API. It yields 0 when the browser does not expose it.
const statusScript = `() => {
	const nav = performance.getEntriesByType('navigation')[0];
	return nav && nav.responseStatus ? nav.responseStatus : 0;
}`

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager   *BrowserManager
	timeout   time.Duration
	userAgent string
	maxPages  int
	closed    atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page render timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the browser User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithPagesPerBrowser sets how many postings one Chrome process renders
// before it is replaced. Defaults to DefaultMaxPages.
func WithPagesPerBrowser(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:   jobscan.DefaultFetchTimeout,
		userAgent: jobscan.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.timeout <= 0 {
		f.timeout = jobscan.DefaultFetchTimeout
	}

	manager, err := NewBrowserManager(WithMaxPages(f.maxPages), WithBrowserUserAgent(f.userAgent))
	if err != nil {
		return nil, err
	}
	f.manager = manager
	return f, nil
}

// Fetch navigates to the URL, waits for the page to load and returns the
// rendered HTML. A main document status of 400 or above is reported as an
// HTTPStatus fetch error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", jobscan.Errorf(jobscan.EINVALID, "fetcher is closed")
	}
	if err := jobscan.ValidateURL(url); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, release, err := f.manager.OpenPage()
	if err != nil {
		return "", connectionFailure(ctx, err)
	}

	html, err := render(ctx, page, url)
	release(stalled(err))
	return html, err
}

func render(ctx context.Context, page *rod.Page, url string) (string, error) {
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", connectionFailure(ctx, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", connectionFailure(ctx, err)
	}

	if res, err := page.Eval(statusScript); err == nil {
		if code := res.Value.Int(); code >= 400 {
			return "", &jobscan.FetchError{Kind: jobscan.HTTPStatus, StatusCode: code}
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", connectionFailure(ctx, err)
	}
	return html, nil
}

// stalled reports whether a render ran out of time, which usually means
// the renderer hung rather than the site refusing the request.
func stalled(err error) bool {
	fe, ok := jobscan.FetchErrorOf(err)
	return ok && fe.Kind == jobscan.ConnectionFailure && fe.Timeout
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser taking new pages.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

func connectionFailure(ctx context.Context, err error) error {
	return &jobscan.FetchError{
		Kind:    jobscan.ConnectionFailure,
		Timeout: errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded),
		Err:     err,
	}
}
