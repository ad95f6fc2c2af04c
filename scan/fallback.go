package scan

import (
	"context"
	"errors"
	"strings"

	"github.com/fwojciec/jobscan"
)

var _ jobscan.Fetcher = (*FallbackFetcher)(nil)

// DefaultMinTextLength is the visible text length below which a page is
// treated as an unrendered shell.
const DefaultMinTextLength = 400

// FallbackFetcher fetches with Primary and refetches with Render when the
// primary markup carries too little text. Single-page job boards serve an
// empty shell until their scripts run.
type FallbackFetcher struct {
	Primary   jobscan.Fetcher
	Render    jobscan.Fetcher
	Extractor jobscan.Extractor

	// MinTextLength defaults to DefaultMinTextLength.
	MinTextLength int
}

// Fetch returns the primary markup unless the rendered markup holds
// substantially more content. HTTP status errors are returned as is.
func (f *FallbackFetcher) Fetch(ctx context.Context, url string) (string, error) {
	html, err := f.Primary.Fetch(ctx, url)
	if err != nil {
		if fe, ok := jobscan.FetchErrorOf(err); ok && fe.Kind == jobscan.HTTPStatus {
			return "", err
		}
		if ctx.Err() != nil {
			return "", err
		}
		return f.Render.Fetch(ctx, url)
	}

	if !f.thin(html) {
		return html, nil
	}

	rendered, err := f.Render.Fetch(ctx, url)
	if err != nil {
		return html, nil
	}
	if ContentDiffers(html, rendered, f.Extractor) {
		return rendered, nil
	}
	return html, nil
}

func (f *FallbackFetcher) thin(html string) bool {
	limit := f.MinTextLength
	if limit <= 0 {
		limit = DefaultMinTextLength
	}
	page, err := f.Extractor.Extract(html, jobscan.SanitizeBasic)
	if err != nil {
		return true
	}
	return len(strings.TrimSpace(page.Text)) < limit
}

// Close closes both fetchers.
func (f *FallbackFetcher) Close() error {
	return errors.Join(f.Primary.Close(), f.Render.Close())
}

// ContentDiffers reports whether rendered markup yields substantially more
// text (over 50% longer) than static markup. An extraction failure of the
// static markup counts as a difference; a failure of the rendered one does
// not.
func ContentDiffers(static, rendered string, extractor jobscan.Extractor) bool {
	renderedPage, err := extractor.Extract(rendered, jobscan.SanitizeBasic)
	if err != nil {
		return false
	}
	staticPage, err := extractor.Extract(static, jobscan.SanitizeBasic)
	if err != nil {
		return true
	}

	staticLen := len(strings.TrimSpace(staticPage.Text))
	renderedLen := len(strings.TrimSpace(renderedPage.Text))
	if staticLen == 0 {
		return renderedLen > 0
	}
	return float64(renderedLen) > float64(staticLen)*1.5
}
