// Package readability implements a jobscan.Extractor that keeps only the
// main article of a page, as detected by go-readability.
package readability

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/jobscan"
	jsgoquery "github.com/fwojciec/jobscan/goquery"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements jobscan.Extractor at compile time.
var _ jobscan.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the posting body from HTML.
// Headings and the board are read from the full document so that strict
// matching still sees the page's h1 and h2.
type Extractor struct {
	detector *jsgoquery.Detector
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{detector: jsgoquery.NewDetector()}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string, level jobscan.SanitizeLevel) (*jobscan.Page, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, parseFailure(errors.New("empty document"))
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, parseFailure(err)
	}
	board := e.detector.DetectDocument(doc.Selection)

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, parseFailure(err)
	}

	content, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return nil, parseFailure(err)
	}
	jsgoquery.Sanitize(content.Selection, level)
	jsgoquery.Sanitize(doc.Selection, level)

	page := &jobscan.Page{
		Title:       strings.TrimSpace(article.Title),
		Headings:    jsgoquery.Headings(doc.Selection),
		Text:        jsgoquery.VisibleText(content.Selection),
		ContentHTML: article.Content,
		Board:       board,
	}
	if page.Title == "" {
		page.Title = strings.TrimSpace(jsgoquery.VisibleText(doc.Find("title").First()))
	}
	if strings.TrimSpace(page.Text) == "" {
		return nil, parseFailure(errors.New("no readable article"))
	}
	return page, nil
}

func parseFailure(err error) error {
	return &jobscan.FetchError{Kind: jobscan.ParseFailure, Err: err}
}
