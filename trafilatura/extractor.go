// Package trafilatura implements a jobscan.Extractor backed by
// go-trafilatura's main-content extraction.
package trafilatura

import (
	"bytes"
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/jobscan"
	jsgoquery "github.com/fwojciec/jobscan/goquery"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements jobscan.Extractor at compile time.
var _ jobscan.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract the posting body from HTML.
type Extractor struct {
	detector *jsgoquery.Detector
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{detector: jsgoquery.NewDetector()}
}

// Extract processes raw HTML and returns the main content. Headings are
// taken from the full document after sanitizing at level.
func (e *Extractor) Extract(rawHTML string, level jobscan.SanitizeLevel) (*jobscan.Page, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, parseFailure(errors.New("empty document"))
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, parseFailure(err)
	}
	board := e.detector.DetectDocument(doc.Selection)
	jsgoquery.Sanitize(doc.Selection, level)

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, parseFailure(err)
	}

	page := &jobscan.Page{
		Title:    strings.TrimSpace(result.Metadata.Title),
		Headings: jsgoquery.Headings(doc.Selection),
		Board:    board,
	}
	if result.ContentNode != nil {
		content := goquery.NewDocumentFromNode(result.ContentNode)
		jsgoquery.Sanitize(content.Selection, level)
		page.Text = jsgoquery.VisibleText(content.Selection)
		page.ContentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, parseFailure(err)
		}
	}
	if page.Title == "" {
		page.Title = strings.TrimSpace(jsgoquery.VisibleText(doc.Find("title").First()))
	}
	if strings.TrimSpace(page.Text) == "" {
		return nil, parseFailure(errors.New("no main content"))
	}
	return page, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func parseFailure(err error) error {
	return &jobscan.FetchError{Kind: jobscan.ParseFailure, Err: err}
}
