// Package goquery extracts posting text from HTML using goquery selections.
package goquery

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/jobscan"
	"golang.org/x/net/html"
)

// Ensure Extractor implements jobscan.Extractor at compile time.
var _ jobscan.Extractor = (*Extractor)(nil)

// Selectors removed before text extraction, per sanitize level.
const (
	basicStripSelector  = "script, style, template"
	strictStripSelector = "nav, footer, aside, noscript, [role='navigation'], [role='contentinfo']"
	headingSelector     = "h1, h2"
)

// blockElements get a separating space so that adjacent blocks such as
// "<li>Remote</li><li>Hybrid</li>" never fuse into one word.
var blockElements = map[string]bool{
	"address": true, "article": true, "blockquote": true, "br": true,
	"dd": true, "div": true, "dl": true, "dt": true, "fieldset": true,
	"figcaption": true, "figure": true, "form": true, "h1": true,
	"h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "ol": true,
	"p": true, "pre": true, "section": true, "table": true, "td": true,
	"th": true, "title": true, "tr": true, "ul": true,
}

// Extractor strips non-content markup and returns the visible text.
type Extractor struct {
	detector *Detector
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{detector: NewDetector()}
}

// Extract parses rawHTML, removes non-content elements for the given
// level, and returns the title, h1/h2 headings and visible text.
func (e *Extractor) Extract(rawHTML string, level jobscan.SanitizeLevel) (*jobscan.Page, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, parseFailure(errors.New("empty document"))
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, parseFailure(err)
	}

	board := e.detector.DetectDocument(doc.Selection)
	Sanitize(doc.Selection, level)

	page := &jobscan.Page{
		Board:    board,
		Title:    strings.TrimSpace(VisibleText(doc.Find("title").First())),
		Headings: Headings(doc.Selection),
		Text:     VisibleText(doc.Selection),
	}
	if strings.TrimSpace(page.Text) == "" {
		return nil, parseFailure(errors.New("no visible text"))
	}

	body := doc.Find("body")
	if body.Length() > 0 {
		page.ContentHTML, _ = body.Html()
	}

	return page, nil
}

// Sanitize removes script and style elements, and for strict level also
// navigation, footer, aside and noscript elements.
func Sanitize(sel *goquery.Selection, level jobscan.SanitizeLevel) {
	sel.Find(basicStripSelector).Remove()
	if level == jobscan.SanitizeStrict {
		sel.Find(strictStripSelector).Remove()
	}
}

// Headings returns the trimmed text of every h1 and h2 in document order.
func Headings(sel *goquery.Selection) []string {
	var headings []string
	sel.Find(headingSelector).Each(func(_ int, h *goquery.Selection) {
		if text := strings.TrimSpace(VisibleText(h)); text != "" {
			headings = append(headings, text)
		}
	})
	return headings
}

// VisibleText concatenates the text nodes under sel, separating block
// elements with spaces. Comments are skipped.
func VisibleText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeText(&b, n)
	}
	return b.String()
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.CommentNode:
		return
	}

	block := n.Type == html.ElementNode && blockElements[n.Data]
	if block {
		b.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if block {
		b.WriteByte(' ')
	}
}

func parseFailure(err error) error {
	return &jobscan.FetchError{Kind: jobscan.ParseFailure, Err: err}
}
