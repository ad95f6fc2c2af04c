package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/jobscan"
)

// Ensure Detector implements jobscan.BoardDetector at compile time.
var _ jobscan.BoardDetector = (*Detector)(nil)

// Detector identifies job boards from HTML content.
// It checks for board-specific CSS classes, element IDs, meta tags and
// embedded script sources.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// boardMarkers are checked in order; the first board with a matching
// selector wins.
var boardMarkers = []struct {
	board    jobscan.Board
	selector string
}{
	{jobscan.BoardGreenhouse, "#app_body, #grnhse_app, script[src*='greenhouse.io'], iframe[src*='greenhouse.io']"},
	{jobscan.BoardLever, ".posting-headline, .posting-categories, a[href*='jobs.lever.co']"},
	{jobscan.BoardWorkable, "[data-ui='job-description'], script[src*='workable.com']"},
	{jobscan.BoardGupy, "script[src*='gupy.io'], link[href*='gupy.io'], [data-testid='job-description-container']"},
	{jobscan.BoardLinkedIn, ".top-card-layout__title, .show-more-less-html__markup"},
	{jobscan.BoardIndeed, "#jobDescriptionText, .jobsearch-JobInfoHeader-title"},
	{jobscan.BoardSmartRecruiters, ".job-sections, script[src*='smartrecruiters.com']"},
	{jobscan.BoardAshby, "script[src*='ashbyhq.com'], [class*='ashby-job-posting']"},
}

// siteNames maps lowercased og:site_name values to boards.
var siteNames = map[string]jobscan.Board{
	"greenhouse":      jobscan.BoardGreenhouse,
	"lever":           jobscan.BoardLever,
	"workable":        jobscan.BoardWorkable,
	"gupy":            jobscan.BoardGupy,
	"linkedin":        jobscan.BoardLinkedIn,
	"indeed":          jobscan.BoardIndeed,
	"smartrecruiters": jobscan.BoardSmartRecruiters,
	"ashby":           jobscan.BoardAshby,
}

// Detect analyzes HTML and returns the identified board.
// Returns BoardUnknown if the board cannot be determined.
func (d *Detector) Detect(html string) jobscan.Board {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return jobscan.BoardUnknown
	}
	return d.DetectDocument(doc.Selection)
}

// DetectDocument is like Detect for an already parsed document. It must run
// before sanitizing since board markers often live in scripts and footers.
func (d *Detector) DetectDocument(sel *goquery.Selection) jobscan.Board {
	// The site name is the most reliable signal when present.
	if board := d.detectFromSiteName(sel); board != jobscan.BoardUnknown {
		return board
	}

	for _, m := range boardMarkers {
		if sel.Find(m.selector).Length() > 0 {
			return m.board
		}
	}
	return jobscan.BoardUnknown
}

func (d *Detector) detectFromSiteName(sel *goquery.Selection) jobscan.Board {
	name, _ := sel.Find("meta[property='og:site_name']").First().Attr("content")
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return jobscan.BoardUnknown
	}
	for key, board := range siteNames {
		if strings.Contains(name, key) {
			return board
		}
	}
	return jobscan.BoardUnknown
}
