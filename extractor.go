package jobscan

// SanitizeLevel selects which elements are removed before text extraction.
type SanitizeLevel int

const (
	// SanitizeBasic removes script and style elements.
	SanitizeBasic SanitizeLevel = iota

	// SanitizeStrict also removes nav, footer, aside and noscript so that
	// site chrome listing unrelated postings cannot produce matches.
	SanitizeStrict
)

// Page holds the text extracted from a posting page.
type Page struct {
	// Title is the text of the <title> element.
	Title string

	// Headings are the texts of the h1 and h2 elements in document order.
	Headings []string

	// Text is the visible text after sanitizing. It is not normalized.
	Text string

	// ContentHTML is the sanitized markup the text was taken from.
	ContentHTML string

	// Board is the job board detected from the markup, if any.
	Board Board
}

// Extractor turns raw markup into page text.
type Extractor interface {
	// Extract parses html, removes the elements selected by level and
	// returns the remaining text. Empty or unparseable markup is reported
	// as a *FetchError with kind ParseFailure.
	Extract(html string, level SanitizeLevel) (*Page, error)
}

// LanguageDetector guesses the natural language of a text.
type LanguageDetector interface {
	// DetectLanguage returns an ISO 639-1 code, or "" when unsure.
	DetectLanguage(text string) string
}
