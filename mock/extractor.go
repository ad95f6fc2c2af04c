package mock

import "github.com/fwojciec/jobscan"

var (
	_ jobscan.Extractor        = (*Extractor)(nil)
	_ jobscan.LanguageDetector = (*LanguageDetector)(nil)
)

// Extractor is a mock implementation of jobscan.Extractor.
type Extractor struct {
	ExtractFn func(html string, level jobscan.SanitizeLevel) (*jobscan.Page, error)
}

func (e *Extractor) Extract(html string, level jobscan.SanitizeLevel) (*jobscan.Page, error) {
	return e.ExtractFn(html, level)
}

// LanguageDetector is a mock implementation of jobscan.LanguageDetector.
type LanguageDetector struct {
	DetectLanguageFn func(text string) string
}

func (d *LanguageDetector) DetectLanguage(text string) string {
	return d.DetectLanguageFn(text)
}
