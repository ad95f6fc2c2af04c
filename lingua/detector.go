// Package lingua implements jobscan.LanguageDetector using lingua-go.
package lingua

import (
	"strings"

	"github.com/fwojciec/jobscan"
	"github.com/pemistahl/lingua-go"
)

// Ensure Detector implements jobscan.LanguageDetector at compile time.
var _ jobscan.LanguageDetector = (*Detector)(nil)

// DefaultLanguages are the posting languages recognized by default.
var DefaultLanguages = []lingua.Language{
	lingua.English,
	lingua.Portuguese,
	lingua.Spanish,
}

// minRelativeDistance makes the detector abstain on short or mixed text
// instead of guessing.
const minRelativeDistance = 0.1

// Detector guesses the language of posting text.
// Detector is safe for concurrent use.
type Detector struct {
	detector lingua.LanguageDetector
}

// NewDetector builds a detector for the given languages, or for
// DefaultLanguages when none are given.
func NewDetector(languages ...lingua.Language) *Detector {
	if len(languages) < 2 {
		languages = DefaultLanguages
	}
	d := lingua.NewLanguageDetectorBuilder().
		FromLanguages(languages...).
		WithMinimumRelativeDistance(minRelativeDistance).
		Build()
	return &Detector{detector: d}
}

// DetectLanguage returns the lowercase ISO 639-1 code of text, or "" when
// the language cannot be determined.
func (d *Detector) DetectLanguage(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
