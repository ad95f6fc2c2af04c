package classify

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/jobscan"
)

// Matcher reports whether normalized text contains a rule's terms.
type Matcher interface {
	Match(text string) bool
}

// NewMatcher compiles terms for the given strategy. Blank terms are ignored.
func NewMatcher(strategy jobscan.MatchStrategy, terms []string) (Matcher, error) {
	switch strategy {
	case jobscan.MatchSubstring, "":
		return substringMatcher(normalizeTerms(terms)), nil
	case jobscan.MatchWord:
		return wordMatcher(normalizeTerms(terms)), nil
	case jobscan.MatchRegex:
		var m regexMatcher
		for _, t := range terms {
			if strings.TrimSpace(t) == "" {
				continue
			}
			re, err := regexp.Compile("(?i)" + t)
			if err != nil {
				return nil, jobscan.Errorf(jobscan.EINVALID, "invalid term pattern %q: %v", t, err)
			}
			m = append(m, re)
		}
		return m, nil
	}
	return nil, jobscan.Errorf(jobscan.EINVALID, "unknown match strategy %q", strategy)
}

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if n := Normalize(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}

type substringMatcher []string

func (m substringMatcher) Match(text string) bool {
	for _, t := range m {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

type wordMatcher []string

func (m wordMatcher) Match(text string) bool {
	for _, t := range m {
		if containsWord(text, t) {
			return true
		}
	}
	return false
}

// containsWord reports whether term occurs in text with no letter or digit
// directly before or after it.
func containsWord(text, term string) bool {
	for offset := 0; offset <= len(text)-len(term); {
		i := strings.Index(text[offset:], term)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(term)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
	return false
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

type regexMatcher []*regexp.Regexp

func (m regexMatcher) Match(text string) bool {
	for _, re := range m {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// namedMatcher pairs a compiled matcher with the rule it came from.
type namedMatcher struct {
	name string
	Matcher
}

func compileRules(strategy jobscan.MatchStrategy, rules []jobscan.Rule) ([]namedMatcher, error) {
	out := make([]namedMatcher, 0, len(rules))
	for _, r := range rules {
		m, err := NewMatcher(strategy, r.Terms)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Name, err)
		}
		out = append(out, namedMatcher{name: r.Name, Matcher: m})
	}
	return out, nil
}
