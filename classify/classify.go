// Package classify evaluates posting pages against keyword rules.
package classify

import (
	"strings"
	"time"

	"github.com/fwojciec/jobscan"
)

// Ensure Classifier implements jobscan.Classifier at compile time.
var _ jobscan.Classifier = (*Classifier)(nil)

// Classifier evaluates markup against a compiled rule set.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	extractor jobscan.Extractor
	language  jobscan.LanguageDetector
	mode      jobscan.MatchMode
	strategy  jobscan.MatchStrategy

	roles  []namedMatcher
	models []namedMatcher
	region Matcher
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithMode selects permissive or strict role matching.
// Defaults to jobscan.Permissive.
func WithMode(mode jobscan.MatchMode) Option {
	return func(c *Classifier) {
		c.mode = mode
	}
}

// WithStrategy selects how terms are compared.
// Defaults to jobscan.MatchSubstring.
func WithStrategy(s jobscan.MatchStrategy) Option {
	return func(c *Classifier) {
		c.strategy = s
	}
}

// WithLanguageDetector adds the posting language to each verdict.
func WithLanguageDetector(d jobscan.LanguageDetector) Option {
	return func(c *Classifier) {
		c.language = d
	}
}

// New compiles rules and returns a Classifier.
func New(extractor jobscan.Extractor, rules jobscan.RuleSet, opts ...Option) (*Classifier, error) {
	c := &Classifier{
		extractor: extractor,
		mode:      jobscan.Permissive,
		strategy:  jobscan.MatchSubstring,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.mode != jobscan.Permissive && c.mode != jobscan.Strict {
		return nil, jobscan.Errorf(jobscan.EINVALID, "unknown match mode %q", c.mode)
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	var err error
	if c.roles, err = compileRules(c.strategy, rules.Roles); err != nil {
		return nil, err
	}
	if c.models, err = compileRules(c.strategy, rules.WorkModels); err != nil {
		return nil, err
	}
	if c.region, err = NewMatcher(c.strategy, rules.Region.Terms); err != nil {
		return nil, err
	}

	return c, nil
}

// Mode returns the role matching mode.
func (c *Classifier) Mode() jobscan.MatchMode { return c.mode }

// Strategy returns the term matching strategy.
func (c *Classifier) Strategy() jobscan.MatchStrategy { return c.strategy }

// Evaluate classifies html fetched from url.
// Markup that cannot be turned into text yields an unreadable verdict and
// no keyword test is run.
func (c *Classifier) Evaluate(url, html string) *jobscan.PageVerdict {
	page, err := c.extractor.Extract(html, c.mode.SanitizeLevel())
	if err != nil {
		if _, ok := jobscan.FetchErrorOf(err); !ok {
			err = &jobscan.FetchError{Kind: jobscan.ParseFailure, Err: err}
		}
		return jobscan.FailedVerdict(url, err)
	}
	return c.EvaluatePage(url, page)
}

// EvaluatePage classifies already extracted page text.
func (c *Classifier) EvaluatePage(url string, page *jobscan.Page) *jobscan.PageVerdict {
	body := Normalize(page.Text)

	v := &jobscan.PageVerdict{
		URL:           url,
		Readable:      true,
		Status:        jobscan.StatusOK,
		Title:         strings.TrimSpace(page.Title),
		MatchedRoles:  []string{},
		MatchedModels: []string{},
		Confidence:    jobscan.ConfidenceNotFound,
		Board:         page.Board,
		FetchedAt:     time.Now().UTC(),
	}
	if v.Board == jobscan.BoardUnknown {
		v.Board = jobscan.BoardFromURL(url)
	}

	roleText := body
	if c.mode == jobscan.Strict {
		roleText = Normalize(page.Title + " " + strings.Join(page.Headings, " "))
	}
	for _, r := range c.roles {
		if r.Match(roleText) {
			v.MatchedRoles = append(v.MatchedRoles, r.name)
		}
	}

	switch {
	case len(v.MatchedRoles) > 0 && c.mode == jobscan.Strict:
		v.TitleFound = true
		v.Confidence = jobscan.ConfidenceHigh
	case len(v.MatchedRoles) > 0:
		v.TitleFound = true
		v.Confidence = jobscan.ConfidenceLow
	case c.mode == jobscan.Strict:
		if hits := c.bodyOnlyRoles(body); len(hits) > 0 {
			v.Note = "role mentioned only in body text: " + strings.Join(hits, ", ")
		}
	}

	// Work models and region are searched in the full text in both modes.
	for _, m := range c.models {
		if m.Match(body) {
			v.MatchedModels = append(v.MatchedModels, m.name)
		}
	}
	v.IsLatam = c.region.Match(body)

	if c.language != nil {
		v.Language = c.language.DetectLanguage(page.Text)
	}

	return v
}

func (c *Classifier) bodyOnlyRoles(body string) []string {
	var names []string
	for _, r := range c.roles {
		if r.Match(body) {
			names = append(names, r.name)
		}
	}
	return names
}
