package main

import (
	"context"
	"log/slog"

	"github.com/fwojciec/jobscan"
	"github.com/fwojciec/jobscan/classify"
	jsslog "github.com/fwojciec/jobscan/slog"
)

func (f MatchFlags) mode() jobscan.MatchMode {
	if f.Strict {
		return jobscan.Strict
	}
	return jobscan.Permissive
}

// newClassifier compiles the rule table, with roles replacing its role
// list when given, into a logging classifier.
func newClassifier(deps *Dependencies, flags MatchFlags, roles []string) (jobscan.Classifier, jobscan.RuleSet, error) {
	rules := deps.Rules
	if len(roles) > 0 {
		rules = rules.WithRoles(roles...)
	}

	strategy, err := jobscan.ParseMatchStrategy(flags.Match)
	if err != nil {
		return nil, rules, err
	}

	opts := []classify.Option{
		classify.WithMode(flags.mode()),
		classify.WithStrategy(strategy),
	}
	if deps.Language != nil {
		opts = append(opts, classify.WithLanguageDetector(deps.Language))
	}

	c, err := classify.New(deps.Extractor, rules, opts...)
	if err != nil {
		return nil, rules, err
	}
	return jsslog.NewLoggingClassifier(c, deps.Logger), rules, nil
}

// snapshotClassifier saves every readable posting it classifies.
type snapshotClassifier struct {
	ctx       context.Context
	next      jobscan.Classifier
	converter jobscan.Converter
	store     jobscan.SnapshotStore
	logger    *slog.Logger
}

func (c *snapshotClassifier) Evaluate(url, html string) *jobscan.PageVerdict {
	v := c.next.Evaluate(url, html)
	if !v.Readable {
		return v
	}

	md, err := c.converter.Convert(html)
	if err != nil {
		c.logger.Warn("snapshot", "url", url, "err", err)
		return v
	}
	snap := &jobscan.Snapshot{URL: url, Title: v.Title, Markdown: md, Verdict: v}
	if err := c.store.Save(c.ctx, snap); err != nil {
		c.logger.Warn("snapshot", "url", url, "err", err)
	}
	return v
}
