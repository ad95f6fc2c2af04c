package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/jobscan"
)

// Ensure LoggingClassifier implements jobscan.Classifier.
var _ jobscan.Classifier = (*LoggingClassifier)(nil)

// LoggingClassifier wraps a Classifier with debug logging of each verdict.
type LoggingClassifier struct {
	next   jobscan.Classifier
	logger *slog.Logger
}

// NewLoggingClassifier creates a new LoggingClassifier.
func NewLoggingClassifier(next jobscan.Classifier, logger *slog.Logger) *LoggingClassifier {
	return &LoggingClassifier{next: next, logger: logger}
}

// Evaluate delegates to the wrapped classifier and logs the verdict.
func (c *LoggingClassifier) Evaluate(url, html string) *jobscan.PageVerdict {
	begin := time.Now()
	v := c.next.Evaluate(url, html)
	c.logger.Debug("classify",
		"url", url,
		"readable", v.Readable,
		"roles", v.MatchedRoles,
		"models", v.MatchedModels,
		"latam", v.IsLatam,
		"confidence", v.Confidence,
		"duration", time.Since(begin),
	)
	return v
}
