package mock

import "github.com/fwojciec/jobscan"

var _ jobscan.Classifier = (*Classifier)(nil)

// Classifier is a mock implementation of jobscan.Classifier.
type Classifier struct {
	EvaluateFn func(url, html string) *jobscan.PageVerdict
}

func (c *Classifier) Evaluate(url, html string) *jobscan.PageVerdict {
	return c.EvaluateFn(url, html)
}
