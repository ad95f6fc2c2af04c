package yaml

import (
	"io"

	"github.com/fwojciec/jobscan"
	"gopkg.in/yaml.v3"
)

// Report is the YAML document written for a scan.
type Report struct {
	Verdicts []*jobscan.PageVerdict `yaml:"verdicts"`
	Summary  *jobscan.Summary       `yaml:"summary,omitempty"`
}

// WriteReport encodes verdicts and an optional summary to w.
func WriteReport(w io.Writer, verdicts []*jobscan.PageVerdict, summary *jobscan.Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Report{Verdicts: verdicts, Summary: summary}); err != nil {
		return err
	}
	return enc.Close()
}
