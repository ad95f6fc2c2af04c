package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/jobscan"
	"github.com/fwojciec/jobscan/scan"
)

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	classifier, _, err := newClassifier(deps, c.MatchFlags, []string{c.Role})
	if err != nil {
		return reportError(deps, err)
	}

	scanner := &scan.Scanner{Fetcher: deps.Fetcher, Classifier: classifier}
	v, err := scanner.ScanURL(deps.Ctx, jobscan.EnsureScheme(c.URL))
	if err != nil {
		return reportError(deps, err)
	}

	writeCheck(deps.Stdout, v, c.Role)

	if c.Details {
		fmt.Fprintln(deps.Stdout)
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return reportError(deps, err)
		}
	}

	if !v.Readable {
		return fmt.Errorf("could not read %s: %s", v.URL, v.StatusLabel())
	}
	return nil
}

// writeCheck prints the role, work model and region findings for one page.
func writeCheck(w io.Writer, v *jobscan.PageVerdict, role string) {
	fmt.Fprintf(w, "URL:      %s\n", v.URL)
	fmt.Fprintf(w, "Status:   %s\n", v.StatusLabel())
	if !v.Readable {
		if v.Note != "" {
			fmt.Fprintf(w, "Note:     %s\n", v.Note)
		}
		return
	}

	if v.Title != "" {
		fmt.Fprintf(w, "Title:    %s\n", v.Title)
	}
	if v.TitleFound {
		fmt.Fprintf(w, "Role:     found %q (confidence %s)\n", role, v.Confidence)
	} else {
		fmt.Fprintf(w, "Role:     %q not found\n", role)
	}
	fmt.Fprintf(w, "Model:    %s\n", v.ModelsLabel())
	if v.IsLatam {
		fmt.Fprintln(w, "Region:   LATAM")
	} else {
		fmt.Fprintln(w, "Region:   LATAM not mentioned")
	}
	if v.Language != "" {
		fmt.Fprintf(w, "Language: %s\n", v.Language)
	}
	if v.Board != jobscan.BoardUnknown {
		fmt.Fprintf(w, "Board:    %s\n", v.Board)
	}
	if v.Note != "" {
		fmt.Fprintf(w, "Note:     %s\n", v.Note)
	}
}
