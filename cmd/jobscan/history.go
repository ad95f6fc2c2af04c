package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fwojciec/jobscan"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if c.Delete {
		if c.ID == "" {
			return reportError(deps, jobscan.Errorf(jobscan.EINVALID, "--delete requires a scan ID"))
		}
		if err := deps.Scans.DeleteScan(deps.Ctx, c.ID); err != nil {
			return reportError(deps, err)
		}
		fmt.Fprintf(deps.Stdout, "Deleted scan %s\n", c.ID)
		return nil
	}

	if c.ID != "" {
		return c.show(deps)
	}
	return c.list(deps)
}

func (c *HistoryCmd) list(deps *Dependencies) error {
	scans, err := deps.Scans.FindScans(deps.Ctx, jobscan.ScanFilter{Limit: c.Limit})
	if err != nil {
		return reportError(deps, err)
	}
	if len(scans) == 0 {
		fmt.Fprintln(deps.Stdout, "No archived scans. Run 'jobscan scan --archive' to record one.")
		return nil
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tMODE\tMATCH\tURLS\tROLES")
	for _, s := range scans {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			s.ID,
			s.StartedAt.Local().Format("2006-01-02 15:04"),
			s.Mode,
			s.Strategy,
			s.Total,
			strings.Join(s.Roles, ", "),
		)
	}
	return tw.Flush()
}

func (c *HistoryCmd) show(deps *Dependencies) error {
	s, err := deps.Scans.FindScanByID(deps.Ctx, c.ID)
	if err != nil {
		return reportError(deps, err)
	}
	verdicts, err := deps.Scans.FindVerdicts(deps.Ctx, s.ID)
	if err != nil {
		return reportError(deps, err)
	}

	if c.Format == "table" {
		fmt.Fprintf(deps.Stdout, "Scan %s (%s, %s match) started %s\n\n",
			s.ID, s.Mode, s.Strategy, s.StartedAt.Local().Format("2006-01-02 15:04"))
	}
	summary := jobscan.Summarize(verdicts)
	return writeReport(deps.Stdout, c.Format, verdicts, &summary)
}
