package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/jobscan"
	"github.com/fwojciec/jobscan/fs"
	"github.com/fwojciec/jobscan/scan"
)

// Run executes the scan command.
func (c *ScanCmd) Run(deps *Dependencies) error {
	urls, err := c.readURLs(deps)
	if err != nil {
		return reportError(deps, err)
	}
	if len(urls) == 0 {
		return reportError(deps, jobscan.Errorf(jobscan.EINVALID, "no URLs to scan"))
	}

	classifier, rules, err := newClassifier(deps, c.MatchFlags, c.Role)
	if err != nil {
		return reportError(deps, err)
	}

	var snapshots jobscan.SnapshotStore
	if c.Snapshots != "" {
		dir := filepath.Clean(c.Snapshots)
		snapshots = fs.NewSnapshotStore(filepath.Dir(dir), filepath.Base(dir))
		classifier = &snapshotClassifier{
			ctx:       deps.Ctx,
			next:      classifier,
			converter: deps.Converter,
			store:     snapshots,
			logger:    deps.Logger,
		}
	}

	scanner := &scan.Scanner{
		Fetcher:     deps.Fetcher,
		Classifier:  classifier,
		Limiter:     deps.Limiter,
		Concurrency: c.Concurrency,
	}

	var progress jobscan.ScanProgressFunc
	if !c.Quiet {
		progress = func(p jobscan.ScanProgress) {
			fmt.Fprintf(deps.Stderr, "[%d/%d] %-16s %s\n", p.Completed, p.Total, p.Verdict.StatusLabel(), p.URL)
		}
	}

	startedAt := time.Now().UTC()
	verdicts, scanErr := scanner.Scan(deps.Ctx, urls, progress)
	verdicts = completed(verdicts)

	if snapshots != nil {
		if scanErr != nil {
			_ = snapshots.Abort()
		} else if err := snapshots.Commit(); err != nil {
			return reportError(deps, fmt.Errorf("failed to save snapshots: %w", err))
		}
	}

	summary := jobscan.Summarize(verdicts)
	if err := c.writeOutput(deps, verdicts, &summary); err != nil {
		return reportError(deps, err)
	}

	if scanErr != nil {
		return reportError(deps, fmt.Errorf("scan interrupted after %d of %d URLs: %w", len(verdicts), len(urls), scanErr))
	}

	if c.Archive && deps.Scans != nil {
		strategy, _ := jobscan.ParseMatchStrategy(c.Match)
		record := &jobscan.Scan{
			StartedAt: startedAt,
			Mode:      c.mode(),
			Strategy:  strategy,
			Roles:     ruleNames(rules.Roles),
		}
		if err := deps.Scans.CreateScan(deps.Ctx, record, verdicts); err != nil {
			return reportError(deps, err)
		}
		fmt.Fprintf(deps.Stderr, "Archived scan %s\n", record.ID)
	}

	return nil
}

func (c *ScanCmd) readURLs(deps *Dependencies) ([]string, error) {
	if c.File == "-" {
		return jobscan.ReadURLList(deps.Stdin, c.Limit)
	}
	f, err := os.Open(c.File)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, jobscan.Errorf(jobscan.ENOTFOUND, "URL file %q not found", c.File)
		}
		return nil, err
	}
	defer f.Close()
	return jobscan.ReadURLList(f, c.Limit)
}

// writeOutput writes the report to stdout or atomically to --output.
func (c *ScanCmd) writeOutput(deps *Dependencies, verdicts []*jobscan.PageVerdict, summary *jobscan.Summary) error {
	if c.Output == "" {
		return writeReport(deps.Stdout, c.Format, verdicts, summary)
	}

	f, err := fs.CreateReportFile(c.Output)
	if err != nil {
		return err
	}
	if err := writeReport(f, c.Format, verdicts, summary); err != nil {
		_ = f.Abort()
		return err
	}
	if err := f.Commit(); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stderr, "Wrote %d verdicts to %s\n", len(verdicts), c.Output)
	return nil
}

// completed drops the positions left empty by an interrupted scan.
func completed(verdicts []*jobscan.PageVerdict) []*jobscan.PageVerdict {
	out := verdicts[:0:0]
	for _, v := range verdicts {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

func ruleNames(rules []jobscan.Rule) []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	return names
}
