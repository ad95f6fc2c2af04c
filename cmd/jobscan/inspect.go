package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/jobscan"
)

// Run executes the inspect command.
func (c *InspectCmd) Run(deps *Dependencies) error {
	url := jobscan.EnsureScheme(c.URL)
	if err := jobscan.ValidateURL(url); err != nil {
		return reportError(deps, err)
	}

	result := jobscan.FetchPage(deps.Ctx, deps.Fetcher, url)
	if !result.OK() {
		return reportError(deps, result.Err)
	}

	level := jobscan.SanitizeBasic
	if c.Strict {
		level = jobscan.SanitizeStrict
	}
	page, err := deps.Extractor.Extract(result.Body, level)
	if err != nil {
		return reportError(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Title:    %s\n", page.Title)
	if page.Board != jobscan.BoardUnknown {
		fmt.Fprintf(deps.Stdout, "Board:    %s\n", page.Board)
	}
	if deps.Language != nil {
		if lang := deps.Language.DetectLanguage(page.Text); lang != "" {
			fmt.Fprintf(deps.Stdout, "Language: %s\n", lang)
		}
	}
	if len(page.Headings) > 0 {
		fmt.Fprintln(deps.Stdout, "Headings:")
		for _, h := range page.Headings {
			fmt.Fprintf(deps.Stdout, "  - %s\n", h)
		}
	}
	fmt.Fprintln(deps.Stdout)

	if c.Text {
		fmt.Fprintln(deps.Stdout, strings.TrimSpace(page.Text))
		return nil
	}

	md, err := deps.Converter.Convert(page.ContentHTML)
	if err != nil {
		return reportError(deps, fmt.Errorf("failed to convert to markdown: %w", err))
	}
	fmt.Fprintln(deps.Stdout, md)
	return nil
}
