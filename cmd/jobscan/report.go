package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/fwojciec/jobscan"
	jsyaml "github.com/fwojciec/jobscan/yaml"
)

// writeReport renders verdicts in the named format.
func writeReport(w io.Writer, format string, verdicts []*jobscan.PageVerdict, summary *jobscan.Summary) error {
	switch format {
	case "csv":
		return writeCSV(w, verdicts)
	case "json":
		return writeJSON(w, verdicts, summary)
	case "yaml":
		return jsyaml.WriteReport(w, verdicts, summary)
	case "", "table":
		return writeTable(w, verdicts, summary)
	}
	return jobscan.Errorf(jobscan.EINVALID, "unknown report format %q", format)
}

func writeTable(w io.Writer, verdicts []*jobscan.PageVerdict, summary *jobscan.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tURL\tSTATUS\tROLES\tCONFIDENCE\tMODELS\tLATAM\tNOTE")
	for i, v := range verdicts {
		latam := "-"
		if v.IsLatam {
			latam = "yes"
		}
		models, confidence := "-", "-"
		if v.Readable {
			models = v.ModelsLabel()
			confidence = string(v.Confidence)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1, v.URL, v.StatusLabel(), v.RolesLabel(), confidence, models, latam, v.Note)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if summary == nil {
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Scanned %d URLs: %d readable, %d failed\n", summary.Total, summary.Readable, summary.Failed)
	fmt.Fprintf(w, "Role in title: %d\n", summary.TitleFound)
	fmt.Fprintf(w, "LATAM: %d\n", summary.Latam)
	writeCounts(w, "Work models", summary.Models)
	writeCounts(w, "Roles", summary.Roles)
	return nil
}

// writeCounts prints counts by descending frequency, then name.
func writeCounts(w io.Writer, heading string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	fmt.Fprintf(w, "%s:\n", heading)
	for _, name := range names {
		fmt.Fprintf(w, "  %-20s %d\n", name, counts[name])
	}
}

func writeCSV(w io.Writer, verdicts []*jobscan.PageVerdict) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"url", "status", "status_code", "title_found", "confidence",
		"roles", "models", "latam", "language", "board", "note",
	}); err != nil {
		return err
	}
	for _, v := range verdicts {
		models := ""
		if v.Readable {
			models = v.ModelsLabel()
		}
		roles := ""
		if len(v.MatchedRoles) > 0 {
			roles = v.RolesLabel()
		}
		if err := cw.Write([]string{
			v.URL,
			string(v.Status),
			strconv.Itoa(v.StatusCode),
			strconv.FormatBool(v.TitleFound),
			string(v.Confidence),
			roles,
			models,
			strconv.FormatBool(v.IsLatam),
			v.Language,
			string(v.Board),
			v.Note,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type jsonReport struct {
	Verdicts []*jobscan.PageVerdict `json:"verdicts"`
	Summary  *jobscan.Summary       `json:"summary,omitempty"`
}

func writeJSON(w io.Writer, verdicts []*jobscan.PageVerdict, summary *jobscan.Summary) error {
	if verdicts == nil {
		verdicts = []*jobscan.PageVerdict{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{Verdicts: verdicts, Summary: summary})
}
