package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/jobscan"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Fetcher   jobscan.Fetcher
	Extractor jobscan.Extractor
	Language  jobscan.LanguageDetector
	Limiter   jobscan.HostLimiter
	Converter jobscan.Converter
	Scans     jobscan.ScanService

	// Rules is the rule table before any --role override.
	Rules jobscan.RuleSet
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Timeout         time.Duration `short:"t" default:"10s" env:"JOBSCAN_TIMEOUT" help:"Fetch timeout per page"`
	UserAgent       string        `name:"user-agent" env:"JOBSCAN_USER_AGENT" help:"User-Agent header sent with every request"`
	Render          string        `default:"never" enum:"never,auto,always" env:"JOBSCAN_RENDER" help:"Render pages in headless Chrome (never, auto, always)"`
	PagesPerBrowser int           `name:"pages-per-browser" default:"50" help:"Postings one Chrome process renders before it is replaced"`
	Extractor       string        `default:"goquery" enum:"goquery,readability,trafilatura" help:"Text extractor (goquery, readability, trafilatura)"`
	Rules           string        `type:"path" env:"JOBSCAN_RULES" help:"YAML file overriding the role, work model and region tables"`
	DB              string        `name:"db" type:"path" env:"JOBSCAN_DB" help:"Archive database path"`
	Verbose         bool          `short:"v" help:"Log every fetch and verdict"`

	Check   CheckCmd   `cmd:"" help:"Classify a single posting URL"`
	Scan    ScanCmd    `cmd:"" help:"Classify a list of posting URLs"`
	Inspect InspectCmd `cmd:"" help:"Show the text and Markdown extracted from a posting"`
	History HistoryCmd `cmd:"" help:"List archived scans or show one scan's verdicts"`
}

// MatchFlags select how roles and terms are matched.
type MatchFlags struct {
	Strict bool   `short:"s" help:"Match roles only in the title and h1/h2 headings"`
	Match  string `default:"substring" enum:"substring,word,regex" help:"Term matching strategy (substring, word, regex)"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	MatchFlags `embed:""`

	URL     string `arg:"" help:"Posting URL"`
	Role    string `short:"r" default:"DevOps Engineer" help:"Role to look for"`
	Details bool   `short:"d" help:"Print the full verdict as JSON"`
}

// ScanCmd is the "scan" subcommand.
type ScanCmd struct {
	MatchFlags `embed:""`

	File        string        `arg:"" optional:"" default:"-" help:"File with one URL per line, or - for stdin"`
	Role        []string      `short:"r" sep:"none" help:"Role to look for (repeatable, default: built-in list)"`
	Limit       int           `short:"n" default:"10" help:"Maximum number of URLs (0 for no limit)"`
	Concurrency int           `short:"c" default:"1" help:"Concurrent fetch limit"`
	Delay       time.Duration `default:"500ms" help:"Minimum spacing between requests to the same host"`
	Format      string        `short:"f" default:"table" enum:"table,csv,json,yaml" help:"Report format (table, csv, json, yaml)"`
	Output      string        `short:"o" type:"path" help:"Write the report to this file instead of stdout"`
	Archive     bool          `help:"Store the scan in the archive database"`
	Snapshots   string        `type:"path" help:"Save readable postings as Markdown under this directory"`
	Quiet       bool          `short:"q" help:"Do not print progress"`
}

// InspectCmd is the "inspect" subcommand.
type InspectCmd struct {
	URL    string `arg:"" help:"Posting URL"`
	Strict bool   `short:"s" help:"Apply strict sanitizing"`
	Text   bool   `help:"Print the visible text instead of Markdown"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	ID     string `arg:"" optional:"" help:"Scan ID to show"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of scans to list"`
	Format string `short:"f" default:"table" enum:"table,csv,json,yaml" help:"Report format for a single scan"`
	Delete bool   `help:"Delete the scan instead of showing it"`
}
