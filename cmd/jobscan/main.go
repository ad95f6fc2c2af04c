package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/jobscan"
	"github.com/fwojciec/jobscan/goquery"
	"github.com/fwojciec/jobscan/htmltomarkdown"
	jshttp "github.com/fwojciec/jobscan/http"
	"github.com/fwojciec/jobscan/lingua"
	"github.com/fwojciec/jobscan/readability"
	"github.com/fwojciec/jobscan/rod"
	"github.com/fwojciec/jobscan/scan"
	jsslog "github.com/fwojciec/jobscan/slog"
	"github.com/fwojciec/jobscan/sqlite"
	"github.com/fwojciec/jobscan/trafilatura"
	jsyaml "github.com/fwojciec/jobscan/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when --db and JOBSCAN_DB are unset.
	DBPath string

	// Stdin is read by "scan -".
	Stdin io.Reader

	// SQLite database opened for the archive.
	DB *sqlite.DB

	// Services for end-to-end testing. Nil fields are built from flags.
	Fetcher  jobscan.Fetcher
	Limiter  jobscan.HostLimiter
	Scans    jobscan.ScanService
	Language jobscan.LanguageDetector
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("jobscan"),
		kong.Description("Check job postings for a role, work model and LATAM eligibility"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'jobscan --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(stderr, cli.Verbose)

	if cli.Timeout <= 0 {
		err := jobscan.Errorf(jobscan.EINVALID, "timeout must be positive, got %s", cli.Timeout)
		fmt.Fprintf(stderr, "error: %s\n", jobscan.ErrorMessage(err))
		return err
	}

	deps.Rules = jobscan.DefaultRuleSet()
	if cli.Rules != "" {
		if deps.Rules, err = jsyaml.LoadRuleSet(cli.Rules); err != nil {
			fmt.Fprintf(stderr, "error: %s\n", jobscan.ErrorMessage(err))
			return err
		}
	}

	if cmd == "history" || (cmd == "scan" && cli.Scan.Archive) {
		scans, err := m.openArchive(cli.DB, stderr)
		if err != nil {
			return err
		}
		defer m.Close()
		deps.Scans = jsslog.NewLoggingScanService(scans, deps.Logger)
	}

	if cmd != "history" {
		fetcher := m.Fetcher
		if fetcher == nil {
			if fetcher, err = newFetcher(cli, stderr); err != nil {
				return err
			}
			defer fetcher.Close()
		}
		deps.Fetcher = jsslog.NewLoggingFetcher(fetcher, deps.Logger)
		deps.Extractor = newExtractor(cli.Extractor)
		deps.Converter = htmltomarkdown.NewConverter()
		if cmd == "inspect" {
			deps.Converter = htmltomarkdown.NewConverter(htmltomarkdown.WithDomain(origin(cli.Inspect.URL)))
		}

		deps.Language = m.Language
		if deps.Language == nil {
			deps.Language = lingua.NewDetector()
		}

		deps.Limiter = m.Limiter
		if deps.Limiter == nil && cmd == "scan" {
			deps.Limiter = scan.NewHostLimiter(cli.Scan.Delay)
		}
	}

	return kongCtx.Run(deps)
}

func (m *Main) openArchive(path string, stderr io.Writer) (jobscan.ScanService, error) {
	if m.Scans != nil {
		return m.Scans, nil
	}
	if path == "" {
		path = m.DBPath
	}
	if dir := filepath.Dir(path); dir != "." {
		_ = os.MkdirAll(dir, 0755)
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		fmt.Fprintf(stderr, "Hint: Set JOBSCAN_DB to use a different database path\n")
		return nil, fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return sqlite.NewScanService(m.DB), nil
}

func newFetcher(cli *CLI, stderr io.Writer) (jobscan.Fetcher, error) {
	ua := cli.UserAgent
	if ua == "" {
		ua = jobscan.DefaultUserAgent
	}

	static := jshttp.NewFetcher(jshttp.WithTimeout(cli.Timeout), jshttp.WithUserAgent(ua))
	if cli.Render == "never" {
		return static, nil
	}

	rendered, err := rod.NewFetcher(
		rod.WithFetchTimeout(cli.Timeout),
		rod.WithUserAgent(ua),
		rod.WithPagesPerBrowser(cli.PagesPerBrowser),
	)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	if cli.Render == "always" {
		_ = static.Close()
		return rendered, nil
	}
	return &scan.FallbackFetcher{
		Primary:   static,
		Render:    rendered,
		Extractor: newExtractor(cli.Extractor),
	}, nil
}

func newExtractor(name string) jobscan.Extractor {
	switch name {
	case "readability":
		return readability.NewExtractor()
	case "trafilatura":
		return trafilatura.NewExtractor()
	default:
		return goquery.NewExtractor()
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// origin returns scheme://host of rawURL, or "" if it has none.
func origin(rawURL string) string {
	u, err := url.Parse(jobscan.EnsureScheme(rawURL))
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "jobscan.db"
	}
	return filepath.Join(home, ".jobscan", "jobscan.db")
}

// reportError prints err on stderr and returns it.
func reportError(deps *Dependencies, err error) error {
	msg := jobscan.ErrorMessage(err)
	if jobscan.ErrorCode(err) == jobscan.EINTERNAL {
		msg = err.Error()
	}
	fmt.Fprintf(deps.Stderr, "error: %s\n", msg)
	return err
}
