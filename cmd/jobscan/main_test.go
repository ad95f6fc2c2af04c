package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/jobscan"
	main "github.com/fwojciec/jobscan/cmd/jobscan"
	"github.com/fwojciec/jobscan/goquery"
	"github.com/fwojciec/jobscan/htmltomarkdown"
	"github.com/fwojciec/jobscan/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const remotePosting = `<html><head><title>Senior DevOps Engineer - Acme</title></head>
<body><h1>Senior DevOps Engineer</h1>
<p>This is a fully remote position open to candidates across LATAM.</p>
</body></html>`

const onsitePosting = `<html><head><title>Backend Developer</title></head>
<body><h1>Backend Developer</h1><p>Presencial en São Paulo.</p></body></html>`

// pageFetcher serves fixed markup per URL and a 404 for anything else.
func pageFetcher(pages map[string]string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			html, ok := pages[url]
			if !ok {
				return "", &jobscan.FetchError{Kind: jobscan.HTTPStatus, StatusCode: 404}
			}
			return html, nil
		},
		CloseFn: func() error { return nil },
	}
}

func newDeps(fetcher jobscan.Fetcher) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:       context.Background(),
		Stdin:     strings.NewReader(""),
		Stdout:    stdout,
		Stderr:    stderr,
		Logger:    slog.New(slog.DiscardHandler),
		Fetcher:   fetcher,
		Extractor: goquery.NewExtractor(),
		Converter: htmltomarkdown.NewConverter(),
		Rules:     jobscan.DefaultRuleSet(),
	}, stdout, stderr
}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	for _, cmd := range []string{"check", "scan", "inspect", "history"} {
		assert.Contains(t, stdout.String(), cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("help shows kong output", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Usage:")
		assert.Contains(t, stdout.String(), "Flags:")
	})

	t.Run("no arguments returns error", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		err := m.Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
	})

	t.Run("check classifies a posting end to end", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = pageFetcher(map[string]string{"https://jobs.example.com/1": remotePosting})
		m.Language = &mock.LanguageDetector{DetectLanguageFn: func(string) string { return "en" }}
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"check", "jobs.example.com/1"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		out := stdout.String()
		assert.Contains(t, out, "https://jobs.example.com/1")
		assert.Contains(t, out, `found "DevOps Engineer"`)
		assert.Contains(t, out, "Remoto")
		assert.Contains(t, out, "LATAM")
		assert.Contains(t, out, "Language: en")
	})

	t.Run("scan reads URLs from stdin", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Stdin = strings.NewReader("# postings\nhttps://a.example/1\n\nhttps://b.example/2\n")
		m.Fetcher = pageFetcher(map[string]string{
			"https://a.example/1": remotePosting,
			"https://b.example/2": onsitePosting,
		})
		m.Language = &mock.LanguageDetector{DetectLanguageFn: func(string) string { return "" }}
		m.Limiter = &mock.HostLimiter{WaitFn: func(context.Context, string) error { return nil }}
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"scan", "-q", "--format", "json"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		var report struct {
			Verdicts []jobscan.PageVerdict `json:"verdicts"`
			Summary  jobscan.Summary       `json:"summary"`
		}
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &report))
		require.Len(t, report.Verdicts, 2)
		assert.Equal(t, "https://a.example/1", report.Verdicts[0].URL)
		assert.True(t, report.Verdicts[0].TitleFound)
		assert.Equal(t, []string{"DevOps"}, report.Verdicts[0].MatchedRoles)
		assert.False(t, report.Verdicts[1].TitleFound)
		assert.Equal(t, []string{jobscan.ModelOnSite}, report.Verdicts[1].MatchedModels)
		assert.Equal(t, 2, report.Summary.Total)
		assert.Equal(t, 1, report.Summary.TitleFound)
	})

	t.Run("scan archives when asked", func(t *testing.T) {
		t.Parallel()

		var archived *jobscan.Scan
		var archivedVerdicts []*jobscan.PageVerdict

		m := main.NewMain()
		m.Stdin = strings.NewReader("https://a.example/1\n")
		m.Fetcher = pageFetcher(map[string]string{"https://a.example/1": remotePosting})
		m.Language = &mock.LanguageDetector{DetectLanguageFn: func(string) string { return "" }}
		m.Limiter = &mock.HostLimiter{WaitFn: func(context.Context, string) error { return nil }}
		m.Scans = &mock.ScanService{
			CreateScanFn: func(_ context.Context, s *jobscan.Scan, v []*jobscan.PageVerdict) error {
				s.ID = "scan-1"
				archived = s
				archivedVerdicts = v
				return nil
			},
		}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"scan", "-q", "--archive", "--strict", "-r", "SRE"}, &bytes.Buffer{}, stderr)

		require.NoError(t, err)
		require.NotNil(t, archived)
		assert.Equal(t, jobscan.Strict, archived.Mode)
		assert.Equal(t, jobscan.MatchSubstring, archived.Strategy)
		assert.Equal(t, []string{"SRE"}, archived.Roles)
		assert.Len(t, archivedVerdicts, 1)
		assert.Contains(t, stderr.String(), "Archived scan scan-1")
	})

	t.Run("role flag keeps commas inside a role", func(t *testing.T) {
		t.Parallel()

		var archived *jobscan.Scan

		m := main.NewMain()
		m.Stdin = strings.NewReader("https://a.example/1\n")
		m.Fetcher = pageFetcher(map[string]string{"https://a.example/1": remotePosting})
		m.Language = &mock.LanguageDetector{DetectLanguageFn: func(string) string { return "" }}
		m.Limiter = &mock.HostLimiter{WaitFn: func(context.Context, string) error { return nil }}
		m.Scans = &mock.ScanService{
			CreateScanFn: func(_ context.Context, s *jobscan.Scan, _ []*jobscan.PageVerdict) error {
				s.ID = "scan-2"
				archived = s
				return nil
			},
		}

		err := m.Run(context.Background(), []string{"scan", "-q", "--archive", "-r", "Engineer, Platform", "-r", "SRE"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.NoError(t, err)
		require.NotNil(t, archived)
		assert.Equal(t, []string{"Engineer, Platform", "SRE"}, archived.Roles)
	})

	for _, timeout := range []string{"--timeout=0s", "--timeout=-1s"} {
		t.Run("rejects non-positive "+timeout, func(t *testing.T) {
			t.Parallel()

			m := main.NewMain()
			m.Fetcher = pageFetcher(nil)
			stderr := &bytes.Buffer{}

			err := m.Run(context.Background(), []string{timeout, "check", "https://a.example/1"}, &bytes.Buffer{}, stderr)

			require.Error(t, err)
			assert.Equal(t, jobscan.EINVALID, jobscan.ErrorCode(err))
			assert.Contains(t, stderr.String(), "timeout must be positive")
		})
	}

	t.Run("missing rules file is reported", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = pageFetcher(nil)
		stderr := &bytes.Buffer{}
		rules := filepath.Join(t.TempDir(), "missing.yaml")

		err := m.Run(context.Background(), []string{"--rules", rules, "check", "https://a.example/1"}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Equal(t, jobscan.ENOTFOUND, jobscan.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("rules file replaces the built-in roles", func(t *testing.T) {
		t.Parallel()

		rules := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(rules, []byte("roles:\n  - name: Backend\n    terms: [backend developer]\n"), 0o644))

		m := main.NewMain()
		m.Stdin = strings.NewReader("https://b.example/2\n")
		m.Fetcher = pageFetcher(map[string]string{"https://b.example/2": onsitePosting})
		m.Language = &mock.LanguageDetector{DetectLanguageFn: func(string) string { return "" }}
		m.Limiter = &mock.HostLimiter{WaitFn: func(context.Context, string) error { return nil }}
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--rules", rules, "scan", "-q", "-f", "csv"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "https://b.example/2,OK,200,true,Low,Backend,Presencial,false")
	})
}
