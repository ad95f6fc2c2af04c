package goquery_test

import (
	"testing"

	"github.com/fwojciec/jobscan"
	"github.com/fwojciec/jobscan/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title, headings and text", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Senior DevOps Engineer</title></head>
<body>
<h1>Senior DevOps Engineer</h1>
<h2>About the role</h2>
<h3>Benefits</h3>
<p>This is a fully remote role.</p>
</body>
</html>`

		page, err := goquery.NewExtractor().Extract(html, jobscan.SanitizeBasic)

		require.NoError(t, err)
		assert.Equal(t, "Senior DevOps Engineer", page.Title)
		assert.Equal(t, []string{"Senior DevOps Engineer", "About the role"}, page.Headings)
		assert.Contains(t, page.Text, "fully remote role")
		assert.Contains(t, page.ContentHTML, "<p>This is a fully remote role.</p>")
	})

	t.Run("removes script and style content", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><style>.remote { color: red }</style></head>
<body><script>var hybrid = true;</script><p>Job description</p></body></html>`

		page, err := goquery.NewExtractor().Extract(html, jobscan.SanitizeBasic)

		require.NoError(t, err)
		assert.NotContains(t, page.Text, "remote")
		assert.NotContains(t, page.Text, "hybrid")
		assert.Contains(t, page.Text, "Job description")
	})

	t.Run("keeps footer text at basic level", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Job</p><footer>Other openings: SRE</footer></body></html>`

		page, err := goquery.NewExtractor().Extract(html, jobscan.SanitizeBasic)

		require.NoError(t, err)
		assert.Contains(t, page.Text, "SRE")
	})

	t.Run("removes nav, footer, aside and noscript at strict level", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<nav><a href="/a">Cloud Engineer</a></nav>
<main><p>Job</p></main>
<aside>Hybrid teams</aside>
<noscript>Enable JavaScript</noscript>
<footer>Other openings: SRE</footer>
</body></html>`

		page, err := goquery.NewExtractor().Extract(html, jobscan.SanitizeStrict)

		require.NoError(t, err)
		assert.NotContains(t, page.Text, "Cloud Engineer")
		assert.NotContains(t, page.Text, "Hybrid")
		assert.NotContains(t, page.Text, "JavaScript")
		assert.NotContains(t, page.Text, "SRE")
		assert.Contains(t, page.Text, "Job")
	})

	t.Run("separates adjacent block elements", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><ul><li>Remote</li><li>Hybrid</li></ul></body></html>`

		page, err := goquery.NewExtractor().Extract(html, jobscan.SanitizeBasic)

		require.NoError(t, err)
		assert.NotContains(t, page.Text, "RemoteHybrid")
		assert.Contains(t, page.Text, "Remote")
		assert.Contains(t, page.Text, "Hybrid")
	})

	t.Run("keeps inline elements joined", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Dev<b>Ops</b> Engineer</p></body></html>`

		page, err := goquery.NewExtractor().Extract(html, jobscan.SanitizeBasic)

		require.NoError(t, err)
		assert.Contains(t, page.Text, "DevOps Engineer")
	})

	t.Run("skips comments", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><!-- remote --><p>Office</p></body></html>`

		page, err := goquery.NewExtractor().Extract(html, jobscan.SanitizeBasic)

		require.NoError(t, err)
		assert.NotContains(t, page.Text, "remote")
	})

	t.Run("returns parse failure for empty markup", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewExtractor().Extract("  \n ", jobscan.SanitizeBasic)

		require.Error(t, err)
		fe, ok := jobscan.FetchErrorOf(err)
		require.True(t, ok)
		assert.Equal(t, jobscan.ParseFailure, fe.Kind)
	})

	t.Run("returns parse failure when nothing visible remains", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewExtractor().Extract(`<html><body><script>x()</script></body></html>`, jobscan.SanitizeBasic)

		fe, ok := jobscan.FetchErrorOf(err)
		require.True(t, ok)
		assert.Equal(t, jobscan.ParseFailure, fe.Kind)
	})

	t.Run("detects board before strict sanitizing", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><h1>SRE</h1><footer><script src="https://boards.greenhouse.io/embed/job_board/js"></script></footer></body></html>`

		page, err := goquery.NewExtractor().Extract(html, jobscan.SanitizeStrict)

		require.NoError(t, err)
		assert.Equal(t, jobscan.BoardGreenhouse, page.Board)
	})
}
