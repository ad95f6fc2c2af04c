package classify_test

import (
	"testing"

	"github.com/fwojciec/jobscan"
	"github.com/fwojciec/jobscan/classify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatcher_Substring(t *testing.T) {
	t.Parallel()

	m, err := classify.NewMatcher(jobscan.MatchSubstring, []string{"Remote", "remoto"})
	require.NoError(t, err)

	assert.True(t, m.Match("this is a fully remote role"))
	assert.True(t, m.Match("trabalho remoto"))
	assert.False(t, m.Match("office based"))

	t.Run("matches inside longer words", func(t *testing.T) {
		t.Parallel()

		m, err := classify.NewMatcher(jobscan.MatchSubstring, []string{"sre"})
		require.NoError(t, err)
		assert.True(t, m.Match("pressreleases"))
	})

	t.Run("term is normalized like the text", func(t *testing.T) {
		t.Parallel()

		m, err := classify.NewMatcher(jobscan.MatchSubstring, []string{"  Latin   America "})
		require.NoError(t, err)
		assert.True(t, m.Match(classify.Normalize("covering LATIN\nAMERICA")))
	})

	t.Run("ignores blank terms", func(t *testing.T) {
		t.Parallel()

		m, err := classify.NewMatcher(jobscan.MatchSubstring, []string{"", "  "})
		require.NoError(t, err)
		assert.False(t, m.Match("anything"))
	})
}

func TestNewMatcher_Word(t *testing.T) {
	t.Parallel()

	m, err := classify.NewMatcher(jobscan.MatchWord, []string{"sre"})
	require.NoError(t, err)

	assert.True(t, m.Match("sre"))
	assert.True(t, m.Match("senior sre, platform"))
	assert.True(t, m.Match("devops/sre"))
	assert.False(t, m.Match("pressreleases"))
	assert.False(t, m.Match("sres"))

	t.Run("finds a later bounded occurrence", func(t *testing.T) {
		t.Parallel()

		assert.True(t, m.Match("pressreleases and sre roles"))
	})

	t.Run("treats accented letters as word characters", func(t *testing.T) {
		t.Parallel()

		m, err := classify.NewMatcher(jobscan.MatchWord, []string{"remot"})
		require.NoError(t, err)
		assert.False(t, m.Match("remotó"))
	})

	t.Run("multi-word terms", func(t *testing.T) {
		t.Parallel()

		m, err := classify.NewMatcher(jobscan.MatchWord, []string{"América Latina"})
		require.NoError(t, err)
		assert.True(t, m.Match("vagas na américa latina."))
	})
}

func TestNewMatcher_Regex(t *testing.T) {
	t.Parallel()

	m, err := classify.NewMatcher(jobscan.MatchRegex, []string{`\bsre\b`, `on-?site`})
	require.NoError(t, err)

	assert.True(t, m.Match("senior sre"))
	assert.True(t, m.Match("onsite only"))
	assert.True(t, m.Match("ON-SITE"))
	assert.False(t, m.Match("pressreleases"))

	t.Run("rejects invalid patterns", func(t *testing.T) {
		t.Parallel()

		_, err := classify.NewMatcher(jobscan.MatchRegex, []string{"("})
		assert.Equal(t, jobscan.EINVALID, jobscan.ErrorCode(err))
	})
}

func TestNewMatcher_UnknownStrategy(t *testing.T) {
	t.Parallel()

	_, err := classify.NewMatcher("fuzzy", []string{"x"})
	assert.Equal(t, jobscan.EINVALID, jobscan.ErrorCode(err))
}
