package yaml_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/fwojciec/jobscan"
	jsyaml "github.com/fwojciec/jobscan/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReport(t *testing.T) {
	t.Parallel()

	verdicts := []*jobscan.PageVerdict{
		{
			URL:           "https://example.com/jobs/1",
			Readable:      true,
			Status:        jobscan.StatusOK,
			TitleFound:    true,
			Confidence:    jobscan.ConfidenceLow,
			MatchedRoles:  []string{"DevOps"},
			MatchedModels: []string{jobscan.ModelRemote},
			IsLatam:       true,
			Duration:      1500 * time.Millisecond,
		},
	}
	summary := jobscan.Summarize(verdicts)

	var buf bytes.Buffer
	err := jsyaml.WriteReport(&buf, verdicts, &summary)

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "url: https://example.com/jobs/1")
	assert.Contains(t, out, "matched_roles:")
	assert.Contains(t, out, "- DevOps")
	assert.Contains(t, out, "is_latam: true")
	assert.Contains(t, out, "duration: 1.5s")
	assert.Contains(t, out, "summary:")
	assert.Contains(t, out, "total: 1")
}
