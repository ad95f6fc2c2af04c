package jobscan_test

import (
	"testing"

	"github.com/fwojciec/jobscan"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	verdicts := []*jobscan.PageVerdict{
		{Readable: true, TitleFound: true, MatchedRoles: []string{"DevOps"}, MatchedModels: []string{jobscan.ModelRemote}, IsLatam: true},
		{Readable: true, MatchedModels: []string{jobscan.ModelRemote, jobscan.ModelHybrid}},
		{Readable: false, Status: jobscan.StatusHTTPError, StatusCode: 404},
	}

	s := jobscan.Summarize(verdicts)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Readable)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 1, s.TitleFound)
	assert.Equal(t, 1, s.Latam)
	assert.Equal(t, 2, s.Models[jobscan.ModelRemote])
	assert.Equal(t, 1, s.Models[jobscan.ModelHybrid])
	assert.Equal(t, 1, s.Roles["DevOps"])
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()

	s := jobscan.Summarize(nil)
	assert.Zero(t, s.Total)
	assert.Empty(t, s.Models)
}
