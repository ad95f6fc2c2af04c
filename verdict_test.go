package jobscan_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/jobscan"
	"github.com/fwojciec/jobscan/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailedVerdict(t *testing.T) {
	t.Parallel()

	t.Run("reports HTTP status", func(t *testing.T) {
		t.Parallel()

		v := jobscan.FailedVerdict("https://example.com", &jobscan.FetchError{Kind: jobscan.HTTPStatus, StatusCode: 404})

		assert.False(t, v.Readable)
		assert.Equal(t, jobscan.StatusHTTPError, v.Status)
		assert.Equal(t, "HTTP 404", v.StatusLabel())
		assert.Equal(t, "HTTP 404", v.Note)
		assert.Empty(t, v.MatchedModels)
		assert.Equal(t, jobscan.ConfidenceNotFound, v.Confidence)
	})

	t.Run("reports connection failure", func(t *testing.T) {
		t.Parallel()

		v := jobscan.FailedVerdict("https://example.com", &jobscan.FetchError{Kind: jobscan.ConnectionFailure, Err: errors.New("refused")})

		assert.Equal(t, jobscan.StatusConnectionError, v.Status)
		assert.Contains(t, v.Note, "refused")
	})

	t.Run("reports invalid URL", func(t *testing.T) {
		t.Parallel()

		v := jobscan.FailedVerdict("ftp://x", jobscan.ValidateURL("ftp://x"))

		assert.Equal(t, jobscan.StatusInvalidURL, v.Status)
		assert.Contains(t, v.Note, "ftp")
	})

	t.Run("treats unknown errors as connection failures", func(t *testing.T) {
		t.Parallel()

		v := jobscan.FailedVerdict("https://example.com", errors.New("boom"))
		assert.Equal(t, jobscan.StatusConnectionError, v.Status)
	})
}

func TestPageVerdict_Labels(t *testing.T) {
	t.Parallel()

	v := &jobscan.PageVerdict{}
	assert.Equal(t, "Not specified", v.ModelsLabel())
	assert.Equal(t, "-", v.RolesLabel())

	v = &jobscan.PageVerdict{
		MatchedModels: []string{jobscan.ModelRemote, jobscan.ModelHybrid},
		MatchedRoles:  []string{"DevOps", "SRE"},
		Status:        jobscan.StatusOK,
	}
	assert.Equal(t, "Remoto, Híbrido", v.ModelsLabel())
	assert.Equal(t, "DevOps, SRE", v.RolesLabel())
	assert.Equal(t, "OK", v.StatusLabel())
}

func TestFetchPage(t *testing.T) {
	t.Parallel()

	t.Run("returns body on success", func(t *testing.T) {
		t.Parallel()

		f := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<html></html>", nil
			},
		}

		r := jobscan.FetchPage(context.Background(), f, "https://example.com")

		assert.True(t, r.OK())
		assert.Equal(t, 200, r.StatusCode)
		assert.Equal(t, "<html></html>", r.Body)
	})

	t.Run("keeps typed fetch errors", func(t *testing.T) {
		t.Parallel()

		f := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", &jobscan.FetchError{Kind: jobscan.HTTPStatus, StatusCode: 503}
			},
		}

		r := jobscan.FetchPage(context.Background(), f, "https://example.com")

		require.False(t, r.OK())
		assert.Equal(t, jobscan.HTTPStatus, r.Err.Kind)
		assert.Equal(t, 503, r.StatusCode)
		assert.Empty(t, r.Body)
	})

	t.Run("folds plain errors into connection failures", func(t *testing.T) {
		t.Parallel()

		f := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", errors.New("dial tcp: refused")
			},
		}

		r := jobscan.FetchPage(context.Background(), f, "https://example.com")

		require.False(t, r.OK())
		assert.Equal(t, jobscan.ConnectionFailure, r.Err.Kind)
		assert.Zero(t, r.StatusCode)
	})
}
