package forge_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jkroepke/semver-action/pkg/forge"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *forge.GitHub {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return forge.NewGitHub(zerolog.Nop(), server.URL, "acme/widget", "secret")
}

func TestLatestReleaseTag(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widget/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"tag_name": "v1.2.3"}`)
	})

	tag, err := newTestClient(t, mux).LatestReleaseTag(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", tag)
}

func TestLatestReleaseTagNoReleases(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widget/releases/latest", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	})

	tag, err := newTestClient(t, mux).LatestReleaseTag(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", tag)
}

func TestCompareCommitsPagination(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widget/compare/v1.0.0...main", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, `{
				"total_commits": 3,
				"commits": [
					{"sha": "aaa", "commit": {"message": "feat: one"}},
					{"sha": "bbb", "commit": {"message": "fix: two"}}
				]
			}`)
		case "2":
			fmt.Fprint(w, `{
				"total_commits": 3,
				"commits": [
					{"sha": "ccc", "commit": {"message": "fix: three"}}
				]
			}`)
		default:
			http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
		}
	})

	commits, err := newTestClient(t, mux).CompareCommits(context.Background(), "v1.0.0", "main")
	require.NoError(t, err)

	assert.Equal(t, []forge.Commit{
		{SHA: "aaa", Message: "feat: one"},
		{SHA: "bbb", Message: "fix: two"},
		{SHA: "ccc", Message: "fix: three"},
	}, commits)
}

func TestCompareCommitsUnknownRange(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widget/compare/", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	})

	_, err := newTestClient(t, mux).CompareCommits(context.Background(), "v1.0.0", "gone")
	require.ErrorIs(t, err, forge.ErrUnresolvableRange)
	assert.Contains(t, err.Error(), "v1.0.0...gone")
}

func TestCompareCommitsServerError(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widget/compare/", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message": "boom"}`, http.StatusInternalServerError)
	})

	_, err := newTestClient(t, mux).CompareCommits(context.Background(), "v1.0.0", "main")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestDefaultBranch(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widget", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"default_branch": "main"}`)
	})

	branch, err := newTestClient(t, mux).DefaultBranch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
}
