package forge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const comparePageSize = 100

// GitHub resolves releases, commit ranges and the default branch through the
// GitHub REST API.
type GitHub struct {
	logger     zerolog.Logger
	httpClient *http.Client
	baseURL    string
	repository string
	token      string
}

// NewGitHub creates a client for the given owner/name repository. The token
// may be empty for public repositories.
func NewGitHub(logger zerolog.Logger, baseURL, repository, token string) *GitHub {
	return &GitHub{
		logger:     logger,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		repository: repository,
		token:      token,
	}
}

func (g *GitHub) LatestReleaseTag(ctx context.Context) (string, error) {
	var release struct {
		TagName string `json:"tag_name"`
	}

	status, err := g.get(ctx, fmt.Sprintf("/repos/%s/releases/latest", g.repository), &release)
	if err != nil {
		return "", err
	}

	if status == http.StatusNotFound {
		return "", nil
	}

	return release.TagName, nil
}

func (g *GitHub) CompareCommits(ctx context.Context, base, head string) ([]Commit, error) {
	var commits []Commit

	for page := 1; ; page++ {
		var compare struct {
			TotalCommits int `json:"total_commits"`
			Commits      []struct {
				SHA    string `json:"sha"`
				Commit struct {
					Message string `json:"message"`
				} `json:"commit"`
			} `json:"commits"`
		}

		path := fmt.Sprintf("/repos/%s/compare/%s...%s?per_page=%d&page=%d",
			g.repository, base, head, comparePageSize, page)

		status, err := g.get(ctx, path, &compare)
		if err != nil {
			return nil, err
		}

		if status == http.StatusNotFound {
			// A 404 before any page answered means the range itself does not
			// resolve, not that we ran past the last page.
			if page == 1 {
				return nil, fmt.Errorf("%w: %s...%s", ErrUnresolvableRange, base, head)
			}

			break
		}

		g.logger.Debug().Int("page", page).Int("commits", len(compare.Commits)).Msg("fetched commit page")

		for _, commit := range compare.Commits {
			commits = append(commits, Commit{SHA: commit.SHA, Message: commit.Commit.Message})
		}

		if len(compare.Commits) == 0 || len(commits) >= compare.TotalCommits {
			break
		}
	}

	return commits, nil
}

func (g *GitHub) DefaultBranch(ctx context.Context) (string, error) {
	var repo struct {
		DefaultBranch string `json:"default_branch"`
	}

	status, err := g.get(ctx, "/repos/"+g.repository, &repo)
	if err != nil {
		return "", err
	}

	if status == http.StatusNotFound {
		return "", fmt.Errorf("repository %s not found", g.repository)
	}

	return repo.DefaultBranch, nil
}

// get performs one API round-trip and decodes the body into out. A 404 is
// reported through the status return, any other non-2xx status is an error.
func (g *GitHub) get(ctx context.Context, path string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")

	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return resp.StatusCode, nil
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp.StatusCode, fmt.Errorf("request %s returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode response of %s: %w", path, err)
	}

	return resp.StatusCode, nil
}
