package githubapp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	shortSHALength     = 7
	commitMessageLimit = 80
)

// UserProfile is the subset of a GitHub user profile shown on the dashboard.
type UserProfile struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	AvatarURL   string `json:"avatar_url"`
	Bio         string `json:"bio"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
}

// Commit is a single commit summary from a repository, shaped for display:
// the SHA is truncated to seven characters and the message is reduced to its
// first line, capped at 80 characters.
type Commit struct {
	SHA     string    `json:"sha"`
	Message string    `json:"message"`
	Author  string    `json:"author"`
	Date    time.Time `json:"date"`
	URL     string    `json:"url"`
}

// Package is a single GHCR container package owned by the user.
type Package struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	Visibility string `json:"visibility"`
	CreatedAt  string `json:"created_at"`
}

// WorkflowRun is a single GitHub Actions run summary.
type WorkflowRun struct {
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	Conclusion string    `json:"conclusion"`
	Branch     string    `json:"branch"`
	CreatedAt  time.Time `json:"created_at"`
	HTMLURL    string    `json:"html_url"`
}

// Client issues authenticated read-only calls against the GitHub API.
type Client struct {
	auth       *Authenticator
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a GitHub API client backed by the authenticator.
func NewClient(auth *Authenticator) *Client {
	return &Client{
		auth:       auth,
		baseURL:    auth.baseURL,
		httpClient: auth.httpClient,
	}
}

// UserProfile fetches the profile of the given user.
func (c *Client) UserProfile(ctx context.Context, username string) (*UserProfile, error) {
	var profile UserProfile

	err := c.getJSON(ctx, fmt.Sprintf("/users/%s", username), &profile)
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

// RecentCommits fetches the most recent commits of a repository, newest first.
func (c *Client) RecentCommits(ctx context.Context, owner, repo string, limit int) ([]Commit, error) {
	var raw []struct {
		SHA    string `json:"sha"`
		Commit struct {
			Message string `json:"message"`
			Author  struct {
				Name string    `json:"name"`
				Date time.Time `json:"date"`
			} `json:"author"`
		} `json:"commit"`
		HTMLURL string `json:"html_url"`
	}

	path := fmt.Sprintf("/repos/%s/%s/commits?per_page=%d", owner, repo, limit)

	err := c.getJSON(ctx, path, &raw)
	if err != nil {
		return nil, err
	}

	commits := make([]Commit, 0, len(raw))
	for _, entry := range raw {
		commits = append(commits, Commit{
			SHA:     shortSHA(entry.SHA),
			Message: firstLine(entry.Commit.Message, commitMessageLimit),
			Author:  entry.Commit.Author.Name,
			Date:    entry.Commit.Author.Date,
			URL:     entry.HTMLURL,
		})
	}

	return commits, nil
}

// Packages fetches the user's GHCR container packages.
func (c *Client) Packages(ctx context.Context, username string, limit int) ([]Package, error) {
	var raw []struct {
		Name       string `json:"name"`
		HTMLURL    string `json:"html_url"`
		Visibility string `json:"visibility"`
		CreatedAt  string `json:"created_at"`
	}

	path := fmt.Sprintf("/users/%s/packages?package_type=container", username)

	err := c.getJSON(ctx, path, &raw)
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(raw) > limit {
		raw = raw[:limit]
	}

	packages := make([]Package, 0, len(raw))
	for _, entry := range raw {
		packages = append(packages, Package{
			Name:       entry.Name,
			URL:        entry.HTMLURL,
			Visibility: entry.Visibility,
			CreatedAt:  entry.CreatedAt,
		})
	}

	return packages, nil
}

// WorkflowRuns fetches the most recent GitHub Actions runs of a repository.
func (c *Client) WorkflowRuns(ctx context.Context, owner, repo string, limit int) ([]WorkflowRun, error) {
	var raw struct {
		WorkflowRuns []struct {
			Name       string    `json:"name"`
			Status     string    `json:"status"`
			Conclusion string    `json:"conclusion"`
			HeadBranch string    `json:"head_branch"`
			CreatedAt  time.Time `json:"created_at"`
			HTMLURL    string    `json:"html_url"`
		} `json:"workflow_runs"`
	}

	path := fmt.Sprintf("/repos/%s/%s/actions/runs?per_page=%d", owner, repo, limit)

	err := c.getJSON(ctx, path, &raw)
	if err != nil {
		return nil, err
	}

	runs := make([]WorkflowRun, 0, len(raw.WorkflowRuns))
	for _, entry := range raw.WorkflowRuns {
		runs = append(runs, WorkflowRun{
			Name:       entry.Name,
			Status:     entry.Status,
			Conclusion: entry.Conclusion,
			Branch:     entry.HeadBranch,
			CreatedAt:  entry.CreatedAt,
			HTMLURL:    entry.HTMLURL,
		})
	}

	return runs, nil
}

// --- internals ---

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	token, err := c.auth.Token(ctx)
	if err != nil {
		return err
	}

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if reqErr != nil {
		return fmt.Errorf("githubapp: failed to build request for %s: %w", path, reqErr)
	}

	req.Header.Set("Authorization", "token "+token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return fmt.Errorf("githubapp: request to %s failed: %w", path, doErr)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("githubapp: request to %s returned status %d", path, resp.StatusCode)
	}

	decodeErr := json.NewDecoder(resp.Body).Decode(out)
	if decodeErr != nil {
		return fmt.Errorf("githubapp: failed to decode response from %s: %w", path, decodeErr)
	}

	return nil
}

func shortSHA(sha string) string {
	if len(sha) > shortSHALength {
		return sha[:shortSHALength]
	}

	return sha
}

// firstLine reduces a commit message to its first line, capped at limit runes.
func firstLine(message string, limit int) string {
	line, _, _ := strings.Cut(message, "\n")
	if len(line) > limit {
		return line[:limit]
	}

	return line
}
