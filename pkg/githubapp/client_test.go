package githubapp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/githubapp"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *githubapp.Client {
	t.Helper()

	bundle, _ := testBundle(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/app/installations/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token":      "ghs_testtoken",
			"expires_at": time.Now().Add(time.Hour).Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/", handler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	auth, err := githubapp.NewAuthenticator(githubapp.Config{
		Bundle:  bundle,
		BaseURL: server.URL,
	})
	require.NoError(t, err)

	return githubapp.NewClient(auth)
}

func TestUserProfileSendsInstallationToken(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat", r.URL.Path)
		assert.Equal(t, "token ghs_testtoken", r.Header.Get("Authorization"))
		assert.Equal(t, "2022-11-28", r.Header.Get("X-GitHub-Api-Version"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"login":        "octocat",
			"name":         "The Octocat",
			"public_repos": 8,
		})
	})

	profile, err := client.UserProfile(context.Background(), "octocat")

	require.NoError(t, err)
	assert.Equal(t, "octocat", profile.Login)
	assert.Equal(t, 8, profile.PublicRepos)
}

func TestRecentCommitsFlattensNestedPayload(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octocat/demo/commits", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("per_page"))

		_ = json.NewEncoder(w).Encode([]map[string]any{
			{
				"sha": "abc1234def5678",
				"commit": map[string]any{
					"message": "initial commit\n\nlonger body that must not appear",
					"author": map[string]any{
						"name": "octocat",
						"date": time.Now().Format(time.RFC3339),
					},
				},
				"html_url": "https://github.com/octocat/demo/commit/abc1234def5678",
			},
		})
	})

	commits, err := client.RecentCommits(context.Background(), "octocat", "demo", 5)

	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, "abc1234", commits[0].SHA)
	assert.Equal(t, "initial commit", commits[0].Message)
	assert.Equal(t, "octocat", commits[0].Author)
	assert.Equal(t, "https://github.com/octocat/demo/commit/abc1234def5678", commits[0].URL)
}

func TestRecentCommitsCapsMessageLength(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 200)

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{
				"sha": "abc1234def5678",
				"commit": map[string]any{
					"message": long,
					"author":  map[string]any{"name": "octocat"},
				},
			},
		})
	})

	commits, err := client.RecentCommits(context.Background(), "octocat", "demo", 5)

	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Len(t, commits[0].Message, 80)
}

func TestPackagesMapsContainerPackages(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat/packages", r.URL.Path)
		assert.Equal(t, "container", r.URL.Query().Get("package_type"))

		_ = json.NewEncoder(w).Encode([]map[string]any{
			{
				"name":       "portfolio",
				"html_url":   "https://github.com/users/octocat/packages/container/portfolio",
				"visibility": "public",
				"created_at": "2024-01-01T00:00:00Z",
			},
			{"name": "demo"},
		})
	})

	packages, err := client.Packages(context.Background(), "octocat", 1)

	require.NoError(t, err)
	require.Len(t, packages, 1)
	assert.Equal(t, "portfolio", packages[0].Name)
	assert.Equal(t, "https://github.com/users/octocat/packages/container/portfolio", packages[0].URL)
	assert.Equal(t, "public", packages[0].Visibility)
}

func TestWorkflowRunsUnwrapsRunList(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octocat/demo/actions/runs", r.URL.Path)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"workflow_runs": []map[string]any{
				{
					"name":        "ci",
					"status":      "completed",
					"conclusion":  "success",
					"head_branch": "main",
				},
			},
		})
	})

	runs, err := client.WorkflowRuns(context.Background(), "octocat", "demo", 5)

	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "ci", runs[0].Name)
	assert.Equal(t, "success", runs[0].Conclusion)
	assert.Equal(t, "main", runs[0].Branch)
}

func TestClientSurfacesNonOKStatus(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.UserProfile(context.Background(), "ghost")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}
