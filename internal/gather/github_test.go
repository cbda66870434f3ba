package gather

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fakeGitHub(t *testing.T, withReadme bool) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/acme", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"full_name": "acme/acme",
			"description": "A launch tool",
			"language": "Go",
			"topics": ["launch", "saas"]
		}`)
	})
	mux.HandleFunc("/repos/acme/acme/readme", func(w http.ResponseWriter, r *http.Request) {
		if !withReadme {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		content := base64.StdEncoding.EncodeToString([]byte("# Acme\n\nShip faster."))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"type": "file", "encoding": "base64", "content": %q}`, content)
	})

	return httptest.NewServer(mux)
}

func TestRepoSummarizesMetadataAndReadme(t *testing.T) {
	t.Parallel()

	srv := fakeGitHub(t, true)
	defer srv.Close()

	g := New("test-token")
	g.githubBaseURL = srv.URL + "/"

	got := g.Repo(context.Background(), "acme/acme")

	assert.Contains(t, got, "Name: acme/acme")
	assert.Contains(t, got, "Description: A launch tool")
	assert.Contains(t, got, "Primary language: Go")
	assert.Contains(t, got, "Topics: launch, saas")
	assert.Contains(t, got, "Ship faster.")
}

func TestRepoMissingReadmeIsNonFatal(t *testing.T) {
	t.Parallel()

	srv := fakeGitHub(t, false)
	defer srv.Close()

	g := New("test-token")
	g.githubBaseURL = srv.URL + "/"

	got := g.Repo(context.Background(), "acme/acme")

	assert.Contains(t, got, "Name: acme/acme")
	assert.Contains(t, got, "README: README not available.")
}

func TestRepoWithoutToken(t *testing.T) {
	t.Parallel()

	g := New("")
	got := g.Repo(context.Background(), "acme/acme")

	assert.Contains(t, got, "no GitHub token configured")
}

func TestRepoBadReference(t *testing.T) {
	t.Parallel()

	g := New("test-token")
	got := g.Repo(context.Background(), "not-a-repo")

	assert.Contains(t, got, "Repository analysis unavailable")
}

func TestRepoMetadataFetchFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	g := New("test-token")
	g.githubBaseURL = srv.URL + "/"

	got := g.Repo(context.Background(), "acme/acme")

	assert.Contains(t, got, "Repository metadata fetch failed")
}

func TestSplitRepoRef(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in    string
		owner string
		repo  string
		ok    bool
	}{
		{"acme/acme", "acme", "acme", true},
		{"https://github.com/acme/widget", "acme", "widget", true},
		{"github.com/acme/widget.git", "acme", "widget", true},
		{"acme", "", "", false},
		{"a/b/c", "", "", false},
		{"", "", "", false},
	}

	for _, tc := range cases {
		owner, repo, err := splitRepoRef(tc.in)
		if tc.ok {
			assert.NoError(t, err, tc.in)
			assert.Equal(t, tc.owner, owner, tc.in)
			assert.Equal(t, tc.repo, repo, tc.in)
		} else {
			assert.Error(t, err, tc.in)
		}
	}
}
