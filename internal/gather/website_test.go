package gather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>Acme - ship faster</title>
  <meta name="description" content="Acme helps you ship side projects faster.">
  <style>body { color: red; }</style>
</head>
<body>
  <h1>Ship faster with Acme</h1>
  <h2>Pricing</h2>
  <h2>FAQ</h2>
  <script>console.log("ignored")</script>
  <p>Acme is the fastest way to go from idea to launch.</p>
</body>
</html>`

func TestWebsiteSummarizesHTML(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	g := New("")
	got := g.Website(context.Background(), srv.URL)

	assert.Contains(t, got, "Title: Acme - ship faster")
	assert.Contains(t, got, "Description: Acme helps you ship side projects faster.")
	assert.Contains(t, got, "Primary headings: Ship faster with Acme")
	assert.Contains(t, got, "Pricing; FAQ")
	assert.Contains(t, got, "fastest way to go from idea to launch")
	assert.NotContains(t, got, "console.log")
	assert.NotContains(t, got, "color: red")
}

func TestWebsiteNonHTMLContentType(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"hello":"world"}`))
	}))
	defer srv.Close()

	g := New("")
	got := g.Website(context.Background(), srv.URL)

	assert.NotEmpty(t, got)
	assert.Contains(t, got, "non-HTML content")
}

func TestWebsiteNon2xxStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := New("")
	got := g.Website(context.Background(), srv.URL)

	assert.Contains(t, got, "HTTP 503")
}

func TestWebsiteUnreachable(t *testing.T) {
	t.Parallel()

	g := New("")
	got := g.Website(context.Background(), "http://127.0.0.1:1/nope")

	assert.NotEmpty(t, got)
	assert.Contains(t, got, "Website fetch failed")
}

func TestWebsiteMissingURL(t *testing.T) {
	t.Parallel()

	g := New("")
	assert.Equal(t, "No website URL provided.", g.Website(context.Background(), ""))
}

func TestSummaryCombinesBothSources(t *testing.T) {
	t.Parallel()

	g := New("")
	got := g.Summary(context.Background(), "", "")

	assert.Contains(t, got, "Website analysis:")
	assert.Contains(t, got, "No website URL provided.")
	assert.Contains(t, got, "Repository analysis:")
	assert.Contains(t, got, "No repository provided.")
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abc...", truncate("abcdef", 3))
}
