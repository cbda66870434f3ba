// Package gather collects best-effort context about a project from its
// website and GitHub repository. Every lookup returns a string: on any
// failure the string is a short diagnostic instead of an error, so the
// generation pipeline can always proceed with whatever context it has.
package gather

import (
	"context"
	"net/http"
	"strings"
	"time"
)

const (
	websiteTimeout = 10 * time.Second
	repoTimeout    = 30 * time.Second
)

// Gatherer fetches and summarizes external signals for a project
type Gatherer struct {
	httpClient  *http.Client
	githubToken string

	// Overridable in tests
	githubBaseURL string
}

// New creates a gatherer. githubToken may be empty, in which case
// repository analysis degrades to a diagnostic message.
func New(githubToken string) *Gatherer {
	return &Gatherer{
		httpClient:  &http.Client{Timeout: websiteTimeout},
		githubToken: githubToken,
	}
}

// Summary gathers website and repository context concurrently and joins
// the two sections. A failure in one source never aborts the other.
func (g *Gatherer) Summary(ctx context.Context, websiteURL, repoRef string) string {
	websiteCh := make(chan string, 1)
	repoCh := make(chan string, 1)

	go func() {
		websiteCh <- g.Website(ctx, websiteURL)
	}()
	go func() {
		repoCh <- g.Repo(ctx, repoRef)
	}()

	var sb strings.Builder
	sb.WriteString("Website analysis:\n")
	sb.WriteString(<-websiteCh)
	sb.WriteString("\n\nRepository analysis:\n")
	sb.WriteString(<-repoCh)
	return sb.String()
}

// truncate cuts s to at most n runes, appending an ellipsis marker
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
