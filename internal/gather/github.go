package gather

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v58/github"
	"golang.org/x/oauth2"
)

const maxReadmeText = 2000

// Repo fetches repository metadata and README for an "owner/repo"
// reference (GitHub URLs are accepted too) and returns a bounded textual
// summary. Failures degrade to diagnostic strings; a missing README is
// non-fatal.
func (g *Gatherer) Repo(ctx context.Context, repoRef string) string {
	if repoRef == "" {
		return "No repository provided."
	}

	if g.githubToken == "" {
		return "Repository analysis unavailable: no GitHub token configured."
	}

	owner, repo, err := splitRepoRef(repoRef)
	if err != nil {
		return fmt.Sprintf("Repository analysis unavailable: %v.", err)
	}

	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: g.githubToken})
	client := github.NewClient(oauth2.NewClient(ctx, ts))
	if g.githubBaseURL != "" {
		base, err := url.Parse(g.githubBaseURL)
		if err != nil {
			return fmt.Sprintf("Repository analysis unavailable: bad API base URL (%v).", err)
		}
		client.BaseURL = base
	}

	repository, _, err := client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return fmt.Sprintf("Repository metadata fetch failed: %v.", err)
	}

	readmeText := "README not available."
	if readme, _, err := client.Repositories.GetReadme(ctx, owner, repo, nil); err == nil {
		if content, err := readme.GetContent(); err == nil {
			readmeText = truncate(strings.TrimSpace(content), maxReadmeText)
		}
	}

	var sb strings.Builder
	sb.WriteString("Name: " + repository.GetFullName() + "\n")
	sb.WriteString("Description: " + orNone(repository.GetDescription()) + "\n")
	sb.WriteString("Primary language: " + orNone(repository.GetLanguage()) + "\n")
	sb.WriteString("Topics: " + orNone(strings.Join(repository.Topics, ", ")) + "\n")
	sb.WriteString("README: " + readmeText)
	return sb.String()
}

// splitRepoRef parses "owner/repo", optionally given as a full GitHub URL
func splitRepoRef(ref string) (owner, repo string, err error) {
	ref = strings.TrimSuffix(strings.TrimSpace(ref), ".git")
	ref = strings.TrimPrefix(ref, "https://github.com/")
	ref = strings.TrimPrefix(ref, "http://github.com/")
	ref = strings.TrimPrefix(ref, "github.com/")
	ref = strings.Trim(ref, "/")

	parts := strings.Split(ref, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repository reference %q is not owner/repo", ref)
	}
	return parts[0], parts[1], nil
}
