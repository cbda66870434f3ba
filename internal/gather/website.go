package gather

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/net/html"
)

const maxBodyText = 1500

// Website fetches the project's website and returns a bounded textual
// summary: title, meta description, headings, and truncated body text.
// Any failure is reported inline as a diagnostic string, never an error.
func (g *Gatherer) Website(ctx context.Context, url string) string {
	if url == "" {
		return "No website URL provided."
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Sprintf("Website fetch failed: invalid URL (%v).", err)
	}
	req.Header.Set("User-Agent", "vibecockpit/1.0")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Sprintf("Website fetch failed: %v.", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Sprintf("Website fetch failed: HTTP %d.", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "text/html") {
		return fmt.Sprintf("Website returned non-HTML content (%s); not analyzed.", contentType)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return fmt.Sprintf("Website HTML could not be parsed: %v.", err)
	}

	page := extractPage(doc)

	var sb strings.Builder
	sb.WriteString("Title: " + orNone(page.title) + "\n")
	sb.WriteString("Description: " + orNone(page.metaDescription) + "\n")
	sb.WriteString("Primary headings: " + orNone(strings.Join(page.h1s, "; ")) + "\n")
	sb.WriteString("Secondary headings: " + orNone(strings.Join(page.h2s, "; ")) + "\n")
	sb.WriteString("Body text: " + orNone(truncate(page.bodyText, maxBodyText)))
	return sb.String()
}

type pageContent struct {
	title           string
	metaDescription string
	h1s             []string
	h2s             []string
	bodyText        string
}

// extractPage walks the parsed HTML tree collecting the pieces the
// summary needs. Script and style text is skipped.
func extractPage(doc *html.Node) pageContent {
	var page pageContent
	var body strings.Builder

	var walk func(n *html.Node, inBody bool)
	walk = func(n *html.Node, inBody bool) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			case "title":
				page.title = strings.TrimSpace(textContent(n))
				return
			case "meta":
				if attr(n, "name") == "description" {
					page.metaDescription = strings.TrimSpace(attr(n, "content"))
				}
			case "h1":
				if h := strings.TrimSpace(textContent(n)); h != "" {
					page.h1s = append(page.h1s, h)
				}
			case "h2":
				if h := strings.TrimSpace(textContent(n)); h != "" {
					page.h2s = append(page.h2s, h)
				}
			case "body":
				inBody = true
			}
		}

		if n.Type == html.TextNode && inBody {
			if t := strings.TrimSpace(n.Data); t != "" {
				body.WriteString(t)
				body.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inBody)
		}
	}
	walk(doc, false)

	page.bodyText = strings.TrimSpace(body.String())
	return page
}

// textContent concatenates all text nodes under n
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// attr returns the value of the named attribute on n, or ""
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
