// Package catalog discovers the set of grammar repositories to build.
//
// A Source yields a deduplicated set of catalog entries. The pipeline
// consumes the set as opaque input; any source failure is fatal to the
// whole run before a single job is dispatched.
package catalog

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/justapithecus/grove/iox"
	"github.com/justapithecus/grove/types"
)

// DefaultURL is the catalog page scraped when no URL is configured.
const DefaultURL = "https://github.com/tree-sitter/tree-sitter/wiki/List-of-parsers"

// Source yields the deduplicated entry set for one run.
type Source interface {
	// Entries returns the catalog entries, sorted by name, with no
	// duplicate names. An error here aborts the run.
	Entries(ctx context.Context) ([]types.CatalogEntry, error)
}

// HTTPSource scrapes a catalog page listing grammar repositories as
// anchors inside list items. The anchor text is the grammar name and the
// href its source locator.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates a source scraping the given catalog page URL.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{url: url, client: http.DefaultClient}
}

// NewHTTPSourceWithClient creates a source using a caller-supplied client.
func NewHTTPSourceWithClient(url string, client *http.Client) *HTTPSource {
	return &HTTPSource{url: url, client: client}
}

// Entries fetches and parses the catalog page.
func (s *HTTPSource) Entries(ctx context.Context) ([]types.CatalogEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog URL %q: %w", s.url, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog fetch failed: %w", err)
	}
	defer iox.DiscardClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog fetch failed: %s returned %s", s.url, resp.Status)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("catalog page parse failed: %w", err)
	}

	entries := scrapeEntries(doc)
	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog page %s lists no grammars", s.url)
	}
	return entries, nil
}

// scrapeEntries collects the first anchor of each list item under the
// page's rendered content, skipping surrounding page chrome (navigation
// and footer link lists). Duplicate names keep the first occurrence; the
// result is sorted by name so a run's dispatch set is deterministic.
func scrapeEntries(doc *html.Node) []types.CatalogEntry {
	seen := make(map[string]struct{})
	var entries []types.CatalogEntry

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "li" {
			if entry, ok := entryFromItem(n); ok {
				if _, dup := seen[entry.Name]; !dup {
					seen[entry.Name] = struct{}{}
					entries = append(entries, entry)
				}
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(contentRoot(doc))

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// contentRoot returns the element holding the rendered wiki content: the
// first node carrying the markdown-body class, falling back to <body>
// and then the document itself.
func contentRoot(doc *html.Node) *html.Node {
	if n := findElement(doc, func(n *html.Node) bool { return hasClass(n, "markdown-body") }); n != nil {
		return n
	}
	if n := findElement(doc, func(n *html.Node) bool { return n.Data == "body" }); n != nil {
		return n
	}
	return doc
}

// findElement returns the first element node matching the predicate in
// depth-first document order.
func findElement(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, match); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	for _, f := range strings.Fields(attr(n, "class")) {
		if f == class {
			return true
		}
	}
	return false
}

// entryFromItem extracts (anchor text, href) from the first anchor under
// a list item node.
func entryFromItem(li *html.Node) (types.CatalogEntry, bool) {
	var anchor *html.Node
	var find func(n *html.Node)
	find = func(n *html.Node) {
		if anchor != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "a" {
			anchor = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		find(c)
	}
	if anchor == nil {
		return types.CatalogEntry{}, false
	}

	name := strings.TrimSpace(anchorText(anchor))
	href := attr(anchor, "href")
	if name == "" || href == "" {
		return types.CatalogEntry{}, false
	}
	return types.CatalogEntry{Name: name, SourceLocator: href}, true
}

func anchorText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// Filter returns the entries whose names appear in allow. An empty
// allow-list selects every entry. Order is preserved.
func Filter(entries []types.CatalogEntry, allow []string) []types.CatalogEntry {
	if len(allow) == 0 {
		return entries
	}
	names := make(map[string]struct{}, len(allow))
	for _, n := range allow {
		names[n] = struct{}{}
	}
	filtered := make([]types.CatalogEntry, 0, len(allow))
	for _, e := range entries {
		if _, ok := names[e.Name]; ok {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
