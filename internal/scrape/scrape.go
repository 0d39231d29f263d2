// Package scrape reads page metadata used to pre-fill a link submission.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// maxBody bounds how much of a page is read.
const maxBody = 1 << 20

type Metadata struct {
	Title       string
	Description string
}

type Fetcher struct {
	Client  *http.Client
	Timeout time.Duration
}

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{Client: &http.Client{}, Timeout: timeout}
}

// Fetch downloads rawURL and extracts its title and description.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Metadata, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot build request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot fetch: unexpected status %s", resp.Status)
	}
	return Parse(io.LimitReader(resp.Body, maxBody))
}

// Parse extracts metadata from an HTML document. The <title> element wins
// over og:title; the description meta tag wins over og:description.
func Parse(r io.Reader) (*Metadata, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("cannot parse response: %w", err)
	}

	var title, ogTitle, desc, ogDesc string
	for n := range doc.Descendants() {
		if n.Type != html.ElementNode {
			continue
		}
		switch n.DataAtom {
		case atom.Title:
			if title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = n.FirstChild.Data
			}
		case atom.Meta:
			content := attr(n, "content")
			switch strings.ToLower(coalesce(attr(n, "name"), attr(n, "property"))) {
			case "description":
				desc = coalesce(desc, content)
			case "og:description":
				ogDesc = coalesce(ogDesc, content)
			case "og:title":
				ogTitle = coalesce(ogTitle, content)
			}
		}
	}

	return &Metadata{
		Title:       clean(coalesce(title, ogTitle)),
		Description: clean(coalesce(desc, ogDesc)),
	}, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func coalesce(input ...string) string {
	for _, s := range input {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
