// Package clip attaches web pages to schedule blocks as resource links by
// fetching the page and using its title as the link label.
package clip

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"teacherdash/internal/schedule"
)

// Clipper fetches pages and extracts resource links.
type Clipper struct {
	httpClient *http.Client
}

// NewClipper creates a new Clipper instance.
func NewClipper() *Clipper {
	return &Clipper{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ClipResource fetches the URL and returns a resource link labelled with
// the page title. Pages without a usable title fall back to the URL itself.
func (c *Clipper) ClipResource(ctx context.Context, url string) (schedule.ResourceLink, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return schedule.ResourceLink{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return schedule.ResourceLink{}, fmt.Errorf("failed to fetch content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return schedule.ResourceLink{}, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return schedule.ResourceLink{}, fmt.Errorf("failed to parse page: %w", err)
	}

	label := strings.TrimSpace(doc.Find("title").First().Text())
	if label == "" {
		label, _ = doc.Find(`meta[property="og:title"]`).Attr("content")
		label = strings.TrimSpace(label)
	}
	if label == "" {
		label = url
	}

	return schedule.ResourceLink{Label: label, Href: url}, nil
}
