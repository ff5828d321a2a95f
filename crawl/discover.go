// Package crawl provides URL discovery for whole-site runs.
// It discovers internal pages via sitemap.xml first, falling back to
// BFS over links harvested from each fetched page. Link extraction goes
// through the harvester so discovery sees exactly the URL set the parse
// stage reports.
package crawl

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wisebayes/solstice-scrapegraph/core"
)

// maxPages bounds BFS discovery to avoid runaway crawls.
const maxPages = 100

// sitemapURL holds a URL from a sitemap.xml.
type sitemapURL struct {
	Loc string `xml:"loc"`
}

// sitemapIndex is the root element of a sitemap.xml.
type sitemapIndex struct {
	URLs []sitemapURL `xml:"url"`
}

// DiscoverAll finds all internal URLs to process starting from baseURL.
// It first tries sitemap.xml, then falls back to harvesting links page
// by page. The baseURL itself is always included.
func DiscoverAll(ctx context.Context, baseURL string, fetcher core.Fetcher, harvester core.Harvester) ([]string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	domain := parsed.Host

	// Try sitemap first.
	sitemapURLStr := fmt.Sprintf("%s://%s/sitemap.xml", parsed.Scheme, domain)
	urls, err := discoverFromSitemap(ctx, sitemapURLStr, domain)
	if err == nil && len(urls) > 0 {
		return urls, nil
	}

	// Fall back to BFS over harvested links.
	return discoverFromLinks(ctx, baseURL, domain, fetcher, harvester)
}

// discoverFromSitemap fetches and parses sitemap.xml for internal URLs.
func discoverFromSitemap(ctx context.Context, sitemapURL string, domain string) ([]string, error) {
	client := &http.Client{Timeout: 15 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sitemap returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var sitemap sitemapIndex
	if err := xml.Unmarshal(body, &sitemap); err != nil {
		return nil, err
	}

	var urls []string
	for _, u := range sitemap.URLs {
		if IsSameDomain(u.Loc, domain) && !IsStaticAsset(u.Loc) {
			urls = append(urls, NormalizeURL(u.Loc))
		}
	}
	return urls, nil
}

// discoverFromLinks performs BFS crawling over harvested links.
func discoverFromLinks(ctx context.Context, startURL string, domain string, fetcher core.Fetcher, harvester core.Harvester) ([]string, error) {
	queue := NewQueue()
	queue.Add(startURL)

	for queue.HasNext() && queue.Seen() < maxPages {
		currentURL := queue.Next()

		result, err := fetcher.Fetch(ctx, currentURL)
		if err != nil {
			// Skip failed pages, don't block the crawl.
			log.Warn().Err(err).Str("url", currentURL).Msg("fetch failed during discovery, skipping")
			continue
		}

		links, _ := harvester.Extract(result.HTML, currentURL)
		for _, link := range links {
			if IsCrawlable(link) && IsSameDomain(link, domain) && !IsStaticAsset(link) {
				queue.Add(link)
			}
		}
	}

	return queue.Discovered(), nil
}
