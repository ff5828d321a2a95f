// Package crawl — URL filtering rules.
// Provides helpers to filter and normalize URLs during discovery.
package crawl

import (
	"net/url"
	"path"
	"strings"

	"github.com/wisebayes/solstice-scrapegraph/core/harvest"
)

// staticExtensions are file extensions to skip during crawling: every
// image extension the harvester classifies, plus other non-page assets.
var staticExtensions = buildStaticExtensions()

func buildStaticExtensions() map[string]bool {
	exts := map[string]bool{
		".css": true, ".js": true, ".mjs": true,
		".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
		".mp4": true, ".webm": true, ".mp3": true, ".wav": true,
		".zip": true, ".tar": true, ".gz": true,
		".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	}
	for _, ext := range harvest.DefaultImageExtensions {
		exts[ext] = true
	}
	return exts
}

// IsSameDomain checks if the given URL belongs to the specified domain.
func IsSameDomain(rawURL string, domain string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return parsed.Host == domain
}

// IsStaticAsset checks if a URL points to a static asset (image, CSS, JS, etc.).
func IsStaticAsset(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	ext := strings.ToLower(path.Ext(parsed.Path))
	return staticExtensions[ext]
}

// IsCrawlable filters out schemes that never lead to pages.
func IsCrawlable(rawURL string) bool {
	for _, prefix := range []string{"mailto:", "javascript:", "tel:", "data:"} {
		if strings.HasPrefix(rawURL, prefix) {
			return false
		}
	}
	return true
}

// NormalizeURL strips fragments and trailing slashes for deduplication.
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	// Remove fragment.
	parsed.Fragment = ""

	// Remove trailing slash (but keep root "/").
	if parsed.Path != "/" {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	}

	return parsed.String()
}
