// Package clean implements the Cleaner interface.
// It isolates the main content from a full HTML page by:
//  1. Removing noise elements (nav, footer, scripts, ...)
//  2. Finding the best content container (<main>, <article>, or <body>)
//
// Cleaning serves the conversion path only; URL harvesting always runs
// on the untouched markup upstream of this stage.
package clean

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are HTML elements removed before conversion.
// These contribute no meaningful content to the page text.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"nav", "footer", "header",
	"iframe", "video", "audio",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
}

// HTMLCleaner strips noise from HTML and returns the main content fragment.
type HTMLCleaner struct{}

// New creates an HTMLCleaner.
func New() *HTMLCleaner {
	return &HTMLCleaner{}
}

// Clean takes raw HTML and returns a fragment containing only the main
// content. Unlike the noise list above, images are kept: they survive
// into the markdown so image references stay visible downstream.
func (c *HTMLCleaner) Clean(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	// Find the best content container in priority order.
	// <main> is the most semantically correct, then <article>, then <body>.
	var content *goquery.Selection
	for _, tag := range []string{"main", "article", "body"} {
		if sel := doc.Find(tag); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}

	if content == nil {
		return "", fmt.Errorf("no content container found in HTML")
	}

	result, err := goquery.OuterHtml(content)
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}

	return result, nil
}
