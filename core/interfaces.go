// Package core defines the pipeline contracts for solstice.
// Each stage of the parse pipeline is a clean, testable interface.
package core

import (
	"context"
	"strings"
)

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// Document is the immutable input to a parse invocation: one or more
// content fragments plus an optional base URL used to resolve relative
// references found in the content.
type Document struct {
	Fragments []string
	Source    string
}

// NewDocument builds a Document from content fragments.
func NewDocument(source string, fragments ...string) Document {
	return Document{Fragments: fragments, Source: source}
}

// Content joins the fragments in order. Multi-fragment documents are
// concatenated with newlines before any extraction runs.
func (d Document) Content() string {
	if len(d.Fragments) == 1 {
		return d.Fragments[0]
	}
	return strings.Join(d.Fragments, "\n")
}

// Result is the output of a parse invocation. Links and Images are
// deduplicated, disjoint, and sorted ascending; both are empty (never
// nil) when URL harvesting is disabled.
type Result struct {
	Chunks []string `json:"chunks"`
	Links  []string `json:"links"`
	Images []string `json:"images"`
}

// PageMetadata holds metadata derived from the source URL and page.
type PageMetadata struct {
	URL       string `json:"url"`
	Domain    string `json:"domain"`
	Path      string `json:"path"`
	Title     string `json:"title"`
	FetchedAt string `json:"fetched_at"` // ISO8601
}

// PageJSON is the complete JSON output for a single parsed page.
type PageJSON struct {
	Metadata PageMetadata `json:"metadata"`
	Result   Result       `json:"result"`
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Cleaner isolates the main content from a full HTML page, stripping noise.
type Cleaner interface {
	Clean(html string) (string, error)
}

// Converter turns raw HTML into markdown/plain text for chunking.
type Converter interface {
	Convert(html string) (string, error)
}

// Chunker splits text into an ordered sequence of chunks, each at most
// maxSize bytes. The chunks, in order, cover the input text.
type Chunker interface {
	Split(text string, maxSize int) ([]string, error)
}

// Harvester extracts, normalizes, deduplicates, and categorizes URLs
// from a content blob relative to an optional base source URL.
type Harvester interface {
	Extract(content, source string) (links, images []string)
}

// Renderer converts a parse Result (and metadata) into a final output format.
type Renderer interface {
	Render(res Result, meta PageMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
