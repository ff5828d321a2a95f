// Package render provides output renderers for parse results.
// This file implements the Markdown renderer.
package render

import (
	"fmt"
	"strings"

	"github.com/wisebayes/solstice-scrapegraph/core"
)

// MarkdownRenderer writes the parse result as a Markdown document:
// chunks in order, then the harvested link and image lists.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the result as Markdown bytes.
func (r *MarkdownRenderer) Render(res core.Result, meta core.PageMetadata) ([]byte, error) {
	var b strings.Builder

	if meta.Title != "" {
		fmt.Fprintf(&b, "# %s\n\n", meta.Title)
	}
	if meta.URL != "" {
		fmt.Fprintf(&b, "> Source: %s\n\n", meta.URL)
	}

	for i, chunk := range res.Chunks {
		if i > 0 {
			b.WriteString("\n\n---\n\n")
		}
		b.WriteString(chunk)
	}

	writeURLSection(&b, "Links", res.Links)
	writeURLSection(&b, "Images", res.Images)

	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

func writeURLSection(b *strings.Builder, heading string, urls []string) {
	if len(urls) == 0 {
		return
	}
	fmt.Fprintf(b, "\n\n## %s\n\n", heading)
	for _, u := range urls {
		fmt.Fprintf(b, "- %s\n", u)
	}
}
