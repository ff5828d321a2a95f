// Package convert implements the Converter interface.
// It cleans raw HTML and converts it into Markdown, which serves as the
// canonical text handed to the chunker.
package convert

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/rs/zerolog/log"

	"github.com/wisebayes/solstice-scrapegraph/core"
)

// MarkdownConverter converts HTML to Markdown using html-to-markdown,
// optionally cleaning the page down to its main content first.
type MarkdownConverter struct {
	cleaner core.Cleaner
}

// New creates a MarkdownConverter. A nil cleaner converts the full page.
func New(cleaner core.Cleaner) *MarkdownConverter {
	return &MarkdownConverter{cleaner: cleaner}
}

// Convert turns raw HTML into Markdown. A cleaner failure (e.g. a page
// with no recognizable content container) degrades to converting the
// raw input rather than aborting the parse.
func (c *MarkdownConverter) Convert(html string) (string, error) {
	input := html
	if c.cleaner != nil {
		cleaned, err := c.cleaner.Clean(html)
		if err != nil {
			log.Warn().Err(err).Msg("content cleaning failed, converting raw markup")
		} else {
			input = cleaned
		}
	}

	markdown, err := htmltomarkdown.ConvertString(input)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return markdown, nil
}
