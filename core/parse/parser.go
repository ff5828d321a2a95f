// Package parse coordinates the parse stage of the pipeline: it chooses
// between structured (HTML) and pre-parsed-text processing, harvests
// URLs, and hands converted text to the chunker under a mode-dependent
// size budget.
package parse

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/wisebayes/solstice-scrapegraph/core"
)

// Safety margins subtracted from the configured chunk size. Downstream
// consumers append fixed-overhead content to each chunk, and the two
// modes have different measured overhead profiles.
const (
	structuredMargin = 250
	textMargin       = 500
	textRatioPct     = 80
)

// ErrChunkBudget reports a configured chunk size too small to leave a
// positive budget after the mode margin. This is a caller configuration
// error and is never repaired silently.
var ErrChunkBudget = errors.New("derived chunk budget is not positive")

// Options controls a Parser's processing mode.
type Options struct {
	// Structured marks the input as raw HTML markup. When false the
	// input is treated as already-extracted text.
	Structured bool

	// HarvestURLs enables link/image extraction. When false the result
	// carries empty (non-nil) link and image slices.
	HarvestURLs bool

	// ChunkSize is the caller-configured chunk size the budget is
	// derived from. Must leave a positive budget after the mode margin.
	ChunkSize int
}

// Parser implements the parse stage over its collaborators.
type Parser struct {
	harvester core.Harvester
	converter core.Converter
	chunker   core.Chunker
	opts      Options
}

// New creates a Parser. The converter is only consulted in structured
// mode and may be nil otherwise.
func New(harvester core.Harvester, converter core.Converter, chunker core.Chunker, opts Options) *Parser {
	return &Parser{
		harvester: harvester,
		converter: converter,
		chunker:   chunker,
		opts:      opts,
	}
}

// Budget derives the maximum chunk size for a mode from the configured
// size. Structured content gets a fixed margin; pre-parsed text takes
// the stricter of a fixed and a proportional margin since it has no
// separate conversion step to absorb overhead elsewhere.
func Budget(structured bool, configured int) int {
	if structured {
		return configured - structuredMargin
	}
	fixed := configured - textMargin
	proportional := configured * textRatioPct / 100
	return min(fixed, proportional)
}

// Parse runs one document through the stage and returns its chunks and
// harvested URLs. In structured mode URL harvesting always runs against
// the raw, unconverted markup first: converting to text can silently
// drop image references. Chunker and converter failures propagate.
func (p *Parser) Parse(doc core.Document) (core.Result, error) {
	budget := Budget(p.opts.Structured, p.opts.ChunkSize)
	if budget <= 0 {
		return core.Result{}, fmt.Errorf("chunk size %d with %s margin: %w",
			p.opts.ChunkSize, modeName(p.opts.Structured), ErrChunkBudget)
	}

	content := doc.Content()
	links, images := []string{}, []string{}

	text := content
	if p.opts.Structured {
		if p.opts.HarvestURLs {
			links, images = p.harvester.Extract(content, doc.Source)
		}

		converted, err := p.converter.Convert(content)
		if err != nil {
			return core.Result{}, fmt.Errorf("converting content: %w", err)
		}
		text = converted
	} else if p.opts.HarvestURLs {
		// The text may not be well-formed markup at all; extraction
		// failures degrade to empty sets and chunking still proceeds.
		links, images = p.safeExtract(content, doc.Source)
	}

	chunks, err := p.chunker.Split(text, budget)
	if err != nil {
		return core.Result{}, fmt.Errorf("chunking content: %w", err)
	}

	if links == nil {
		links = []string{}
	}
	if images == nil {
		images = []string{}
	}

	return core.Result{Chunks: chunks, Links: links, Images: images}, nil
}

// safeExtract bounds URL extraction over pre-parsed text: any panic is
// logged and the result defaults to empty sets.
func (p *Parser) safeExtract(content, source string) (links, images []string) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("cause", r).Msg("url extraction failed on pre-parsed text, continuing without urls")
			links, images = []string{}, []string{}
		}
	}()
	return p.harvester.Extract(content, source)
}

func modeName(structured bool) string {
	if structured {
		return "structured"
	}
	return "text"
}
