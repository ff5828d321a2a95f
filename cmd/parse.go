// Package cmd — parse command.
// This is the main command that orchestrates the parse stage:
// fetch (or read) → harvest → convert → chunk → render → write.
//
// It handles flag validation, renderer selection, and the single-page /
// whole-site modes.
package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wisebayes/solstice-scrapegraph/config"
	"github.com/wisebayes/solstice-scrapegraph/core"
	"github.com/wisebayes/solstice-scrapegraph/core/chunk"
	"github.com/wisebayes/solstice-scrapegraph/core/clean"
	"github.com/wisebayes/solstice-scrapegraph/core/convert"
	"github.com/wisebayes/solstice-scrapegraph/core/fetch"
	"github.com/wisebayes/solstice-scrapegraph/core/harvest"
	"github.com/wisebayes/solstice-scrapegraph/core/output"
	"github.com/wisebayes/solstice-scrapegraph/core/parse"
	"github.com/wisebayes/solstice-scrapegraph/core/render"
	"github.com/wisebayes/solstice-scrapegraph/crawl"
)

// Flag variables.
var (
	flagAll       bool
	flagText      bool
	flagNoURLs    bool
	flagPDF       bool
	flagMarkdown  bool
	flagJSON      bool
	flagChunks    bool
	flagChunkSize int
	flagSource    string
	flagFile      string
	flagOutputDir string
	flagConfig    string
)

var parseCmd = &cobra.Command{
	Use:   "parse <url>",
	Short: "Parse a page into chunks, links, and images",
	Long: `Parse fetches a webpage (or reads a local file), harvests link and image
URLs from the raw markup, converts the content to Markdown, splits it into
bounded-size chunks, and writes the result in the chosen output format.

Examples:
  solstice parse https://example.com --json
  solstice parse https://example.com --markdown --chunk_size 2048
  solstice parse https://example.com --all --chunks --output_dir ./out
  solstice parse --file page.txt --text --source https://example.com --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	// Mode flags.
	parseCmd.Flags().BoolVar(&flagAll, "all", false, "Parse all discovered sub-pages")
	parseCmd.Flags().BoolVar(&flagText, "text", false, "Treat input as pre-extracted text instead of HTML")
	parseCmd.Flags().BoolVar(&flagNoURLs, "no-urls", false, "Skip link/image harvesting")

	// Output format flags (mutually exclusive).
	parseCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	parseCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	parseCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")
	parseCmd.Flags().BoolVar(&flagChunks, "chunks", false, "Output JSONL chunk dump")

	// Input and sizing.
	parseCmd.Flags().IntVar(&flagChunkSize, "chunk_size", 0, "Configured chunk size (default from config)")
	parseCmd.Flags().StringVar(&flagSource, "source", "", "Base URL for resolving relative references (file/stdin input)")
	parseCmd.Flags().StringVar(&flagFile, "file", "", "Read content from a local file instead of fetching")

	// Output directory and config file.
	parseCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
	parseCmd.Flags().StringVar(&flagConfig, "config", "", "YAML config file")
}

func runParse(cmd *cobra.Command, args []string) error {
	if err := validateFlags(args); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	renderer, err := selectRenderer()
	if err != nil {
		return err
	}

	// Assemble the pipeline.
	harvester := harvest.New(cfg.ImageExtensions...)
	parser := parse.New(
		harvester,
		convert.New(clean.New()),
		chunk.New(),
		parse.Options{
			Structured:  !flagText,
			HarvestURLs: !flagNoURLs,
			ChunkSize:   cfg.ChunkSize,
		},
	)

	writer, err := output.New(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	ctx := context.Background()

	if flagFile != "" {
		return runFile(parser, renderer, writer)
	}

	fetcher := fetch.NewWithOptions(cfg.UserAgent, cfg.FetchTimeout())
	rawURL := args[0]
	if flagAll {
		return runAll(ctx, rawURL, fetcher, harvester, parser, renderer, writer)
	}
	return runOnly(ctx, rawURL, fetcher, parser, renderer, writer)
}

// runOnly processes a single URL through the pipeline.
func runOnly(
	ctx context.Context,
	rawURL string,
	fetcher core.Fetcher,
	parser *parse.Parser,
	renderer core.Renderer,
	writer *output.Writer,
) error {
	data, err := processURL(ctx, rawURL, fetcher, parser, renderer)
	if err != nil {
		return err
	}

	path, err := writer.WriteFlat(rawURL, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

// runAll discovers all internal pages and processes each through the pipeline.
func runAll(
	ctx context.Context,
	rawURL string,
	fetcher core.Fetcher,
	harvester core.Harvester,
	parser *parse.Parser,
	renderer core.Renderer,
	writer *output.Writer,
) error {
	fmt.Fprintf(os.Stdout, "Discovering pages from %s...\n", rawURL)

	urls, err := crawl.DiscoverAll(ctx, rawURL, fetcher, harvester)
	if err != nil {
		return fmt.Errorf("discovering pages: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Found %d pages to process\n", len(urls))

	var errCount int
	for i, pageURL := range urls {
		fmt.Fprintf(os.Stdout, "[%d/%d] Processing %s\n", i+1, len(urls), pageURL)

		data, err := processURL(ctx, pageURL, fetcher, parser, renderer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Error: %v\n", err)
			errCount++
			continue
		}

		path, err := writer.WriteMirrored(pageURL, data, renderer.Extension())
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ✗ Write error: %v\n", err)
			errCount++
			continue
		}
		fmt.Fprintf(os.Stdout, "  ✓ Written: %s\n", path)
	}

	if errCount > 0 {
		fmt.Fprintf(os.Stderr, "\n%d/%d pages failed\n", errCount, len(urls))
	}
	return nil
}

// runFile parses content from a local file, using --source as the base URL.
func runFile(parser *parse.Parser, renderer core.Renderer, writer *output.Writer) error {
	content, err := os.ReadFile(flagFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", flagFile, err)
	}

	doc := core.NewDocument(flagSource, string(content))
	res, err := parser.Parse(doc)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	meta := buildMetadata(flagSource, string(content))
	data, err := renderer.Render(res, meta)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	name := flagSource
	if name == "" {
		name = flagFile
	}
	path, err := writer.WriteFlat(name, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

// processURL runs a single URL through the full pipeline.
func processURL(
	ctx context.Context,
	rawURL string,
	fetcher core.Fetcher,
	parser *parse.Parser,
	renderer core.Renderer,
) ([]byte, error) {
	result, err := fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	res, err := parser.Parse(core.NewDocument(rawURL, result.HTML))
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	meta := buildMetadata(rawURL, result.HTML)

	data, err := renderer.Render(res, meta)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	return data, nil
}

// buildMetadata constructs PageMetadata from the URL and raw HTML.
func buildMetadata(rawURL string, html string) core.PageMetadata {
	meta := core.PageMetadata{
		URL:       rawURL,
		Title:     extractTitle(html),
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if parsed, err := url.Parse(rawURL); err == nil {
		meta.Domain = parsed.Host
		meta.Path = parsed.Path
	}
	return meta
}

// extractTitle pulls the <title> content from raw HTML.
func extractTitle(html string) string {
	start := strings.Index(html, "<title>")
	if start == -1 {
		return ""
	}
	start += len("<title>")
	end := strings.Index(html[start:], "</title>")
	if end == -1 {
		return ""
	}
	return strings.TrimSpace(html[start : start+end])
}

// loadConfig resolves the effective configuration: file values when
// --config is given, defaults otherwise, with flags overriding both.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if flagChunkSize > 0 {
		cfg.ChunkSize = flagChunkSize
	}
	if flagOutputDir != "" {
		cfg.OutputDir = flagOutputDir
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// validateFlags checks that exactly one output format is chosen and that
// the input flags form a usable combination.
func validateFlags(args []string) error {
	if flagFile == "" {
		if len(args) != 1 {
			return fmt.Errorf("a URL argument is required unless --file is given")
		}
		parsed, err := url.Parse(args[0])
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://example.com)", args[0])
		}
	} else if flagAll {
		return fmt.Errorf("--all requires a URL, not --file")
	}

	formatCount := 0
	for _, set := range []bool{flagPDF, flagMarkdown, flagJSON, flagChunks} {
		if set {
			formatCount++
		}
	}
	if formatCount == 0 {
		return fmt.Errorf("exactly one output format is required: --pdf, --markdown, --json, or --chunks")
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}

	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer() (core.Renderer, error) {
	switch {
	case flagMarkdown:
		return render.NewMarkdownRenderer(), nil
	case flagJSON:
		return render.NewJSONRenderer(), nil
	case flagPDF:
		return render.NewPDFRenderer(), nil
	case flagChunks:
		return render.NewChunkRenderer(), nil
	default:
		return nil, fmt.Errorf("no output format selected")
	}
}
