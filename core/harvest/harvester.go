// Package harvest extracts, normalizes, deduplicates, and categorizes
// URLs from page content. Three passes run over every input and their
// findings are merged before deduplication:
//  1. Structured pass — parse as HTML and read href/src attributes
//  2. Regex pass — absolute http(s) URLs in markdown or plain text
//  3. Markdown pass — relative links in `](path)` syntax
//
// Running all three unconditionally means content that is malformed HTML,
// half-converted markdown, or plain text still yields every reference.
package harvest

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
)

// DefaultImageExtensions classifies a URL as an image when its
// query-stripped, lower-cased path ends with one of these.
var DefaultImageExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".svg", ".webp", ".ico", ".bmp", ".tiff", ".avif",
}

// srcAttrs are the attributes read from img/source elements. The *set
// variants hold comma-separated candidate lists.
var srcAttrs = []string{"src", "data-src", "data-srcset", "srcset"}

var (
	// absURLRe matches absolute http(s) URLs up to whitespace or a
	// delimiter that commonly terminates a URL in markdown or HTML.
	absURLRe = regexp.MustCompile(`(?i)https?://[^\s)"'<>]+`)

	// mdLinkRe captures the target of markdown link syntax `](target)`.
	mdLinkRe = regexp.MustCompile(`\]\(([^)]+)\)`)
)

// URLHarvester implements core.Harvester.
type URLHarvester struct {
	imageExts []string
}

// New creates a URLHarvester. Passing no extensions uses
// DefaultImageExtensions.
func New(imageExts ...string) *URLHarvester {
	if len(imageExts) == 0 {
		imageExts = DefaultImageExtensions
	}
	return &URLHarvester{imageExts: imageExts}
}

// Extract returns the deduplicated, categorized URLs found in content.
// Relative candidates are resolved against source; when source is empty
// they are kept in their relative form. A URL that qualifies as both
// link and image is reported only as an image. Both slices are sorted
// ascending so output is reproducible regardless of pass or map order.
// Extract never fails: a structured pass that cannot parse the content
// is logged and skipped, and the regex passes still run.
func (h *URLHarvester) Extract(content, source string) (links, images []string) {
	base := parseBase(source)
	linkSet := make(map[string]struct{})
	imageSet := make(map[string]struct{})

	collect := func(raw string) {
		h.categorize(raw, base, linkSet, imageSet)
	}

	h.structuredPass(content, collect)

	// Absolute http(s) URLs present in markdown or plain text.
	for _, m := range absURLRe.FindAllString(content, -1) {
		collect(m)
	}

	// Markdown relative links: take only the first token inside the
	// parens, discarding any trailing title text.
	for _, m := range mdLinkRe.FindAllStringSubmatch(content, -1) {
		if fields := strings.Fields(m[1]); len(fields) > 0 {
			collect(fields[0])
		}
	}

	// A candidate seen as both stays an image only.
	for u := range imageSet {
		delete(linkSet, u)
	}

	links = sortedKeys(linkSet)
	images = sortedKeys(imageSet)
	return links, images
}

// structuredPass parses content as HTML and feeds every anchor href and
// image-like src attribute to collect. Malformed input never aborts the
// caller: on parse failure the pass is logged and skipped.
func (h *URLHarvester) structuredPass(content string, collect func(string)) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		log.Warn().Err(err).Msg("structured pass failed, falling back to regex extraction")
		return
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			collect(href)
		}
	})

	doc.Find("img, source").Each(func(_ int, s *goquery.Selection) {
		for _, attr := range srcAttrs {
			raw, ok := s.Attr(attr)
			if !ok {
				continue
			}
			if strings.HasSuffix(attr, "set") {
				// srcset entries are "url [descriptor]" pairs.
				for _, entry := range strings.Split(raw, ",") {
					if fields := strings.Fields(entry); len(fields) > 0 {
						collect(fields[0])
					}
				}
			} else {
				collect(raw)
			}
		}
	})
}

// categorize normalizes a raw candidate and files it into the link or
// image set. Empty, "#", and "/" candidates are discarded. The stored
// value keeps its query and fragment; only classification strips them.
func (h *URLHarvester) categorize(raw string, base *url.URL, linkSet, imageSet map[string]struct{}) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "#" || raw == "/" {
		return
	}

	abs := resolve(raw, base)

	if h.isImage(abs) {
		imageSet[abs] = struct{}{}
	} else {
		linkSet[abs] = struct{}{}
	}
}

// isImage reports whether the query/fragment-stripped, lower-cased URL
// ends with a configured image extension. data: URIs go through the same
// rule; their payloads never end in an extension, so they land in links.
func (h *URLHarvester) isImage(u string) bool {
	stripped := u
	if i := strings.IndexByte(stripped, '?'); i >= 0 {
		stripped = stripped[:i]
	}
	if i := strings.IndexByte(stripped, '#'); i >= 0 {
		stripped = stripped[:i]
	}
	stripped = strings.ToLower(stripped)

	for _, ext := range h.imageExts {
		if strings.HasSuffix(stripped, ext) {
			return true
		}
	}
	return false
}

// resolve joins a scheme-less candidate against the base URL. Candidates
// that already carry a scheme, or inputs with no usable base, pass
// through unchanged.
func resolve(raw string, base *url.URL) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme != "" || base == nil {
		return raw
	}
	return base.ResolveReference(parsed).String()
}

// parseBase parses the source URL once per invocation. An empty or
// unparsable source disables relative resolution.
func parseBase(source string) *url.URL {
	if source == "" {
		return nil
	}
	base, err := url.Parse(source)
	if err != nil {
		log.Warn().Err(err).Str("source", source).Msg("unparsable source URL, keeping relative candidates as-is")
		return nil
	}
	return base
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
