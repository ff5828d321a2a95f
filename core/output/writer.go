// Package output places rendered parse results on disk. Single-page
// runs collapse the URL into one flat filename; crawl runs keep the
// site's path hierarchy so a whole-site dump mirrors the source layout.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes rendered output under a root directory.
type Writer struct {
	OutputDir string
}

// New creates a Writer rooted at outputDir, creating the directory if
// needed. An empty outputDir targets the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// WriteFlat collapses the URL into a single filename directly under the
// output root: https://example.com/docs/intro → example_com_docs_intro.json.
func (w *Writer) WriteFlat(rawURL string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, filenameFromURL(rawURL)+ext)
	if err := w.writeFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// WriteMirrored reproduces the URL's path under the output root:
// https://site.com/docs/intro → <root>/docs/intro.json. The site root
// itself lands in index.<ext>.
func (w *Writer) WriteMirrored(rawURL string, data []byte, ext string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing URL %s: %w", rawURL, err)
	}

	rel := strings.Trim(parsed.Path, "/")
	if rel == "" {
		rel = "index"
	}

	path := filepath.Join(w.OutputDir, rel+ext)
	if err := w.writeFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// writeFile writes data at path, creating parent directories as needed.
func (w *Writer) writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	return nil
}

// filenameFromURL flattens host and path segments into one
// underscore-joined name.
func filenameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return sanitize(rawURL)
	}

	parts := []string{sanitize(parsed.Host)}
	for _, seg := range strings.Split(strings.Trim(parsed.Path, "/"), "/") {
		if seg != "" {
			parts = append(parts, sanitize(seg))
		}
	}
	return strings.Join(parts, "_")
}

// sanitize maps anything outside [A-Za-z0-9] to an underscore.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, s)
}
