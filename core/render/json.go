// Package render — JSON renderer.
// Emits the complete parse result (metadata, chunks, links, images)
// as indented JSON for downstream pipeline consumers.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/wisebayes/solstice-scrapegraph/core"
)

// JSONRenderer produces structured JSON output from a parse result.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts the result and metadata into the PageJSON structure.
func (r *JSONRenderer) Render(res core.Result, meta core.PageMetadata) ([]byte, error) {
	page := core.PageJSON{
		Metadata: meta,
		Result:   res,
	}

	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
