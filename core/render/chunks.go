// Package render — chunk dump renderer.
// Emits one JSON record per chunk (JSONL) for embedding or indexing
// consumers that ingest chunks independently.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wisebayes/solstice-scrapegraph/core"
)

// ChunkRenderer produces a JSONL chunk dump from a parse result.
type ChunkRenderer struct{}

// NewChunkRenderer creates a ChunkRenderer.
func NewChunkRenderer() *ChunkRenderer {
	return &ChunkRenderer{}
}

// chunkRecord is one line of the JSONL output.
type chunkRecord struct {
	Source string `json:"source"`
	Index  int    `json:"index"`
	Size   int    `json:"size"`
	Text   string `json:"text"`
}

// Render writes one JSON object per line: first the chunk records, then
// a trailing record carrying the harvested URL sets.
func (r *ChunkRenderer) Render(res core.Result, meta core.PageMetadata) ([]byte, error) {
	var b strings.Builder
	enc := json.NewEncoder(&b)

	for i, chunk := range res.Chunks {
		rec := chunkRecord{
			Source: meta.URL,
			Index:  i,
			Size:   len(chunk),
			Text:   chunk,
		}
		if err := enc.Encode(rec); err != nil {
			return nil, fmt.Errorf("encoding chunk %d: %w", i, err)
		}
	}

	urls := struct {
		Source string   `json:"source"`
		Links  []string `json:"links"`
		Images []string `json:"images"`
	}{meta.URL, res.Links, res.Images}
	if err := enc.Encode(urls); err != nil {
		return nil, fmt.Errorf("encoding url record: %w", err)
	}

	return []byte(b.String()), nil
}

// Extension returns the file extension for chunk dump output.
func (r *ChunkRenderer) Extension() string {
	return ".chunks.jsonl"
}
