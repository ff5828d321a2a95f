package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wisebayes/solstice-scrapegraph/core"
)

func sampleResult() (core.Result, core.PageMetadata) {
	res := core.Result{
		Chunks: []string{"first chunk", "second chunk"},
		Links:  []string{"https://ex.com/a", "https://ex.com/b"},
		Images: []string{"https://ex.com/p.png"},
	}
	meta := core.PageMetadata{
		URL:    "https://ex.com/page",
		Domain: "ex.com",
		Path:   "/page",
		Title:  "Example Page",
	}
	return res, meta
}

func TestMarkdownRenderer(t *testing.T) {
	res, meta := sampleResult()

	out, err := NewMarkdownRenderer().Render(res, meta)
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "# Example Page")
	assert.Contains(t, s, "first chunk")
	assert.Contains(t, s, "\n---\n")
	assert.Contains(t, s, "## Links")
	assert.Contains(t, s, "- https://ex.com/a")
	assert.Contains(t, s, "## Images")
	assert.Contains(t, s, "- https://ex.com/p.png")
	assert.Equal(t, ".md", NewMarkdownRenderer().Extension())
}

func TestJSONRenderer(t *testing.T) {
	res, meta := sampleResult()

	out, err := NewJSONRenderer().Render(res, meta)
	require.NoError(t, err)

	var page core.PageJSON
	require.NoError(t, json.Unmarshal(out, &page))

	assert.Equal(t, meta.URL, page.Metadata.URL)
	assert.Equal(t, res.Chunks, page.Result.Chunks)
	assert.Equal(t, res.Links, page.Result.Links)
	assert.Equal(t, res.Images, page.Result.Images)
	assert.Equal(t, ".json", NewJSONRenderer().Extension())
}

func TestChunkRenderer(t *testing.T) {
	res, meta := sampleResult()

	out, err := NewChunkRenderer().Render(res, meta)
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(out), []byte("\n"))
	require.Len(t, lines, 3, "two chunk records plus the url record")

	var rec struct {
		Source string `json:"source"`
		Index  int    `json:"index"`
		Size   int    `json:"size"`
		Text   string `json:"text"`
	}
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "https://ex.com/page", rec.Source)
	assert.Equal(t, 0, rec.Index)
	assert.Equal(t, len("first chunk"), rec.Size)
	assert.Equal(t, "first chunk", rec.Text)

	var urls struct {
		Links  []string `json:"links"`
		Images []string `json:"images"`
	}
	require.NoError(t, json.Unmarshal(lines[2], &urls))
	assert.Equal(t, res.Links, urls.Links)
	assert.Equal(t, res.Images, urls.Images)
	assert.Equal(t, ".chunks.jsonl", NewChunkRenderer().Extension())
}

func TestPDFRenderer(t *testing.T) {
	res, meta := sampleResult()

	out, err := NewPDFRenderer().Render(res, meta)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(out), "%PDF"), "output is a PDF document")
	assert.Equal(t, ".pdf", NewPDFRenderer().Extension())
}
