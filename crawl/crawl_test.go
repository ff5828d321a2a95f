package crawl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wisebayes/solstice-scrapegraph/core"
	"github.com/wisebayes/solstice-scrapegraph/core/harvest"
)

func TestQueue_Deduplicates(t *testing.T) {
	q := NewQueue()
	assert.True(t, q.Add("https://ex.com/a"))
	assert.True(t, q.Add("https://ex.com/b"))
	assert.False(t, q.Add("https://ex.com/a"))

	assert.Equal(t, 2, q.Seen())
	assert.Equal(t, []string{"https://ex.com/a", "https://ex.com/b"}, q.Discovered())

	require.True(t, q.HasNext())
	assert.Equal(t, "https://ex.com/a", q.Next())
	assert.Equal(t, "https://ex.com/b", q.Next())
	assert.False(t, q.HasNext())
}

func TestQueue_NormalizesOnInsert(t *testing.T) {
	q := NewQueue()
	assert.True(t, q.Add("https://ex.com/docs/"))
	assert.False(t, q.Add("https://ex.com/docs#section"), "spellings of the same page share one slot")
	assert.False(t, q.Add("https://ex.com/docs"))

	assert.Equal(t, 1, q.Seen())
	assert.Equal(t, []string{"https://ex.com/docs"}, q.Discovered())
}

func TestIsSameDomain(t *testing.T) {
	assert.True(t, IsSameDomain("https://ex.com/page", "ex.com"))
	assert.False(t, IsSameDomain("https://other.com/page", "ex.com"))
	assert.False(t, IsSameDomain("://bad", "ex.com"))
}

func TestIsStaticAsset(t *testing.T) {
	assert.True(t, IsStaticAsset("https://ex.com/logo.png"))
	assert.True(t, IsStaticAsset("https://ex.com/app.JS"))
	assert.True(t, IsStaticAsset("https://ex.com/doc.pdf"))
	assert.False(t, IsStaticAsset("https://ex.com/docs/intro"))
}

func TestIsCrawlable(t *testing.T) {
	assert.False(t, IsCrawlable("mailto:a@ex.com"))
	assert.False(t, IsCrawlable("javascript:void(0)"))
	assert.False(t, IsCrawlable("data:image/png;base64,abc"))
	assert.True(t, IsCrawlable("https://ex.com/page"))
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://ex.com/docs", NormalizeURL("https://ex.com/docs/"))
	assert.Equal(t, "https://ex.com/docs", NormalizeURL("https://ex.com/docs#section"))
	assert.Equal(t, "https://ex.com/", NormalizeURL("https://ex.com/"))
}

// stubFetcher serves canned pages keyed by URL.
type stubFetcher struct {
	pages map[string]string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (*core.FetchResult, error) {
	html, ok := f.pages[url]
	if !ok {
		return nil, assert.AnError
	}
	return &core.FetchResult{URL: url, StatusCode: 200, HTML: html}, nil
}

func TestDiscoverFromLinks_FollowsInternalLinksOnly(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{
		"https://ex.com": `<body>
			<a href="/docs">docs</a>
			<a href="https://other.com/out">external</a>
			<a href="/logo.png">asset</a>
		</body>`,
		"https://ex.com/docs": `<body><a href="/">home</a></body>`,
	}}

	urls, err := discoverFromLinks(context.Background(), "https://ex.com", "ex.com", fetcher, harvest.New())
	require.NoError(t, err)

	assert.Equal(t, []string{"https://ex.com", "https://ex.com/docs"}, urls)
}

func TestDiscoverFromLinks_SkipsFailedPages(t *testing.T) {
	fetcher := &stubFetcher{pages: map[string]string{
		"https://ex.com": `<body><a href="/missing">gone</a></body>`,
	}}

	urls, err := discoverFromLinks(context.Background(), "https://ex.com", "ex.com", fetcher, harvest.New())
	require.NoError(t, err)

	// The unreachable page stays discovered; the crawl just moves on.
	assert.Equal(t, []string{"https://ex.com", "https://ex.com/missing"}, urls)
}
