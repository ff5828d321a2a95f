package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_RejectsNonPositiveSize(t *testing.T) {
	c := New()

	_, err := c.Split("text", 0)
	assert.Error(t, err)

	_, err = c.Split("text", -5)
	assert.Error(t, err)
}

func TestSplit_RejectsSizeBelowRuneWidth(t *testing.T) {
	c := New()

	// Sizes 1-3 cannot hold an arbitrary rune, so the size bound could
	// not be honored during a hard split.
	for _, max := range []int{1, 2, 3} {
		_, err := c.Split("héllo wörld", max)
		assert.Error(t, err, "max %d", max)
	}
}

func TestSplit_MinimumSizeHoldsEveryRune(t *testing.T) {
	c := New()

	text := strings.Repeat("é", 10) // 2 bytes per rune, no natural breaks
	chunks, err := c.Split(text, 4)
	require.NoError(t, err)

	for i, chunk := range chunks {
		assert.NotEmpty(t, chunk, "chunk %d", i)
		assert.LessOrEqual(t, len(chunk), 4, "chunk %d", i)
	}
	assert.Equal(t, text, strings.Join(chunks, ""))
}

func TestSplit_EmptyInput(t *testing.T) {
	c := New()

	chunks, err := c.Split("", 100)
	require.NoError(t, err)
	assert.Empty(t, chunks)

	chunks, err = c.Split("   \n\n  ", 100)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestSplit_SingleChunkWhenSmallEnough(t *testing.T) {
	c := New()

	chunks, err := c.Split("a short text", 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"a short text"}, chunks)
}

func TestSplit_NeverExceedsMaxSize(t *testing.T) {
	c := New()

	text := strings.Repeat("This is a sentence. ", 50) +
		"\n\n" + strings.Repeat("Another paragraph here. ", 30)

	for _, max := range []int{10, 25, 64, 100, 500} {
		chunks, err := c.Split(text, max)
		require.NoError(t, err)
		require.NotEmpty(t, chunks)
		for i, chunk := range chunks {
			assert.LessOrEqual(t, len(chunk), max, "chunk %d at max %d", i, max)
		}
	}
}

func TestSplit_PrefersParagraphBoundaries(t *testing.T) {
	c := New()

	chunks, err := c.Split("first paragraph\n\nsecond paragraph", 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"first paragraph", "second paragraph"}, chunks)
}

func TestSplit_PacksParagraphsUpToBudget(t *testing.T) {
	c := New()

	chunks, err := c.Split("aaa\n\nbbb\n\nccc", 20)
	require.NoError(t, err)
	// All three fit in one chunk joined by blank lines.
	assert.Equal(t, []string{"aaa\n\nbbb\n\nccc"}, chunks)
}

func TestSplit_SentenceSplitInsideLargeParagraph(t *testing.T) {
	c := New()

	chunks, err := c.Split("First sentence here. Second sentence here. Third sentence here.", 25)
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, "First sentence here.", chunks[0])
	assert.Equal(t, "Second sentence here.", chunks[1])
	assert.Equal(t, "Third sentence here.", chunks[2])
}

func TestSplit_HardSplitWhenNoNaturalBreaks(t *testing.T) {
	c := New()

	text := strings.Repeat("x", 95)
	chunks, err := c.Split(text, 30)
	require.NoError(t, err)

	var total int
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 30)
		total += len(chunk)
	}
	assert.Equal(t, 95, total, "hard split loses no content")
}

func TestSplit_CoversAllWords(t *testing.T) {
	c := New()

	text := "alpha beta gamma. delta epsilon zeta.\n\ntheta iota kappa."
	chunks, err := c.Split(text, 24)
	require.NoError(t, err)

	joined := strings.Join(chunks, " ")
	for _, word := range strings.Fields(strings.NewReplacer(".", "", "\n", " ").Replace(text)) {
		assert.Contains(t, joined, word)
	}
}

func TestSplit_MultibyteHardSplitKeepsRunesIntact(t *testing.T) {
	c := New()

	text := strings.Repeat("héllo", 20) // 6 bytes per repeat
	chunks, err := c.Split(text, 10)
	require.NoError(t, err)

	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 10)
		assert.True(t, strings.HasPrefix(strings.Join(chunks, ""), "héllo"))
	}
	assert.Equal(t, text, strings.Join(chunks, ""))
}
