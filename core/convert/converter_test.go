package convert

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingCleaner always reports a cleaning failure.
type failingCleaner struct{}

func (failingCleaner) Clean(string) (string, error) {
	return "", errors.New("no content container")
}

func TestConvert_BasicHTML(t *testing.T) {
	c := New(nil)

	md, err := c.Convert(`<h1>Title</h1><p>Some <strong>bold</strong> text.</p>`)
	require.NoError(t, err)

	assert.Contains(t, md, "# Title")
	assert.Contains(t, md, "**bold**")
}

func TestConvert_LinksSurvive(t *testing.T) {
	c := New(nil)

	md, err := c.Convert(`<p><a href="https://ex.com/docs">docs</a></p>`)
	require.NoError(t, err)

	assert.Contains(t, md, "](https://ex.com/docs)")
}

func TestConvert_CleanerFailureDegradesToRawInput(t *testing.T) {
	c := New(failingCleaner{})

	md, err := c.Convert(`<p>still converted</p>`)
	require.NoError(t, err)

	assert.Contains(t, md, "still converted")
}
