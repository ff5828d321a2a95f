// Package chunk splits text into bounded-size chunks for size-limited
// consumers. Splitting prefers paragraph boundaries, then sentence
// boundaries, and falls back to a hard split at rune boundaries so no
// chunk ever exceeds the requested size.
package chunk

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TextChunker implements core.Chunker.
type TextChunker struct{}

// New creates a TextChunker.
func New() *TextChunker {
	return &TextChunker{}
}

// Split breaks text into in-order chunks of at most maxSize bytes.
// A maxSize below utf8.UTFMax is an error: a chunk must be able to hold
// at least one rune, or the hard split could not honor the size bound.
// Empty input yields an empty sequence.
func (c *TextChunker) Split(text string, maxSize int) ([]string, error) {
	if maxSize < utf8.UTFMax {
		return nil, fmt.Errorf("chunk size must be at least %d bytes, got %d", utf8.UTFMax, maxSize)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}, nil
	}
	if len(text) <= maxSize {
		return []string{text}, nil
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			chunks = append(chunks, s)
		}
		current.Reset()
	}

	for _, para := range splitParagraphs(text) {
		pieces := []string{para}
		if len(para) > maxSize {
			pieces = splitSentences(para)
		}

		for _, piece := range pieces {
			if len(piece) > maxSize {
				// No natural break small enough: hard split.
				flush()
				chunks = append(chunks, hardSplit(piece, maxSize)...)
				continue
			}

			sep := 0
			if current.Len() > 0 {
				sep = 2 // joining "\n\n"
			}
			if current.Len()+sep+len(piece) > maxSize {
				flush()
			}
			if current.Len() > 0 {
				current.WriteString("\n\n")
			}
			current.WriteString(piece)
		}
	}
	flush()

	return chunks, nil
}

// splitParagraphs splits on blank lines, trimming each paragraph.
func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// splitSentences splits a paragraph on sentence-ending punctuation
// followed by whitespace.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		current.WriteRune(runes[i])

		if runes[i] == '.' || runes[i] == '?' || runes[i] == '!' {
			atEnd := i == len(runes)-1
			beforeSpace := !atEnd && (runes[i+1] == ' ' || runes[i+1] == '\n')
			if atEnd || beforeSpace {
				sentences = append(sentences, strings.TrimSpace(current.String()))
				current.Reset()
				if beforeSpace {
					i++
				}
			}
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// hardSplit cuts text at rune boundaries into pieces of at most maxSize
// bytes. Last resort when a single sentence exceeds the budget. Split
// guarantees maxSize >= utf8.UTFMax, so every rune fits in a fresh chunk
// and no empty chunk is ever emitted.
func hardSplit(text string, maxSize int) []string {
	var chunks []string
	var current strings.Builder

	for _, r := range text {
		if current.Len()+utf8.RuneLen(r) > maxSize {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
