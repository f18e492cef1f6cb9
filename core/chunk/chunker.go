// Package chunk splits normalized text into fixed-size word windows.
// Uses a simple whitespace tokenizer. Chunks never overlap.
package chunk

import (
	"strconv"
	"strings"
)

// DefaultSize is the chunk size used when none, or an invalid one, is given.
const DefaultSize = 10

// Chunker splits text into fixed-size word chunks.
type Chunker struct {
	ChunkSize int // number of words per chunk
}

// New creates a Chunker with the given chunk size.
// Defaults to DefaultSize if chunkSize < 1.
func New(chunkSize int) *Chunker {
	return &Chunker{ChunkSize: Clamp(chunkSize)}
}

// Chunk splits the input text into slices of at most ChunkSize words.
// Each chunk is a contiguous block of words joined by single spaces;
// only the last chunk may be shorter. Empty input yields no chunks.
func (c *Chunker) Chunk(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	size := Clamp(c.ChunkSize)
	chunks := make([]string, 0, Count(len(words), size))
	for i := 0; i < len(words); i += size {
		end := min(i+size, len(words))
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}

// Count returns how many chunks wordCount words produce at the given size.
func Count(wordCount, size int) int {
	if wordCount <= 0 {
		return 0
	}
	size = Clamp(size)
	return (wordCount + size - 1) / size
}

// Clamp returns size, or DefaultSize when size < 1.
func Clamp(size int) int {
	if size < 1 {
		return DefaultSize
	}
	return size
}

// ParseSize converts user input into an effective chunk size.
// Missing, non-numeric, or non-positive values yield DefaultSize.
func ParseSize(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return DefaultSize
	}
	return Clamp(n)
}
