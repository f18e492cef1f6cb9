// Package preprocess runs raw text through the core pipeline:
// normalize → chunk, and packages the result as a core.Document.
package preprocess

import (
	"strings"
	"time"

	"github.com/gaurav-prasanna/chunkpipe/core"
	"github.com/gaurav-prasanna/chunkpipe/core/chunk"
	"github.com/gaurav-prasanna/chunkpipe/core/normalize"
)

// Run normalizes raw and splits it into chunks of size words.
// A size below 1 is replaced with chunk.DefaultSize.
func Run(source, raw string, size int) core.Document {
	size = chunk.Clamp(size)
	normalized := normalize.Normalize(raw)
	chunks := chunk.New(size).Chunk(normalized)
	if chunks == nil {
		chunks = []string{}
	}

	return core.Document{
		Source:      source,
		Original:    raw,
		Normalized:  normalized,
		ChunkSize:   size,
		Chunks:      chunks,
		WordCount:   len(strings.Fields(normalized)),
		ChunkCount:  len(chunks),
		ProcessedAt: time.Now().UTC().Format(time.RFC3339),
	}
}
