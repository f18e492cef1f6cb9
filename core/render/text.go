// Package render provides output renderers for chunk documents.
// This file implements the plain-text renderer, whose output is the
// processed_chunks.txt download format.
package render

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/gaurav-prasanna/chunkpipe/core"
)

// TextRenderer writes one "Chunk <i>: <text>" line per chunk.
type TextRenderer struct{}

// NewTextRenderer creates a TextRenderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Render returns the numbered chunk list, each line ending in '\n'.
// A document without chunks renders as empty output.
func (r *TextRenderer) Render(_ context.Context, doc core.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteNumbered(&buf, doc.Chunks); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for text output.
func (r *TextRenderer) Extension() string {
	return ".txt"
}

// ContentType returns the MIME type for text output.
func (r *TextRenderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// WriteNumbered writes chunks to w as 1-indexed "Chunk <i>: <text>" lines.
func WriteNumbered(w io.Writer, chunks []string) error {
	bw := bufio.NewWriter(w)
	for i, c := range chunks {
		if _, err := fmt.Fprintf(bw, "Chunk %d: %s\n", i+1, c); err != nil {
			return fmt.Errorf("writing chunk %d: %w", i+1, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing chunks: %w", err)
	}
	return nil
}
