package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/chunkpipe/core"
)

// MarkdownRenderer writes the chunks as an ordered Markdown list
// under a short summary header.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render builds the Markdown document.
func (r *MarkdownRenderer) Render(_ context.Context, doc core.Document) ([]byte, error) {
	var b strings.Builder
	b.WriteString("# Processed Chunks\n\n")
	if doc.Source != "" {
		fmt.Fprintf(&b, "- **Source:** %s\n", doc.Source)
	}
	fmt.Fprintf(&b, "- **Chunk Size:** %d\n", doc.ChunkSize)
	fmt.Fprintf(&b, "- **Word Count:** %d\n", doc.WordCount)
	fmt.Fprintf(&b, "- **Chunk Count:** %d\n", doc.ChunkCount)

	if len(doc.Chunks) > 0 {
		b.WriteString("\n")
	}
	for i, c := range doc.Chunks {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c)
	}
	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// ContentType returns the MIME type for Markdown output.
func (r *MarkdownRenderer) ContentType() string {
	return "text/markdown; charset=utf-8"
}
