package render

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/chunkpipe/core"
)

// JSONRenderer produces the structured JSON form of a document.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals the document. Chunks is always an array, never null.
func (r *JSONRenderer) Render(_ context.Context, doc core.Document) ([]byte, error) {
	if doc.Chunks == nil {
		doc.Chunks = []string{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// ContentType returns the MIME type for JSON output.
func (r *JSONRenderer) ContentType() string {
	return "application/json"
}
