// Package core defines the pipeline types and stage interfaces for chunkpipe.
// Each stage of the pipeline is a clean, testable interface.
package core

import "context"

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// Document is the result of one preprocessing run. It is recomputed per
// invocation and handed to a Renderer for display or serialization.
type Document struct {
	Source      string   `json:"source"`
	Original    string   `json:"-"`
	Normalized  string   `json:"normalized"`
	ChunkSize   int      `json:"chunk_size"`
	Chunks      []string `json:"chunks"`
	WordCount   int      `json:"word_count"`
	ChunkCount  int      `json:"chunk_count"`
	ProcessedAt string   `json:"processed_at"` // ISO8601
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor pulls the main content from raw HTML, stripping noise.
type Extractor interface {
	Extract(html string) (string, error)
}

// Converter turns cleaned HTML into Markdown before it enters the text pipeline.
type Converter interface {
	Convert(html string) (string, error)
}

// Renderer serializes a Document into a final output format.
type Renderer interface {
	Render(ctx context.Context, doc Document) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".txt", ".pdf").
	Extension() string
	// ContentType returns the MIME type used when the output is downloaded.
	ContentType() string
}

// Embedder generates a vector embedding for a text input.
type Embedder interface {
	Embed(ctx context.Context, text string, model string) ([]float64, error)
}
