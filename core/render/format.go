package render

import (
	"strings"

	"github.com/gaurav-prasanna/chunkpipe/core"
)

// Format names an output renderer.
type Format string

const (
	FormatText       Format = "txt"
	FormatMarkdown   Format = "md"
	FormatJSON       Format = "json"
	FormatPDF        Format = "pdf"
	FormatEmbeddings Format = "embeddings"
)

// ParseFormat maps user input to a Format. Unknown or empty input
// yields FormatText and false.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "txt", "text":
		return FormatText, true
	case "md", "markdown":
		return FormatMarkdown, true
	case "json":
		return FormatJSON, true
	case "pdf":
		return FormatPDF, true
	case "embeddings":
		return FormatEmbeddings, true
	default:
		return FormatText, false
	}
}

// ForFormat returns the renderer for f. Embeddings need a model and an
// endpoint, so they are built with NewEmbeddingsRenderer instead and
// ForFormat falls back to text for them.
func ForFormat(f Format) core.Renderer {
	switch f {
	case FormatMarkdown:
		return NewMarkdownRenderer()
	case FormatJSON:
		return NewJSONRenderer()
	case FormatPDF:
		return NewPDFRenderer()
	default:
		return NewTextRenderer()
	}
}
