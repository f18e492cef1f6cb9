package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/gaurav-prasanna/chunkpipe/core"
	"github.com/gaurav-prasanna/chunkpipe/core/render"
)

//go:embed templates/*.html
var templateFS embed.FS

var indexTemplate = template.Must(
	template.New("index.html").Funcs(sprig.FuncMap()).ParseFS(templateFS, "templates/index.html"),
)

// downloadFormats are offered in the download drop-down, default first.
var downloadFormats = []string{
	string(render.FormatText),
	string(render.FormatMarkdown),
	string(render.FormatJSON),
	string(render.FormatPDF),
}

// pageData is the view model for the form page.
type pageData struct {
	Text      string
	ChunkSize int
	Submitted bool
	Doc       core.Document
	Formats   []string
}

func renderIndex(data pageData) ([]byte, error) {
	data.Formats = downloadFormats
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing index template: %w", err)
	}
	return buf.Bytes(), nil
}
