package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/gaurav-prasanna/chunkpipe/core"
	"github.com/jung-kurt/gofpdf"
)

// PDFRenderer renders the chunk list as a PDF document using gofpdf.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render lays out a title, the counts, and one paragraph per chunk.
func (r *PDFRenderer) Render(_ context.Context, doc core.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle("Processed Chunks", true)
	pdf.AddPage()

	// Core fonts are cp1252; translate so accented words survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 8, "Processed Chunks", "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	if doc.Source != "" {
		pdf.MultiCell(0, 5, tr("Source: "+doc.Source), "", "L", false)
	}
	pdf.MultiCell(0, 5, fmt.Sprintf("Chunk size: %d   Word count: %d   Chunk count: %d",
		doc.ChunkSize, doc.WordCount, doc.ChunkCount), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	for i, c := range doc.Chunks {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(22, 5, fmt.Sprintf("Chunk %d:", i+1), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(c), "", "L", false)
		pdf.Ln(1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// ContentType returns the MIME type for PDF output.
func (r *PDFRenderer) ContentType() string {
	return "application/pdf"
}
