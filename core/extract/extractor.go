// Package extract implements the Extractor interface.
// It narrows a fetched page down to the element that holds its prose,
// so menus and scripts do not end up as words in the chunk output.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoContent is returned when the page has no usable content container.
var ErrNoContent = errors.New("no content container found in HTML")

// containers are tried in order; the first match wins.
var containers = []string{"main", "article", "[role=main]", "body"}

// noise holds selectors whose text never belongs in the output.
var noise = []string{
	"script", "style", "noscript", "template",
	"nav", "footer", "header", "aside",
	"img", "picture", "figure", "svg", "canvas",
	"iframe", "video", "audio",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement", ".cookie-banner",
}

// HTMLExtractor strips noise from HTML and returns the main content fragment.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract parses html and returns the outer HTML of its main content container.
func (e *HTMLExtractor) Extract(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	doc.Find(strings.Join(noise, ", ")).Remove()

	for _, sel := range containers {
		found := doc.Find(sel)
		if found.Length() == 0 {
			continue
		}
		out, err := goquery.OuterHtml(found.First())
		if err != nil {
			return "", fmt.Errorf("serializing %s: %w", sel, err)
		}
		return out, nil
	}
	return "", ErrNoContent
}
