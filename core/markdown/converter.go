// Package markdown implements the Converter interface.
// It turns extracted HTML into Markdown so fetched pages enter the
// text pipeline in the same shape as pasted text.
package markdown

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// HTMLConverter converts HTML to Markdown using html-to-markdown.
type HTMLConverter struct{}

// New creates an HTMLConverter.
func New() *HTMLConverter {
	return &HTMLConverter{}
}

// Convert converts a cleaned HTML fragment into Markdown.
func (c *HTMLConverter) Convert(html string) (string, error) {
	md, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return md, nil
}
