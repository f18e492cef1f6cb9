// Package output handles file naming and writing for chunkpipe outputs.
// Files default to processed_chunks<ext>; with a URL or file source the
// base name can be derived from the source instead (e.g. example_com_docs.txt).
package output

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// DefaultBaseName is the file name (without extension) used for downloads
// and for inputs that carry no usable name.
const DefaultBaseName = "processed_chunks"

// ErrEmptyName is returned when Write is called without a file name.
var ErrEmptyName = errors.New("empty output file name")

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write stores data as OutputDir/name and returns the full path.
// The file is flushed and closed on every path; a close failure is
// reported when nothing failed before it.
func (w *Writer) Write(name string, data []byte) (path string, err error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrEmptyName
	}
	path = filepath.Join(w.OutputDir, filepath.Base(name))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing file %s: %w", path, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if _, err := bw.Write(data); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return "", fmt.Errorf("flushing file %s: %w", path, err)
	}
	return path, nil
}

// FilenameFor derives an output base name from an input source.
// URLs become host_path segments, file paths their base name without
// extension; inline text and stdin use DefaultBaseName.
//
//	https://example.com/docs/intro → example_com_docs_intro
//	notes/Meeting Notes.md         → Meeting_Notes
func FilenameFor(source string) string {
	source = strings.TrimSpace(source)
	if source == "" || source == "-" || source == "inline" || source == "stdin" {
		return DefaultBaseName
	}

	if parsed, err := url.Parse(source); err == nil && parsed.Scheme != "" && parsed.Host != "" {
		parts := []string{sanitize(parsed.Host)}
		if p := strings.Trim(parsed.Path, "/"); p != "" {
			for _, seg := range strings.Split(p, "/") {
				parts = append(parts, sanitize(seg))
			}
		}
		return strings.Join(parts, "_")
	}

	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if name := sanitize(base); strings.Trim(name, "_") != "" {
		return name
	}
	return DefaultBaseName
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
