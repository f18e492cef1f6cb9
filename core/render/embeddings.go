// Package render — Embeddings renderer.
// Embeds each chunk through an Ollama-compatible embedding API and
// writes a human-readable .embeddings.txt file.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/gaurav-prasanna/chunkpipe/core"
)

const (
	// DefaultOllamaURL is the embeddings endpoint of a local Ollama server.
	DefaultOllamaURL = "http://localhost:11434/api/embeddings"
	// DefaultEmbeddingTimeout bounds a single embedding call.
	DefaultEmbeddingTimeout = 60 * time.Second

	embedMaxRetries = 2
	embedRetryBase  = 200 * time.Millisecond
)

var (
	// ErrNoChunks is returned when there is nothing to embed.
	ErrNoChunks = errors.New("no content to embed")
	// ErrNoModel is returned when no embedding model was configured.
	ErrNoModel = errors.New("embedding model is required")
)

// EmbeddingsRenderer embeds document chunks and renders the vectors.
type EmbeddingsRenderer struct {
	Model    string
	embedder core.Embedder
}

// NewEmbeddingsRenderer creates an EmbeddingsRenderer backed by embedder.
func NewEmbeddingsRenderer(model string, embedder core.Embedder) *EmbeddingsRenderer {
	return &EmbeddingsRenderer{Model: model, embedder: embedder}
}

// Render embeds every chunk in order and produces the .embeddings.txt body.
func (r *EmbeddingsRenderer) Render(ctx context.Context, doc core.Document) ([]byte, error) {
	if r.Model == "" {
		return nil, ErrNoModel
	}
	if len(doc.Chunks) == 0 {
		return nil, ErrNoChunks
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "# source: %s\n", doc.Source)
	fmt.Fprintf(&buf, "# model: %s\n", r.Model)
	fmt.Fprintf(&buf, "# chunk_size: %d\n\n", doc.ChunkSize)

	for i, text := range doc.Chunks {
		vec, err := r.embedder.Embed(ctx, text, r.Model)
		if err != nil {
			return nil, fmt.Errorf("embedding chunk %d: %w", i+1, err)
		}

		fmt.Fprintf(&buf, "--- chunk %d ---\n", i+1)
		fmt.Fprintf(&buf, "TEXT:\n%s\n\n", text)

		parts := make([]string, len(vec))
		for j, v := range vec {
			parts[j] = fmt.Sprintf("%.4f", v)
		}
		fmt.Fprintf(&buf, "VECTOR:\n[%s]\n\n", strings.Join(parts, ", "))
	}

	return []byte(buf.String()), nil
}

// Extension returns the file extension for embeddings output.
func (r *EmbeddingsRenderer) Extension() string {
	return ".embeddings.txt"
}

// ContentType returns the MIME type for embeddings output.
func (r *EmbeddingsRenderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// OllamaEmbedder calls an Ollama-compatible /api/embeddings endpoint.
type OllamaEmbedder struct {
	URL    string
	client *http.Client
}

// NewOllamaEmbedder creates an OllamaEmbedder. Zero values fall back to the defaults.
func NewOllamaEmbedder(url string, timeout time.Duration) *OllamaEmbedder {
	if url == "" {
		url = DefaultOllamaURL
	}
	if timeout <= 0 {
		timeout = DefaultEmbeddingTimeout
	}
	return &OllamaEmbedder{URL: url, client: &http.Client{Timeout: timeout}}
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaResponse struct {
	Embedding []float64 `json:"embedding"`
}

// Embed returns the embedding vector for text. Transport failures and 5xx
// answers are retried with exponential backoff; other statuses fail at once.
func (e *OllamaEmbedder) Embed(ctx context.Context, text string, model string) ([]float64, error) {
	body, err := json.Marshal(ollamaRequest{Model: model, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	var vec []float64
	backoff := retry.WithMaxRetries(embedMaxRetries, retry.NewExponential(embedRetryBase))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		v, retryable, err := e.post(ctx, body)
		if err != nil {
			if retryable {
				return retry.RetryableError(err)
			}
			return err
		}
		vec = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vec, nil
}

// post makes one embeddings call and reports whether a failure is worth retrying.
func (e *OllamaEmbedder) post(ctx context.Context, body []byte) ([]float64, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.URL, bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("calling embeddings API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, resp.StatusCode >= 500,
			fmt.Errorf("embeddings API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, false, fmt.Errorf("decoding embeddings response: %w", err)
	}
	return out.Embedding, false, nil
}
