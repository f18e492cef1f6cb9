package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/chunkpipe/core"
)

func TestProcessCmd(t *testing.T) {
	t.Run("Should write processed_chunks.txt from --text", func(t *testing.T) {
		dir := t.TempDir()
		out, err := execute(t, "", "process",
			"--text", "Hello, World! This is   a TEST.",
			"--chunk_size", "3",
			"--output_dir", dir,
			"--print",
		)
		require.NoError(t, err)

		got, err := os.ReadFile(filepath.Join(dir, "processed_chunks.txt"))
		require.NoError(t, err)
		assert.Equal(t, "Chunk 1: hello world this\nChunk 2: is a test\n", string(got))

		assert.Contains(t, out, "Processed Chunks:\nChunk 1: hello world this\nChunk 2: is a test\n")
		assert.Contains(t, out, "Written: ")
		assert.Contains(t, out, "Word Count: 6  Chunk Count: 2  Chunk Size: 3")
	})

	t.Run("Should coerce an invalid chunk size to ten", func(t *testing.T) {
		dir := t.TempDir()
		out, err := execute(t, "", "process",
			"--text", "a b c d e f g h i j k l",
			"--chunk_size", "abc",
			"--output_dir", dir,
		)
		require.NoError(t, err)
		assert.Contains(t, out, "Chunk Size: 10")

		got, err := os.ReadFile(filepath.Join(dir, "processed_chunks.txt"))
		require.NoError(t, err)
		assert.Equal(t, "Chunk 1: a b c d e f g h i j\nChunk 2: k l\n", string(got))
	})

	t.Run("Should write an empty file for empty input", func(t *testing.T) {
		dir := t.TempDir()
		out, err := execute(t, "", "process", "--text", "", "--output_dir", dir)
		require.NoError(t, err)
		assert.Contains(t, out, "Word Count: 0  Chunk Count: 0")

		got, err := os.ReadFile(filepath.Join(dir, "processed_chunks.txt"))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Should read stdin when no file is given", func(t *testing.T) {
		dir := t.TempDir()
		_, err := execute(t, "One. Two! Three?", "process", "--chunk_size", "2", "--output_dir", dir)
		require.NoError(t, err)

		got, err := os.ReadFile(filepath.Join(dir, "processed_chunks.txt"))
		require.NoError(t, err)
		assert.Equal(t, "Chunk 1: one two\nChunk 2: three\n", string(got))
	})

	t.Run("Should read a file and name the output after it", func(t *testing.T) {
		dir := t.TempDir()
		in := filepath.Join(dir, "My Notes.txt")
		require.NoError(t, os.WriteFile(in, []byte("Alpha beta, gamma."), 0o644))

		_, err := execute(t, "", "process", in, "--json", "--name-from-source", "--output_dir", dir)
		require.NoError(t, err)

		raw, err := os.ReadFile(filepath.Join(dir, "My_Notes.json"))
		require.NoError(t, err)
		var doc core.Document
		require.NoError(t, json.Unmarshal(raw, &doc))
		assert.Equal(t, []string{"alpha beta gamma"}, doc.Chunks)
		assert.Equal(t, 3, doc.WordCount)
	})

	t.Run("Should process the main content of a URL", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html><body><nav>Menu</nav><main><h1>Deep Learning</h1><p>Is <b>revolutionizing</b> AI.</p></main></body></html>`))
		}))
		defer srv.Close()

		dir := t.TempDir()
		_, err := execute(t, "", "process", "--url", srv.URL+"/blog/post", "--chunk_size", "2", "--output_dir", dir)
		require.NoError(t, err)

		got, err := os.ReadFile(filepath.Join(dir, "processed_chunks.txt"))
		require.NoError(t, err)
		assert.Equal(t, "Chunk 1: deep learning\nChunk 2: is revolutionizing\nChunk 3: ai\n", string(got))
	})

	t.Run("Should embed chunks through the configured endpoint", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"embedding":[0.1,0.2]}`))
		}))
		defer srv.Close()
		t.Setenv("CHUNKPIPE_EMBEDDINGS_URL", srv.URL)

		dir := t.TempDir()
		_, err := execute(t, "", "process", "--text", "a b c", "--chunk_size", "2",
			"--embeddings", "--model", "nomic-embed-text", "--output_dir", dir)
		require.NoError(t, err)

		got, err := os.ReadFile(filepath.Join(dir, "processed_chunks.embeddings.txt"))
		require.NoError(t, err)
		assert.Contains(t, string(got), "--- chunk 2 ---\nTEXT:\nc\n")
		assert.Contains(t, string(got), "[0.1000, 0.2000]")
	})

	t.Run("Should write one file per discovered page with --all", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/" {
				http.NotFound(w, r)
				return
			}
			_, _ = w.Write([]byte(`<html><body><main><p>Home page</p><a href="/guide">Guide</a><a href="/gone">Gone</a></main></body></html>`))
		})
		mux.HandleFunc("/guide", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html><body><main><p>Guide text</p></main></body></html>`))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		dir := t.TempDir()
		out, err := execute(t, "", "process", "--url", srv.URL+"/", "--all", "--output_dir", dir)
		require.NoError(t, err)
		assert.Contains(t, out, "Discovered 3 pages")
		assert.Contains(t, out, "Processed 2 of 3 pages")

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("Should reject conflicting flags", func(t *testing.T) {
		tests := []struct {
			name string
			args []string
			want string
		}{
			{"two inputs", []string{"process", "file.txt", "--text", "x"}, "only one input"},
			{"two formats", []string{"process", "--text", "x", "--json", "--pdf"}, "only one output format"},
			{"bad url", []string{"process", "--url", "example.com"}, "invalid URL"},
			{"embeddings without model", []string{"process", "--text", "x", "--embeddings"}, "--model is required"},
			{"all without url", []string{"process", "--text", "x", "--all"}, "--all requires --url"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := execute(t, "", tt.args...)
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.want)
			})
		}
	})

	t.Run("Should report a missing input file", func(t *testing.T) {
		_, err := execute(t, "", "process", filepath.Join(t.TempDir(), "missing.txt"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

type stubFetcher struct {
	html string
	err  error
}

func (s stubFetcher) Fetch(_ context.Context, url string) (*core.FetchResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &core.FetchResult{URL: url, StatusCode: http.StatusOK, HTML: s.html}, nil
}

type stubStage struct {
	out string
	err error
}

func (s stubStage) Extract(string) (string, error) { return s.out, s.err }
func (s stubStage) Convert(string) (string, error) { return s.out, s.err }

func TestFetchText(t *testing.T) {
	t.Run("Should pass each stage's output to the next", func(t *testing.T) {
		md, err := fetchText(t.Context(), "https://example.com", stubFetcher{html: "<p>x</p>"}, stubStage{out: "<p>x</p>"}, stubStage{out: "x"})
		require.NoError(t, err)
		assert.Equal(t, "x", md)
	})

	t.Run("Should label the failing stage", func(t *testing.T) {
		boom := errors.New("boom")

		_, err := fetchText(t.Context(), "u", stubFetcher{err: boom}, stubStage{}, stubStage{})
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "fetch:")

		_, err = fetchText(t.Context(), "u", stubFetcher{}, stubStage{err: boom}, stubStage{})
		assert.Contains(t, err.Error(), "extract:")

		_, err = fetchText(t.Context(), "u", stubFetcher{}, stubStage{}, stubStage{err: boom})
		assert.Contains(t, err.Error(), "convert:")
	})
}
