package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gaurav-prasanna/chunkpipe/core/chunk"
	"github.com/gaurav-prasanna/chunkpipe/core/output"
	"github.com/gaurav-prasanna/chunkpipe/core/preprocess"
	"github.com/gaurav-prasanna/chunkpipe/core/render"
	"github.com/gaurav-prasanna/chunkpipe/logger"
)

// Handler serves the form page, downloads and the JSON API.
type Handler struct {
	metrics *Metrics
}

// NewHandler creates a Handler that records into metrics.
func NewHandler(metrics *Metrics) *Handler {
	return &Handler{metrics: metrics}
}

// Index renders the empty form.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.writePage(w, r, pageData{ChunkSize: chunk.DefaultSize})
}

// Process runs the submitted text and re-renders the form with results.
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.formError(w, r, err)
		return
	}
	text := r.PostFormValue("text")
	size := chunk.ParseSize(r.PostFormValue("chunk_size"))

	doc := preprocess.Run("form", text, size)
	h.metrics.Observe("form", doc)

	h.writePage(w, r, pageData{
		Text:      text,
		ChunkSize: doc.ChunkSize,
		Submitted: true,
		Doc:       doc,
	})
}

// Download sends the processed chunks as an attachment.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.formError(w, r, err)
		return
	}
	doc := preprocess.Run("form", r.PostFormValue("text"), chunk.ParseSize(r.PostFormValue("chunk_size")))
	h.metrics.Observe("download", doc)

	format, _ := render.ParseFormat(r.PostFormValue("format"))
	if format == render.FormatEmbeddings {
		format = render.FormatText
	}
	renderer := render.ForFormat(format)

	data, err := renderer.Render(r.Context(), doc)
	if err != nil {
		internalError(w, r, fmt.Errorf("rendering %s download: %w", format, err))
		return
	}

	filename := output.DefaultBaseName + renderer.Extension()
	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// chunkRequest is the JSON API request body. ChunkSize accepts a number,
// a numeric string, or nothing.
type chunkRequest struct {
	Text      string          `json:"text"`
	ChunkSize json.RawMessage `json:"chunk_size"`
}

// APIChunks is the JSON variant of Process.
func (h *Handler) APIChunks(w http.ResponseWriter, r *http.Request) {
	var req chunkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	doc := preprocess.Run("api", req.Text, chunk.ParseSize(strings.Trim(string(req.ChunkSize), `"`)))
	h.metrics.Observe("api", doc)

	data, err := render.NewJSONRenderer().Render(r.Context(), doc)
	if err != nil {
		internalError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (h *Handler) writePage(w http.ResponseWriter, r *http.Request, data pageData) {
	body, err := renderIndex(data)
	if err != nil {
		internalError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *Handler) formError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		return
	}
	logger.FromContext(r.Context()).Warn("bad form submission", "error", err)
	http.Error(w, "bad request", http.StatusBadRequest)
}

// internalError logs err and answers with a generic 500.
func internalError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContext(r.Context()).Error("request failed", "path", r.URL.Path, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
