package web

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gaurav-prasanna/chunkpipe/core"
)

// Metrics counts processed documents on a private registry.
type Metrics struct {
	registry  *prometheus.Registry
	documents *prometheus.CounterVec
	chunks    prometheus.Counter
	words     prometheus.Histogram
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chunkpipe",
			Name:      "documents_processed_total",
			Help:      "Documents run through the preprocessing pipeline, by surface.",
		}, []string{"surface"}),
		chunks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chunkpipe",
			Name:      "chunks_produced_total",
			Help:      "Chunks produced across all documents.",
		}),
		words: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "chunkpipe",
			Name:      "document_words",
			Help:      "Word count of normalized documents.",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 8),
		}),
	}
	m.registry.MustRegister(
		m.documents,
		m.chunks,
		m.words,
		collectors.NewGoCollector(),
	)
	return m
}

// Observe records one processed document.
func (m *Metrics) Observe(surface string, doc core.Document) {
	m.documents.WithLabelValues(surface).Inc()
	m.chunks.Add(float64(doc.ChunkCount))
	m.words.Observe(float64(doc.WordCount))
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
