// Package web serves the chunkpipe form UI, downloads and JSON API.
package web

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gaurav-prasanna/chunkpipe/logger"
)

// NewRouter creates the chi router with all routes and middleware.
func NewRouter(log logger.Logger, metrics *Metrics, maxBodyBytes int64) *chi.Mux {
	h := NewHandler(metrics)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(limitBody(maxBodyBytes))

	r.Get("/health", h.Health)
	r.Handle("/metrics", metrics.Handler())

	r.Get("/", h.Index)
	r.Post("/", h.Process)
	r.Post("/download", h.Download)

	r.Route("/api", func(r chi.Router) {
		r.Post("/chunks", h.APIChunks)
	})

	return r
}
