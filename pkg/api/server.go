// Package api exposes the file builder over HTTP: build sessions for
// drafting files batch by batch, finalization, and access to the archive of
// finished files. Requests authenticate with an X-API-Key header; Prometheus
// metrics are served unauthenticated on /metrics.
package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/finforge/nacha/pkg/archive"
)

// StartServer starts the HTTP server with all routes configured
func StartServer(fileArchive *archive.Archive, config ServerConfig) error {
	// Initialize metrics
	metrics := NewMetrics()

	server := NewServer(fileArchive, config, metrics)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API key authentication middleware for protected routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(requireAPIKey(config.APIKey, metrics))

		// Health check
		r.Get("/health", metrics.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))

		// Build sessions
		r.Post("/files", metrics.InstrumentHandler("POST", "/api/v1/files", server.handleCreateFile))
		r.Get("/files", metrics.InstrumentHandler("GET", "/api/v1/files", server.handleListFiles))
		r.Get("/files/{id}", metrics.InstrumentHandler("GET", "/api/v1/files/{id}", server.handleGetFile))
		r.Delete("/files/{id}", metrics.InstrumentHandler("DELETE", "/api/v1/files/{id}", server.handleDeleteFile))
		r.Post("/files/{id}/batches", metrics.InstrumentHandler("POST", "/api/v1/files/{id}/batches", server.handleCreateBatch))
		r.Post("/files/{id}/batches/{batch}/entries", metrics.InstrumentHandler("POST", "/api/v1/files/{id}/batches/{batch}/entries", server.handleAddEntry))
		r.Post("/files/{id}/finalize", metrics.InstrumentHandler("POST", "/api/v1/files/{id}/finalize", server.handleFinalizeFile))
		r.Get("/files/{id}/text", metrics.InstrumentHandler("GET", "/api/v1/files/{id}/text", server.handleGetFileText))

		// Archive
		r.Get("/archive", metrics.InstrumentHandler("GET", "/api/v1/archive", server.handleListArchive))
		r.Get("/archive/{id}", metrics.InstrumentHandler("GET", "/api/v1/archive/{id}", server.handleGetArchived))
		r.Delete("/archive/{id}", metrics.InstrumentHandler("DELETE", "/api/v1/archive/{id}", server.handleDeleteArchived))
	})

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	log.Printf("Starting API server on %s", addr)
	return http.ListenAndServe(addr, r)
}
