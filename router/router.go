// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/ranked-choice/cliparse"
	"github.com/danielhkuo/ranked-choice/db"
	"github.com/danielhkuo/ranked-choice/handlers"
	"github.com/danielhkuo/ranked-choice/middleware"
)

func NewRouter(store *db.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	tabulateHandler := handlers.NewTabulateHandler(store, cfg)
	resultsHandler := handlers.NewResultsHandler(store, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Tabulation
	mux.HandleFunc("POST /tabulate", middleware.WithLogging(tabulateHandler.Tabulate))

	// Stored results
	mux.HandleFunc("GET /snapshots", middleware.WithLogging(resultsHandler.ListSnapshots))
	mux.HandleFunc("GET /snapshots/{id}", middleware.WithLogging(resultsHandler.GetSnapshot))
	mux.HandleFunc("GET /snapshots/{id}/flow", middleware.WithLogging(resultsHandler.GetFlow))
	mux.HandleFunc("GET /snapshots/{id}/chart", middleware.WithLogging(resultsHandler.GetChart))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ranked-choice API v1"))
	})

	return mux
}
