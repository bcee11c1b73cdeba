// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ranked-choice/cliparse"
	"github.com/danielhkuo/ranked-choice/db"
	"github.com/danielhkuo/ranked-choice/middleware"
	"github.com/danielhkuo/ranked-choice/models"
	"github.com/danielhkuo/ranked-choice/trace"
)

type ResultsHandler struct {
	store *db.Store
	cfg   cliparse.Config
}

func NewResultsHandler(store *db.Store, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{store: store, cfg: cfg}
}

// ListSnapshots handles GET /snapshots
// Optional ?question= limits the list to one question
func (h *ResultsHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	question := r.URL.Query().Get("question")

	summaries, err := h.store.ListSnapshots(r.Context(), question)
	if err != nil {
		slog.Error("failed to list snapshots", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListSnapshotsResponse{
		Snapshots: summaries,
	})
}

// GetSnapshot handles GET /snapshots/:id
func (h *ResultsHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.load(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, snap)
}

// GetFlow handles GET /snapshots/:id/flow
// Returns the sankey nodes and links for the stored rounds
func (h *ResultsHandler) GetFlow(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.load(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, trace.Export(db.History(snap), snap.Question))
}

// GetChart handles GET /snapshots/:id/chart
// Renders the vote flow as a standalone Plotly page
func (h *ResultsHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.load(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	sink := trace.PlotlySink{W: w}
	if err := sink.Render(r.Context(), trace.Export(db.History(snap), snap.Question)); err != nil {
		slog.Error("failed to render chart", "snapshot_id", snap.ID, "error", err)
	}
}

// load fetches the snapshot named by the id path value, writing the error response on failure
func (h *ResultsHandler) load(w http.ResponseWriter, r *http.Request) (models.Snapshot, bool) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return models.Snapshot{}, false
	}

	snap, err := h.store.GetSnapshot(r.Context(), id)
	if errors.Is(err, db.ErrSnapshotNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Snapshot not found")
		return models.Snapshot{}, false
	}
	if err != nil {
		slog.Error("failed to query snapshot", "snapshot_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Snapshot{}, false
	}

	return snap, true
}
