// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/samber/lo"

	"github.com/danielhkuo/ranked-choice/ballot"
	"github.com/danielhkuo/ranked-choice/cliparse"
	"github.com/danielhkuo/ranked-choice/db"
	"github.com/danielhkuo/ranked-choice/middleware"
	"github.com/danielhkuo/ranked-choice/models"
	"github.com/danielhkuo/ranked-choice/tabulate"
	"github.com/danielhkuo/ranked-choice/trace"
)

// SourceAPI is recorded as the source of snapshots posted over HTTP
const SourceAPI = "api"

var ErrUnknownCandidate = errors.New("ballot ranks an unknown candidate")

type TabulateHandler struct {
	store *db.Store
	cfg   cliparse.Config
}

func NewTabulateHandler(store *db.Store, cfg cliparse.Config) *TabulateHandler {
	return &TabulateHandler{store: store, cfg: cfg}
}

// Tabulate handles POST /tabulate
// Runs elimination over the posted ballots and stores the result snapshot
func (h *TabulateHandler) Tabulate(w http.ResponseWriter, r *http.Request) {
	var req models.TabulateRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Question == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question is required")
		return
	}

	table, err := RequestTable(req)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	history, err := tabulate.Run(table)
	if err != nil {
		slog.Error("failed to tabulate", "question", req.Question, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to tabulate")
		return
	}

	snap, err := db.NewSnapshot(req.Question, SourceAPI, table, history)
	if err != nil {
		slog.Error("failed to build snapshot", "question", req.Question, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to tabulate")
		return
	}

	if err := h.store.SaveSnapshot(r.Context(), snap); err != nil {
		slog.Error("failed to save snapshot", "question", req.Question, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save results")
		return
	}

	slog.Info("tabulation stored",
		"snapshot_id", snap.ID,
		"question", snap.Question,
		"voters", snap.Voters,
		"rounds", len(snap.Rounds),
		"winner", snap.Winner,
	)

	message := "The final winner is " + snap.Winner
	if snap.Tie {
		message = "There is a draw"
	}

	middleware.JSONResponse(w, http.StatusCreated, models.TabulateResponse{
		Snapshot: snap,
		Flow:     trace.Export(history, snap.Question),
		Message:  message,
	})
}

// RequestTable builds a ballot table from posted ballots.
// Candidates a ballot leaves out are unranked.
func RequestTable(req models.TabulateRequest) (*ballot.Table, error) {
	rows := make([][]int, len(req.Ballots))
	for v, marks := range req.Ballots {
		row := make([]int, len(req.Candidates))
		for c := range row {
			row[c] = ballot.Unranked
		}
		for name, rank := range marks {
			c := lo.IndexOf(req.Candidates, name)
			if c < 0 {
				return nil, fmt.Errorf("ballot %d: %w: %q", v, ErrUnknownCandidate, name)
			}
			row[c] = rank
		}
		rows[v] = row
	}

	return ballot.New(req.Candidates, rows)
}
