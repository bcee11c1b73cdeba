// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-test/deep"

	"github.com/danielhkuo/ranked-choice/ballot"
	"github.com/danielhkuo/ranked-choice/models"
	"github.com/danielhkuo/ranked-choice/testutil"
)

func threeCandidateRequest() models.TabulateRequest {
	return models.TabulateRequest{
		Question:   "Favourite colour",
		Candidates: []string{"X", "Y", "Z"},
		Ballots: []map[string]int{
			{"X": 1, "Y": 2, "Z": 3},
			{"X": 1, "Y": 2, "Z": 3},
			{"X": 2, "Y": 1, "Z": 3},
			{"X": 2, "Y": 1, "Z": 3},
			{"X": 2, "Y": 3, "Z": 1},
		},
	}
}

func TestTabulate(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewTabulateHandler(store, testutil.GetTestConfig())

	req := testutil.MakeRequest("POST", "/tabulate", threeCandidateRequest(), nil)
	w := httptest.NewRecorder()

	handler.Tabulate(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.TabulateResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Snapshot.Winner != "X" {
		t.Errorf("Expected winner X, got %q", resp.Snapshot.Winner)
	}
	if resp.Snapshot.Tie {
		t.Error("Expected no tie")
	}
	if resp.Message != "The final winner is X" {
		t.Errorf("Unexpected message %q", resp.Message)
	}
	if diff := deep.Equal(resp.Snapshot.Eliminated, []string{"Z"}); diff != nil {
		t.Errorf("Eliminated mismatch: %v", diff)
	}
	if len(resp.Snapshot.Rounds) != 2 {
		t.Fatalf("Expected 2 rounds, got %d", len(resp.Snapshot.Rounds))
	}
	if resp.Flow.Rounds != 2 {
		t.Errorf("Expected flow over 2 rounds, got %d", resp.Flow.Rounds)
	}

	// Snapshot must be persisted
	stored, err := store.GetSnapshot(t.Context(), resp.Snapshot.ID)
	if err != nil {
		t.Fatalf("Snapshot not stored: %v", err)
	}
	if stored.Source != SourceAPI {
		t.Errorf("Expected source %q, got %q", SourceAPI, stored.Source)
	}
	if diff := deep.Equal(stored.Counts, resp.Snapshot.Counts); diff != nil {
		t.Errorf("Stored counts mismatch: %v", diff)
	}
}

func TestTabulate_Draw(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewTabulateHandler(store, testutil.GetTestConfig())

	body := models.TabulateRequest{
		Question:   "Coin flip",
		Candidates: []string{"Heads", "Tails"},
		Ballots: []map[string]int{
			{"Heads": 1, "Tails": 2},
			{"Heads": 2, "Tails": 1},
		},
	}
	w := httptest.NewRecorder()
	handler.Tabulate(w, testutil.MakeRequest("POST", "/tabulate", body, nil))

	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.TabulateResponse
	testutil.AssertJSON(t, w, &resp)

	if !resp.Snapshot.Tie {
		t.Error("Expected a draw")
	}
	if resp.Snapshot.Winner != "" {
		t.Errorf("Expected no winner, got %q", resp.Snapshot.Winner)
	}
	if resp.Message != "There is a draw" {
		t.Errorf("Unexpected message %q", resp.Message)
	}
}

func TestTabulate_BadRequests(t *testing.T) {
	store := testutil.SetupTestStore(t)
	handler := NewTabulateHandler(store, testutil.GetTestConfig())

	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", `{invalid`},
		{"missing question", `{"candidates":["X"],"ballots":[{"X":1}]}`},
		{"no candidates", `{"question":"Q","candidates":[],"ballots":[{}]}`},
		{"no ballots", `{"question":"Q","candidates":["X","Y"],"ballots":[]}`},
		{"unknown candidate", `{"question":"Q","candidates":["X","Y"],"ballots":[{"W":1}]}`},
		{"rank out of range", `{"question":"Q","candidates":["X","Y"],"ballots":[{"X":0}]}`},
		{"duplicate candidate", `{"question":"Q","candidates":["X","X"],"ballots":[{"X":1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/tabulate", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.Tabulate(w, req)

			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}

	summaries, err := store.ListSnapshots(t.Context(), "")
	if err != nil {
		t.Fatalf("Failed to list snapshots: %v", err)
	}
	if len(summaries) != 0 {
		t.Errorf("Expected no stored snapshots, got %d", len(summaries))
	}
}

func TestRequestTable(t *testing.T) {
	table, err := RequestTable(models.TabulateRequest{
		Candidates: []string{"X", "Y", "Z"},
		Ballots: []map[string]int{
			{"Y": 1},
			{"X": 2, "Z": 1},
		},
	})
	if err != nil {
		t.Fatalf("RequestTable failed: %v", err)
	}

	expected := [][]int{
		{ballot.Unranked, 1, ballot.Unranked},
		{2, ballot.Unranked, 1},
	}
	if diff := deep.Equal(table.Rows(), expected); diff != nil {
		t.Errorf("Rows mismatch: %v", diff)
	}

	_, err = RequestTable(models.TabulateRequest{
		Candidates: []string{"X"},
		Ballots:    []map[string]int{{"Q": 1}},
	})
	if !errors.Is(err, ErrUnknownCandidate) {
		t.Errorf("Expected ErrUnknownCandidate, got %v", err)
	}
}
