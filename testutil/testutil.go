// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/ranked-choice/ballot"
	"github.com/danielhkuo/ranked-choice/cliparse"
	"github.com/danielhkuo/ranked-choice/db"
	"github.com/danielhkuo/ranked-choice/models"
	"github.com/danielhkuo/ranked-choice/tabulate"
)

// TestDBURL is an in-memory SQLite database, private to each store
const TestDBURL = ":memory:"

// SetupTestStore opens a fresh in-memory store with the full schema
func SetupTestStore(t *testing.T) *db.Store {
	t.Helper()

	store, err := db.Open(db.TypeSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  TestDBURL,
		DatabaseType: db.TypeSQLite,
		Serve:        true,
	}
}

// ThreeCandidateTable is the X/Y/Z table where Z is eliminated and X wins 3-2
func ThreeCandidateTable(t *testing.T) *ballot.Table {
	t.Helper()

	table, err := ballot.New([]string{"X", "Y", "Z"}, [][]int{
		{1, 2, 3},
		{1, 2, 3},
		{2, 1, 3},
		{2, 1, 3},
		{2, 3, 1},
	})
	if err != nil {
		t.Fatalf("Failed to build test table: %v", err)
	}
	return table
}

// CreateTestSnapshot tabulates the table and stores the snapshot
func CreateTestSnapshot(t *testing.T, store *db.Store, question string, table *ballot.Table) models.Snapshot {
	t.Helper()

	history, err := tabulate.Run(table)
	if err != nil {
		t.Fatalf("Failed to tabulate test table: %v", err)
	}

	snap, err := db.NewSnapshot(question, "test", table, history)
	if err != nil {
		t.Fatalf("Failed to build test snapshot: %v", err)
	}

	if err := store.SaveSnapshot(t.Context(), snap); err != nil {
		t.Fatalf("Failed to save test snapshot: %v", err)
	}

	return snap
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
