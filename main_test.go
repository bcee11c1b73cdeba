package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danielhkuo/ranked-choice/cliparse"
	"github.com/danielhkuo/ranked-choice/db"
)

const responsesCSV = `Timestamp,Lunch [Pizza],Lunch [Sushi],Lunch [Tacos],Coin [Heads],Coin [Tails]
2024-01-01,1,2,3,1,2
2024-01-02,1,3,2,2,1
2024-01-03,2,1,3,,
2024-01-04,3,2,1,,
2024-01-05,2,1,,,
`

func writeResponses(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "responses.csv")
	if err := os.WriteFile(path, []byte(responsesCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	cfg := cliparse.Config{
		Questions:    []string{"Lunch", "Coin"},
		Source:       writeResponses(t),
		Chart:        true,
		OutputDir:    dir,
		DatabaseURL:  filepath.Join(dir, "results.db"),
		DatabaseType: db.TypeSQLite,
	}

	var out bytes.Buffer
	if err := run(t.Context(), cfg, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	text := out.String()
	// Tacos out first; its voter moves to Sushi
	if !strings.Contains(text, "The final winner is… Sushi!") {
		t.Errorf("expected Sushi to win Lunch, got:\n%s", text)
	}
	if !strings.Contains(text, "There is a draw") {
		t.Errorf("expected a draw for Coin, got:\n%s", text)
	}
	if strings.Index(text, "Lunch") > strings.Index(text, "Coin") {
		t.Error("questions should print in the order given")
	}

	for _, q := range cfg.Questions {
		if _, err := os.Stat(chartPath(dir, q)); err != nil {
			t.Errorf("expected chart for %s: %v", q, err)
		}
	}

	store, err := db.Open(db.TypeSQLite, cfg.DatabaseURL)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	summaries, err := store.ListSnapshots(t.Context(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 2 {
		t.Errorf("expected 2 stored snapshots, got %d", len(summaries))
	}
}

func TestRunContinuesAfterFailure(t *testing.T) {
	cfg := cliparse.Config{
		Questions: []string{"Dessert", "Lunch"},
		Source:    writeResponses(t),
		OutputDir: t.TempDir(),
	}

	var out bytes.Buffer
	err := run(t.Context(), cfg, &out)
	if !errors.Is(err, errQuestionsFailed) {
		t.Fatalf("expected errQuestionsFailed, got %v", err)
	}
	if !strings.Contains(out.String(), "The final winner is… Sushi!") {
		t.Errorf("expected Lunch to still be tabulated, got:\n%s", out.String())
	}
}

func TestRunMissingSource(t *testing.T) {
	cfg := cliparse.Config{
		Questions: []string{"Lunch"},
		Source:    filepath.Join(t.TempDir(), "missing.csv"),
	}
	if err := run(t.Context(), cfg, &bytes.Buffer{}); err == nil {
		t.Error("expected error for missing source")
	}
}

func TestChartPath(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"Lunch", "Lunch.html"},
		{"Best pizza?", "Best_pizza_.html"},
		{"a/b", "a_b.html"},
	}
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			if got := chartPath("out", tt.question); got != filepath.Join("out", tt.want) {
				t.Errorf("chartPath(%q) = %q, want %q", tt.question, got, filepath.Join("out", tt.want))
			}
		})
	}
}
