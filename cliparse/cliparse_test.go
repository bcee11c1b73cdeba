// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-test/deep"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"QUESTIONS", "BALLOT_SOURCE", "CHART_DIR", "PORT", "DATABASE_URL", "DATABASE_TYPE"} {
		t.Setenv(key, "")
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("QUESTIONS", "Best pizza, Best drink")
	t.Setenv("BALLOT_SOURCE", "responses.csv")
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if diff := deep.Equal(cfg.Questions, []string{"Best pizza", "Best drink"}); diff != nil {
		t.Error(diff)
	}
	if cfg.Source != "responses.csv" {
		t.Errorf("expected source from env, got %q", cfg.Source)
	}
	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default database type sqlite, got %q", cfg.DatabaseType)
	}
	if cfg.OutputDir != "." {
		t.Errorf("expected default output dir, got %q", cfg.OutputDir)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("QUESTIONS", "From env")
	t.Setenv("BALLOT_SOURCE", "env.csv")

	cfg, err := ParseFlags([]string{"-q", "Best pizza", "-q", "Best drink,Best dessert", "-s", "cli.csv", "-chart", "-verbose", "-o", "charts"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if diff := deep.Equal(cfg.Questions, []string{"Best pizza", "Best drink", "Best dessert"}); diff != nil {
		t.Error(diff)
	}
	if cfg.Source != "cli.csv" {
		t.Errorf("CLI should override env: expected cli.csv, got %q", cfg.Source)
	}
	if !cfg.Chart || !cfg.Verbose {
		t.Error("expected chart and verbose to be set")
	}
	if cfg.OutputDir != "charts" {
		t.Errorf("expected output dir charts, got %q", cfg.OutputDir)
	}
}

func TestParseFlags_EnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("QUESTIONS")
	os.Unsetenv("BALLOT_SOURCE")

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("QUESTIONS=Best pizza\nBALLOT_SOURCE=sheet:abc\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseFlags([]string{"-env", path})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Source != "sheet:abc" {
		t.Errorf("expected source from env file, got %q", cfg.Source)
	}
	if diff := deep.Equal(cfg.Questions, []string{"Best pizza"}); diff != nil {
		t.Error(diff)
	}
}

func TestParseFlags_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing questions", []string{"-s", "responses.csv"}},
		{"missing source", []string{"-q", "Best pizza"}},
		{"serve without database", []string{"-serve"}},
		{"unknown database type", []string{"-q", "Q", "-s", "x.csv", "-t", "mysql"}},
		{"bad flag", []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseFlags_Serve(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "file:results.db")

	cfg, err := ParseFlags([]string{"-serve", "-p", "8080"})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Serve || cfg.Port != 8080 || cfg.DatabaseURL != "file:results.db" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestParseFlags_InvalidPortEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-port")

	if _, err := ParseFlags([]string{"-q", "Q", "-s", "x.csv"}); err == nil {
		t.Error("expected error for invalid PORT")
	}
}
