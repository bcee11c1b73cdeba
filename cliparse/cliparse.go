package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Questions    []string
	Source       string
	Chart        bool
	Verbose      bool
	OutputDir    string
	Serve        bool
	Port         int
	DatabaseURL  string
	DatabaseType string
	EnvFile      string
}

// questionList collects repeated or comma-separated -q values
type questionList []string

func (q *questionList) String() string {
	return strings.Join(*q, ",")
}

func (q *questionList) Set(value string) error {
	*q = append(*q, splitQuestions(value)...)
	return nil
}

func splitQuestions(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseFlags validates flags and fills unset values from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var questions questionList

	fs := flag.NewFlagSet("ranked-choice", flag.ContinueOnError)

	// Tabulation
	fs.Var(&questions, "q", "Question to tabulate (repeatable or comma-separated)")
	fs.StringVar(&cfg.Source, "s", "", "Ballot source: CSV path, http(s) URL or sheet:<id>")
	fs.BoolVar(&cfg.Chart, "chart", false, "Write a vote-flow chart per question")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Log each elimination and transfer")
	fs.StringVar(&cfg.OutputDir, "o", "", "Directory for charts")

	// Server and storage (can be CLI args or env)
	fs.BoolVar(&cfg.Serve, "serve", false, "Serve the HTTP API instead of tabulating")
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.EnvFile, "env", ".env", "Environment file, skipped when missing")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", cfg.EnvFile, err)
		}
	}

	// Fall back to environment variables
	cfg.Questions = questions
	if len(cfg.Questions) == 0 {
		cfg.Questions = splitQuestions(os.Getenv("QUESTIONS"))
	}
	if cfg.Source == "" {
		cfg.Source = os.Getenv("BALLOT_SOURCE")
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = os.Getenv("CHART_DIR")
		if cfg.OutputDir == "" {
			cfg.OutputDir = "."
		}
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.Serve {
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required to serve (use -d or DATABASE_URL env)")
		}
		return cfg, nil
	}

	if len(cfg.Questions) == 0 {
		return Config{}, errors.New("at least one question required (use -q or QUESTIONS env)")
	}
	if cfg.Source == "" {
		return Config{}, errors.New("ballot source required (use -s or BALLOT_SOURCE env)")
	}

	return cfg, nil
}
