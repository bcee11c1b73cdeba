// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Questions: question patterns to tabulate (required unless serving)
  - Source: ballot source identifier (required unless serving)
  - Chart: write a vote-flow chart per question
  - Verbose: debug logging of eliminations and transfers
  - OutputDir: where charts are written (default: ".")
  - Serve: run the HTTP API
  - Port: Server listen port (default: 3318)
  - DatabaseURL: snapshot database (optional; required with Serve)
  - DatabaseType: sqlite or postgres (default: sqlite)

# CLI Flags

	-q        Question (repeatable or comma-separated)
	-s        Ballot source: CSV path, http(s) URL or sheet:<id>
	-chart    Write charts
	-verbose  Debug logging
	-o        Chart directory
	-serve    Serve the HTTP API
	-p        Server port
	-d        Database URL
	-t        Database type
	-env      Environment file (default: .env)

# Environment Variables

Flags fall back to environment variables:

	QUESTIONS     → -q
	BALLOT_SOURCE → -s
	CHART_DIR     → -o
	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t

Variables in the -env file are loaded first and never override variables
already set. CLI flags take precedence over both.

# Example

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	src, err := source.Open(cfg.Source)
	// ...
*/
package cliparse
