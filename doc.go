// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the ranked-choice command: instant-runoff tabulation
of ranked ballots collected by a form, with vote-flow charts.

Responses come from a CSV export, a published CSV URL, or a link-shared
Google Sheet. Each question is a pattern matched against the header row;
the matching columns are that question's candidates, named by the text
inside the first [...] of the header.

# Tabulating

Tabulate two questions from a local export:

	go run . -q "Best pizza" -q "Best drink" -s responses.csv

Or from a Google Sheet, writing a chart per question:

	go run . -q "Best pizza" -s sheet:<id> -chart -o charts/

For each question the winner (or a draw) and the final counts are printed.
With -verbose every elimination and transfer is logged. When a database is
configured each result is also stored as a snapshot. A failing question is
logged and the remaining questions still run; the exit status is then 1.

# Serving

	DATABASE_URL=results.db go run . -serve

Serves POST /tabulate and the stored snapshots; see package router.

# Configuration

  - QUESTIONS (-q): questions to tabulate, comma-separated
  - BALLOT_SOURCE (-s): CSV path, http(s) URL, or sheet:<id>
  - CHART_DIR (-o): chart directory (default: .)
  - DATABASE_URL (-d): snapshot database, required with -serve
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - PORT (-p): server port (default: 3318)

Values are also read from a .env file (-env).

# Architecture

  - ballot: immutable rank table
  - source: response fetching and cleaning
  - tabulate: elimination engine and result reporting
  - trace: vote-flow export and chart sinks
  - db: snapshot storage (SQLite or PostgreSQL)
  - handlers, router, middleware: HTTP API
  - models: request/response and snapshot types
  - cliparse: configuration parsing
*/
package main
