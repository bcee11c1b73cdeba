// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the ranked-choice API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - TabulateHandler: runs elimination over posted ballots
  - ResultsHandler: lists and serves stored snapshots

Handlers are created via constructor functions that accept *db.Store and Config:

	tabulateHandler := handlers.NewTabulateHandler(store, cfg)

# Tabulation

A request names the question, the candidates in column order, and one
map of candidate to rank per ballot:

	POST /tabulate
	{"question": "Lunch", "candidates": ["Pizza", "Sushi"],
	 "ballots": [{"Pizza": 1, "Sushi": 2}, {"Sushi": 1}]}

Candidates a ballot leaves out are unranked (ballot.Unranked). Unknown
candidate names, out-of-range ranks, and empty tables are rejected with
400. The response carries the stored snapshot and its vote flow.

Ballots are never stored; the snapshot keeps the inputs hash.

# Results

	GET /snapshots             → ListSnapshots (optional ?question=)
	GET /snapshots/{id}        → GetSnapshot
	GET /snapshots/{id}/flow   → GetFlow (trace.Flow)
	GET /snapshots/{id}/chart  → GetChart (HTML)

Unknown snapshot IDs return 404.
*/
package handlers
