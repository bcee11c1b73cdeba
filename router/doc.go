// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the ranked-choice API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, cfg)

# Endpoints

Health:

	GET /health

Tabulation:

	POST /tabulate - Run elimination over posted ballots, store the snapshot

Stored results:

	GET /snapshots?question=    - List snapshots, newest first
	GET /snapshots/{id}         - One snapshot with every round
	GET /snapshots/{id}/flow    - Sankey nodes and links
	GET /snapshots/{id}/chart   - Standalone Plotly page

# Handler Initialization

The router creates handler instances with dependency injection:

	tabulateHandler := handlers.NewTabulateHandler(store, cfg)
	resultsHandler := handlers.NewResultsHandler(store, cfg)

All handlers receive the snapshot store and configuration.
*/
package router
