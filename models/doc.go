// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and stored result types.

# Request Types

  - TabulateRequest: question, candidates, ballots ([]map[string]int)

# Response Types

  - TabulateResponse: snapshot, vote flow, message
  - ListSnapshotsResponse: snapshots
  - ErrorResponse: error, message

# Domain Types

  - Snapshot: immutable record of one tabulation, with every round
  - SnapshotSummary: list entry for a snapshot
  - RoundRecord: one round's eliminated candidate, counts and assignment
  - CandidateCount: ballots credited to a candidate

# Constants

Tabulation method:

	MethodIRV = "irv"
*/
package models
