// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db stores tabulation snapshots.

Ballots are never stored. A snapshot records the outcome of one
tabulation, every round of it, and the digest of the ballot table it was
computed from.

# Opening a Store

	store, err := db.Open("sqlite", "file:results.db")
	store, err := db.Open("postgres", "postgres://...")

Open pings the database and creates the schema.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - tabulation: one row per snapshot, result payload as JSON
  - tabulation_round: one row per executed round

# Relationships

	tabulation 1──* tabulation_round

# Queries

Queries are written with $N placeholders and rewritten to ? for SQLite.
Each placeholder must appear once, in order.
*/
package db
