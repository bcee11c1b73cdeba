// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/ranked-choice/models"
)

// Database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

var placeholder = regexp.MustCompile(`\$\d+`)

// Store persists tabulation snapshots
type Store struct {
	db     *sql.DB
	dbType string
}

// NewStore wraps an open connection. dbType selects the placeholder style.
func NewStore(db *sql.DB, dbType string) *Store {
	return &Store{db: db, dbType: dbType}
}

// Open connects, verifies the connection and creates the schema
func Open(dbType, url string) (*Store, error) {
	switch dbType {
	case TypeSQLite, TypePostgres:
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(dbType, url)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if dbType == TypeSQLite {
		// One writer; also keeps :memory: databases on a single connection
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := CreateSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return NewStore(conn, dbType), nil
}

// DB returns the underlying connection
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) rebind(query string) string {
	if s.dbType != TypeSQLite {
		return query
	}
	return placeholder.ReplaceAllString(query, "?")
}

// payload is the part of a snapshot stored as JSON on the tabulation row
type payload struct {
	Candidates []string                `json:"candidates"`
	Leaders    []string                `json:"leaders"`
	Counts     []models.CandidateCount `json:"counts"`
	Eliminated []string                `json:"eliminated"`
}

// SaveSnapshot stores a snapshot and all of its rounds in one transaction
func (s *Store) SaveSnapshot(ctx context.Context, snap models.Snapshot) error {
	body, err := json.Marshal(payload{
		Candidates: snap.Candidates,
		Leaders:    snap.Leaders,
		Counts:     snap.Counts,
		Eliminated: snap.Eliminated,
	})
	if err != nil {
		return fmt.Errorf("failed to encode snapshot payload: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, s.rebind(`
		INSERT INTO tabulation (id, question, source, method, inputs_hash, voters, winner, tie, computed_at, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`), snap.ID, snap.Question, nullString(snap.Source), snap.Method, snap.InputsHash,
		snap.Voters, nullString(snap.Winner), snap.Tie, snap.ComputedAt, string(body))
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	for _, round := range snap.Rounds {
		counts, err := json.Marshal(round.Counts)
		if err != nil {
			return fmt.Errorf("failed to encode round %d counts: %w", round.Round, err)
		}
		assignment, err := json.Marshal(round.Assignment)
		if err != nil {
			return fmt.Errorf("failed to encode round %d assignment: %w", round.Round, err)
		}

		_, err = tx.ExecContext(ctx, s.rebind(`
			INSERT INTO tabulation_round (tabulation_id, round, eliminated, counts, assignment)
			VALUES ($1, $2, $3, $4, $5)
		`), snap.ID, round.Round, nullString(round.Eliminated), string(counts), string(assignment))
		if err != nil {
			return fmt.Errorf("failed to insert round %d: %w", round.Round, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetSnapshot loads a snapshot with its rounds
func (s *Store) GetSnapshot(ctx context.Context, id string) (models.Snapshot, error) {
	var snap models.Snapshot
	var src, winner sql.NullString
	var body string

	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT id, question, source, method, inputs_hash, voters, winner, tie, computed_at, payload
		FROM tabulation
		WHERE id = $1
	`), id).Scan(
		&snap.ID, &snap.Question, &src, &snap.Method, &snap.InputsHash,
		&snap.Voters, &winner, &snap.Tie, &snap.ComputedAt, &body,
	)
	if err == sql.ErrNoRows {
		return models.Snapshot{}, ErrSnapshotNotFound
	}
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to query snapshot: %w", err)
	}
	snap.Source = src.String
	snap.Winner = winner.String

	var p payload
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to parse snapshot payload: %w", err)
	}
	snap.Candidates = p.Candidates
	snap.Leaders = p.Leaders
	snap.Counts = p.Counts
	snap.Eliminated = p.Eliminated

	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT round, eliminated, counts, assignment
		FROM tabulation_round
		WHERE tabulation_id = $1
		ORDER BY round
	`), id)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to query rounds: %w", err)
	}
	defer rows.Close()

	snap.Rounds = []models.RoundRecord{}
	for rows.Next() {
		var round models.RoundRecord
		var eliminated sql.NullString
		var counts, assignment string
		if err := rows.Scan(&round.Round, &eliminated, &counts, &assignment); err != nil {
			return models.Snapshot{}, fmt.Errorf("failed to scan round: %w", err)
		}
		round.Eliminated = eliminated.String
		if err := json.Unmarshal([]byte(counts), &round.Counts); err != nil {
			return models.Snapshot{}, fmt.Errorf("failed to parse round %d counts: %w", round.Round, err)
		}
		if err := json.Unmarshal([]byte(assignment), &round.Assignment); err != nil {
			return models.Snapshot{}, fmt.Errorf("failed to parse round %d assignment: %w", round.Round, err)
		}
		snap.Rounds = append(snap.Rounds, round)
	}

	return snap, rows.Err()
}

// ListSnapshots returns summaries, newest first. An empty question lists all.
func (s *Store) ListSnapshots(ctx context.Context, question string) ([]models.SnapshotSummary, error) {
	query := `
		SELECT id, question, computed_at, voters, winner, tie
		FROM tabulation`
	var args []any
	if question != "" {
		query += ` WHERE question = $1`
		args = append(args, question)
	}
	query += ` ORDER BY computed_at DESC, id`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	summaries := []models.SnapshotSummary{}
	for rows.Next() {
		var sum models.SnapshotSummary
		var winner sql.NullString
		if err := rows.Scan(&sum.ID, &sum.Question, &sum.ComputedAt, &sum.Voters, &winner, &sum.Tie); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		sum.Winner = winner.String
		summaries = append(summaries, sum)
	}

	return summaries, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
