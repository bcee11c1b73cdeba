// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Unranked marks a candidate the voter did not rank.
// It is greater than any valid rank so min-based searches treat it as least preferred.
const Unranked = 99

var (
	ErrNoCandidates       = errors.New("ballot table has no candidates")
	ErrEmptyTable         = errors.New("ballot table has no ballots")
	ErrDuplicateCandidate = errors.New("duplicate candidate")
	ErrRaggedRow          = errors.New("ballot row width does not match candidates")
	ErrInvalidRank        = errors.New("invalid rank")
)

// Table is one question's ballots: rows are voters, columns are candidates.
// A Table is immutable once built.
type Table struct {
	candidates []string
	index      map[string]int
	rows       [][]int
}

// New validates and copies the given candidates and rows into a Table
func New(candidates []string, rows [][]int) (*Table, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	index := make(map[string]int, len(candidates))
	for i, name := range candidates {
		if name == "" {
			return nil, fmt.Errorf("candidate %d: empty name: %w", i, ErrNoCandidates)
		}
		if _, ok := index[name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCandidate, name)
		}
		index[name] = i
	}

	if len(rows) == 0 {
		return nil, ErrEmptyTable
	}

	copied := make([][]int, len(rows))
	for v, row := range rows {
		if len(row) != len(candidates) {
			return nil, fmt.Errorf("voter %d has %d ranks for %d candidates: %w",
				v, len(row), len(candidates), ErrRaggedRow)
		}
		for c, rank := range row {
			if rank < 1 || rank > Unranked {
				return nil, fmt.Errorf("voter %d, candidate %q: rank %d: %w",
					v, candidates[c], rank, ErrInvalidRank)
			}
		}
		copied[v] = append([]int(nil), row...)
	}

	return &Table{
		candidates: append([]string(nil), candidates...),
		index:      index,
		rows:       copied,
	}, nil
}

// Candidates returns the candidate names in column order
func (t *Table) Candidates() []string {
	return append([]string(nil), t.candidates...)
}

// Len returns the number of voters
func (t *Table) Len() int {
	return len(t.rows)
}

// Width returns the number of candidates
func (t *Table) Width() int {
	return len(t.candidates)
}

// Candidate returns the name of the candidate in column c
func (t *Table) Candidate(c int) string {
	return t.candidates[c]
}

// Index returns the column of the named candidate, or -1
func (t *Table) Index(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// Rank returns the rank voter v gave to the candidate in column c
func (t *Table) Rank(v, c int) int {
	return t.rows[v][c]
}

// RankOf returns the rank voter v gave to the named candidate.
// Unknown candidates are reported as Unranked.
func (t *Table) RankOf(v int, name string) int {
	c := t.Index(name)
	if c < 0 {
		return Unranked
	}
	return t.rows[v][c]
}

// Row returns a copy of voter v's ranks in column order
func (t *Table) Row(v int) []int {
	return append([]int(nil), t.rows[v]...)
}

// Rows returns a copy of every row
func (t *Table) Rows() [][]int {
	rows := make([][]int, len(t.rows))
	for v := range t.rows {
		rows[v] = t.Row(v)
	}
	return rows
}

// Digest returns a hex sha256 over the candidate names and every rank.
// Two tables with the same columns and rows in the same order share a digest.
func (t *Table) Digest() string {
	h := sha256.New()
	h.Write([]byte(strings.Join(t.candidates, "\x1f")))
	h.Write([]byte{'\n'})
	for _, row := range t.rows {
		for c, rank := range row {
			if c > 0 {
				h.Write([]byte{','})
			}
			h.Write([]byte(strconv.Itoa(rank)))
		}
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
