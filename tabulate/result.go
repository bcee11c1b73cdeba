// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tabulate

import (
	"errors"
	"sort"

	"github.com/samber/lo"
)

// ErrNoVotes is returned when a round credits no ballots
var ErrNoVotes = errors.New("no votes to report")

// Result is the outcome of a final round
type Result struct {
	// Counts are sorted by votes, highest first
	Counts []Count `json:"counts"`
	// Leaders share the highest tally
	Leaders []string `json:"leaders"`
	// Winner is set only when exactly one candidate leads
	Winner string `json:"winner,omitempty"`
}

// IsTie reports whether more than one candidate shares the highest tally
func (r Result) IsTie() bool {
	return len(r.Leaders) > 1
}

// Report tallies the round and names the winner, or the tied leaders
func Report(final Round) (Result, error) {
	counts := final.Tally()
	if len(counts) == 0 {
		return Result{}, ErrNoVotes
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Votes > counts[j].Votes
	})

	top := counts[0].Votes
	leaders := lo.FilterMap(counts, func(c Count, _ int) (string, bool) {
		return c.Candidate, c.Votes == top
	})

	result := Result{Counts: counts, Leaders: leaders}
	if len(leaders) == 1 {
		result.Winner = leaders[0]
	}
	return result, nil
}
