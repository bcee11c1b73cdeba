// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tabulate

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/danielhkuo/ranked-choice/ballot"
)

// ErrRoundBound is returned when a run produces more rounds than
// candidates minus one. It indicates an engine defect, not bad input.
var ErrRoundBound = errors.New("round count exceeds candidate bound")

// Assignment maps each voter (by row index) to the candidate currently
// credited with their ballot. An Assignment stored in a Round is never
// modified after the round is emitted.
type Assignment []string

// Clone returns an independent copy
func (a Assignment) Clone() Assignment {
	return append(Assignment(nil), a...)
}

// Candidates returns the distinct credited candidates in order of first appearance
func (a Assignment) Candidates() []string {
	return lo.Uniq(a)
}

// Count is the number of ballots credited to one candidate
type Count struct {
	Candidate string `json:"candidate"`
	Votes     int    `json:"votes"`
}

// Tally counts credited ballots per candidate, in order of first appearance
func (a Assignment) Tally() []Count {
	votes := lo.CountValues(a)
	return lo.Map(a.Candidates(), func(name string, _ int) Count {
		return Count{Candidate: name, Votes: votes[name]}
	})
}

// Round is one executed tabulation round
type Round struct {
	Index      int        `json:"round"`
	Assignment Assignment `json:"assignment"`
	// Eliminated is the candidate removed before this round; empty for round 0
	Eliminated string `json:"eliminated,omitempty"`
}

// Tally counts the round's credited ballots
func (r Round) Tally() []Count {
	return r.Assignment.Tally()
}

// Engine runs instant-runoff rounds over one ballot table.
// The engine is the only writer of its round history and only ever appends.
type Engine struct {
	table      *ballot.Table
	rounds     []Round
	eliminated []string
	out        map[string]bool
	left       map[int]bool
}

// NewEngine creates an engine for the table
func NewEngine(table *ballot.Table) *Engine {
	return &Engine{
		table: table,
		out:   make(map[string]bool),
		left:  make(map[int]bool),
	}
}

// Initialize computes round 0: every voter is credited to their
// minimum-rank candidate, the first in column order when ranks tie.
// Calling it again returns the existing round 0.
func (e *Engine) Initialize() Round {
	if len(e.rounds) > 0 {
		return e.rounds[0]
	}

	assignment := make(Assignment, e.table.Len())
	for v := range assignment {
		assignment[v] = e.topChoice(v)
	}

	round := Round{Index: 0, Assignment: assignment}
	e.rounds = append(e.rounds, round)
	return round
}

// Step eliminates one candidate and emits the next round.
// It returns the last round and false once the run is terminal: two or
// fewer candidates remain credited, or every credited candidate is tied
// on both tally and cumulative ranking so none can be singled out.
func (e *Engine) Step() (Round, bool) {
	e.Initialize()
	prev := e.rounds[len(e.rounds)-1]

	counts := prev.Tally()
	if len(counts) <= 2 {
		return prev, false
	}

	loser, ok := e.selectLoser(counts)
	if !ok {
		slog.Debug("no candidate can be eliminated", "round", prev.Index+1)
		return prev, false
	}

	e.out[loser] = true
	e.eliminated = append(e.eliminated, loser)
	slog.Debug("round loser", "round", prev.Index+1, "loser", loser)

	// Voters who gave the loser a first-place rank accumulate across
	// rounds and are re-resolved every round. Voters credited to the
	// loser without ranking it first join them.
	for v := 0; v < e.table.Len(); v++ {
		if e.table.RankOf(v, loser) == 1 || prev.Assignment[v] == loser {
			e.left[v] = true
		}
	}

	next := prev.Assignment.Clone()
	for v := 0; v < e.table.Len(); v++ {
		if !e.left[v] {
			continue
		}
		next[v] = e.topChoice(v)
		slog.Debug("vote goes to", "round", prev.Index+1, "voter", v, "candidate", next[v])
	}

	round := Round{Index: prev.Index + 1, Assignment: next, Eliminated: loser}
	e.rounds = append(e.rounds, round)
	return round, true
}

// selectLoser picks the candidate to eliminate from the credited counts.
// The pool is every candidate with the minimum tally; within it the highest
// rank sum over all ballots (worst overall ranking) loses, and remaining
// ties go to the first pool member in order of first appearance.
func (e *Engine) selectLoser(counts []Count) (string, bool) {
	fewest := lo.MinBy(counts, func(a, b Count) bool { return a.Votes < b.Votes }).Votes
	pool := lo.Filter(counts, func(c Count, _ int) bool { return c.Votes == fewest })

	loser, worst := pool[0].Candidate, e.rankSum(pool[0].Candidate)
	separable := false
	for _, c := range pool[1:] {
		sum := e.rankSum(c.Candidate)
		if sum != worst {
			separable = true
		}
		if sum > worst {
			loser, worst = c.Candidate, sum
		}
	}

	if len(pool) == len(counts) && len(pool) > 1 && !separable {
		return "", false
	}
	return loser, true
}

// rankSum adds the rank every voter gave the candidate, unranked included
func (e *Engine) rankSum(name string) int {
	c := e.table.Index(name)
	sum := 0
	for v := 0; v < e.table.Len(); v++ {
		sum += e.table.Rank(v, c)
	}
	return sum
}

// topChoice returns voter v's minimum-rank candidate among those not yet
// eliminated, taking the first in column order when ranks tie.
func (e *Engine) topChoice(v int) string {
	best, bestRank := "", ballot.Unranked+1
	for c := 0; c < e.table.Width(); c++ {
		name := e.table.Candidate(c)
		if e.out[name] {
			continue
		}
		if rank := e.table.Rank(v, c); rank < bestRank {
			best, bestRank = name, rank
		}
	}
	return best
}

// Eliminated returns the eliminated candidates in elimination order
func (e *Engine) Eliminated() []string {
	return append([]string(nil), e.eliminated...)
}

// History returns the rounds executed so far
func (e *Engine) History() *History {
	return &History{
		Candidates: e.table.Candidates(),
		Voters:     e.table.Len(),
		Rounds:     append([]Round(nil), e.rounds...),
		Eliminated: e.Eliminated(),
	}
}

// Run tabulates the table to completion
func Run(table *ballot.Table) (*History, error) {
	if table == nil || table.Len() == 0 {
		return nil, ballot.ErrEmptyTable
	}

	limit := table.Width() - 1
	if limit < 1 {
		limit = 1
	}

	e := NewEngine(table)
	e.Initialize()
	for {
		if _, ok := e.Step(); !ok {
			break
		}
		if len(e.rounds) > limit {
			return nil, fmt.Errorf("%w: %d rounds for %d candidates",
				ErrRoundBound, len(e.rounds), table.Width())
		}
	}

	return e.History(), nil
}

// History is the ordered record of one tabulation run
type History struct {
	Candidates []string `json:"candidates"`
	Voters     int      `json:"voters"`
	Rounds     []Round  `json:"rounds"`
	Eliminated []string `json:"eliminated"`
}

// Final returns the last executed round
func (h *History) Final() Round {
	return h.Rounds[len(h.Rounds)-1]
}

// Result reports the outcome of the final round
func (h *History) Result() (Result, error) {
	if h == nil || len(h.Rounds) == 0 {
		return Result{}, ErrNoVotes
	}
	return Report(h.Final())
}
