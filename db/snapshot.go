// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/danielhkuo/ranked-choice/ballot"
	"github.com/danielhkuo/ranked-choice/models"
	"github.com/danielhkuo/ranked-choice/tabulate"
)

// NewSnapshot records a finished tabulation of table
func NewSnapshot(question, src string, table *ballot.Table, history *tabulate.History) (models.Snapshot, error) {
	result, err := history.Result()
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to report result: %w", err)
	}

	rounds := lo.Map(history.Rounds, func(r tabulate.Round, _ int) models.RoundRecord {
		return models.RoundRecord{
			Round:      r.Index,
			Eliminated: r.Eliminated,
			Counts:     toCounts(r.Tally()),
			Assignment: r.Assignment.Clone(),
		}
	})

	return models.Snapshot{
		ID:         uuid.NewString(),
		Question:   question,
		Source:     src,
		Method:     models.MethodIRV,
		ComputedAt: time.Now().UTC().Truncate(time.Microsecond),
		InputsHash: table.Digest(),
		Candidates: history.Candidates,
		Voters:     history.Voters,
		Winner:     result.Winner,
		Tie:        result.IsTie(),
		Leaders:    result.Leaders,
		Counts:     toCounts(result.Counts),
		Eliminated: history.Eliminated,
		Rounds:     rounds,
	}, nil
}

// History rebuilds the round history stored in a snapshot
func History(snap models.Snapshot) *tabulate.History {
	return &tabulate.History{
		Candidates: snap.Candidates,
		Voters:     snap.Voters,
		Eliminated: snap.Eliminated,
		Rounds: lo.Map(snap.Rounds, func(r models.RoundRecord, _ int) tabulate.Round {
			return tabulate.Round{
				Index:      r.Round,
				Assignment: tabulate.Assignment(r.Assignment),
				Eliminated: r.Eliminated,
			}
		}),
	}
}

func toCounts(counts []tabulate.Count) []models.CandidateCount {
	return lo.Map(counts, func(c tabulate.Count, _ int) models.CandidateCount {
		return models.CandidateCount{Candidate: c.Candidate, Votes: c.Votes}
	})
}
