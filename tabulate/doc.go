// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tabulate implements single-winner instant-runoff tabulation.

# Running a Tabulation

	history, err := tabulate.Run(table)
	if err != nil {
		return err
	}
	result, err := history.Result()

Run calls Engine.Initialize for round 0 and then Engine.Step until the
run is terminal. Each round records which candidate every voter's ballot
is credited to.

# Round 0

Every voter is credited to their minimum-rank candidate. When several
candidates share the minimum, the first in column order wins. This is a
known limitation: a voter who ranks two candidates first is counted for
whichever column comes first, regardless of intent.

# Elimination

Each step:

 1. Tallies the previous round. If two or fewer candidates are credited,
    the previous round is final.
 2. Collects the candidates with the fewest votes (the elimination pool).
 3. Eliminates the pool member with the highest rank sum across all
    ballots, unranked cells included. Remaining ties go to the pool member
    credited earliest in voter order.
 4. Re-resolves every voter who ranked any eliminated candidate first (this
    set accumulates across rounds), plus every voter credited to the new
    loser, to their best remaining candidate. Other voters keep their
    credit.

When every credited candidate is in the pool and all of them share the
same rank sum, no candidate can be singled out and the run stops with a
tie.

Ballots never exhaust: once every ranked candidate is gone, the
unranked sentinel makes the first remaining column the voter's choice.

# Bounds

A run over C candidates executes at most C-1 rounds. Exceeding that
returns ErrRoundBound, which signals an engine defect.

# Results

Report tallies a round and returns the sole leader as Winner, or every
leader when the top tally is shared:

	if result.IsTie() {
		fmt.Println("There is a draw", result.Leaders)
	}
*/
package tabulate
