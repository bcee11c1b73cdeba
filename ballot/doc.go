// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ballot holds the in-memory ballot table for one question.

# Table

Rows are voters, columns are candidates, and each cell is a rank
(1 = most preferred) or Unranked:

	table, err := ballot.New(
		[]string{"X", "Y", "Z"},
		[][]int{
			{1, 2, 3},
			{2, 1, ballot.Unranked},
		},
	)

New copies its input; the returned Table never changes.

# Ranks

Ranks within one ballot need not be unique or contiguous. Consumers that
search for a voter's top choice take the first qualifying candidate in
column order when ranks repeat.

# Validation

New returns a wrapped sentinel error when:

  - there are no candidates (ErrNoCandidates)
  - a candidate name repeats (ErrDuplicateCandidate)
  - there are no rows (ErrEmptyTable)
  - a row is not as wide as the candidate list (ErrRaggedRow)
  - a rank is below 1 or above Unranked (ErrInvalidRank)

# Digest

Digest fingerprints the table so a stored result can be matched to the
ballots it was computed from.
*/
package ballot
