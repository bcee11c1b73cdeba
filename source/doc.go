// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package source fetches form responses and cleans them into ballot tables.

# Sources

A Source returns raw rows with the header first:

	src, err := source.Open("responses.csv")            // FileSource
	src, err := source.Open("https://example.com/x.csv") // HTTPSource
	src, err := source.Open("sheet:1AbC...")            // link-shared Google Sheet

Records is the only blocking call in a tabulation run and honors its
context.

# Cleaning

Table selects the columns of one question and turns each cell into a rank:

	records, err := src.Records(ctx)
	table, err := source.Table(records, "Best pizza")

Rules:

  - a column belongs to the question when its header matches the question
    as a regular expression
  - the candidate name is the text inside the first [...] of the header
  - blank and "None" cells become ballot.Unranked
  - rows shorter than the header are padded with blanks
  - rows with no rank for any of the question's columns are dropped
  - "2" and "2.0" are both rank 2; anything else is ErrMalformedCell

A malformed cell fails the whole question. Tables cleans several questions
at once and reports failures per question.
*/
package source
