// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package source

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/danielhkuo/ranked-choice/ballot"
)

var (
	ErrNoData            = errors.New("no data found")
	ErrNoQuestionColumns = errors.New("no columns match question")
	ErrMalformedCell     = errors.New("malformed rank")
)

// candidatePattern extracts "Candidate" from headers like "Best pizza [Candidate]"
var candidatePattern = regexp.MustCompile(`\[(.+?)\]`)

// CandidateName returns the bracketed part of a form header, or the whole
// header when it has none
func CandidateName(header string) string {
	if m := candidatePattern.FindStringSubmatch(header); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(header)
}

// Table builds the ballot table for one question from raw records.
// The first record is the header. Columns whose header matches the
// question pattern become candidates; blank and "None" cells are unranked;
// rows with no rank for any of the question's columns are dropped.
func Table(records [][]string, question string) (*ballot.Table, error) {
	if len(records) == 0 {
		return nil, ErrNoData
	}

	pattern, err := regexp.Compile(question)
	if err != nil {
		return nil, fmt.Errorf("invalid question pattern %q: %w", question, err)
	}

	header := records[0]
	var columns []int
	var candidates []string
	for i, h := range header {
		if pattern.MatchString(h) {
			columns = append(columns, i)
			candidates = append(candidates, CandidateName(h))
		}
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoQuestionColumns, question)
	}

	var rows [][]int
	for r, record := range records[1:] {
		cells := lo.Map(columns, func(col int, _ int) string {
			if col < len(record) {
				return record[col]
			}
			return ""
		})
		if lo.EveryBy(cells, isBlank) {
			continue
		}

		row := make([]int, len(cells))
		for c, cell := range cells {
			rank, err := parseRank(cell)
			if err != nil {
				// +2: the header is sheet row 1
				return nil, fmt.Errorf("%w: row %d, column %q: %v",
					ErrMalformedCell, r+2, header[columns[c]], err)
			}
			row[c] = rank
		}
		rows = append(rows, row)
	}

	table, err := ballot.New(candidates, rows)
	if err != nil {
		return nil, fmt.Errorf("question %q: %w", question, err)
	}
	return table, nil
}

// Tables builds one table per question. Questions that fail are returned
// in the error map and left out of the table map.
func Tables(records [][]string, questions []string) (map[string]*ballot.Table, map[string]error) {
	tables := make(map[string]*ballot.Table)
	errs := make(map[string]error)
	for _, q := range questions {
		t, err := Table(records, q)
		if err != nil {
			errs[q] = err
			continue
		}
		tables[q] = t
	}
	return tables, errs
}

func isBlank(cell string) bool {
	cell = strings.TrimSpace(cell)
	return cell == "" || cell == "None"
}

// parseRank accepts integers and integral floats such as "2.0"
func parseRank(cell string) (int, error) {
	if isBlank(cell) {
		return ballot.Unranked, nil
	}
	cell = strings.TrimSpace(cell)

	if n, err := strconv.Atoi(cell); err == nil {
		return n, nil
	}

	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", cell)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a whole number", cell)
	}
	return int(f), nil
}
