// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"errors"
	"testing"

	"github.com/go-test/deep"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		rows       [][]int
		wantErr    error
	}{
		{"valid table", []string{"X", "Y"}, [][]int{{1, 2}, {2, 1}}, nil},
		{"unranked allowed", []string{"X", "Y"}, [][]int{{1, Unranked}}, nil},
		{"duplicate ranks allowed", []string{"X", "Y"}, [][]int{{1, 1}}, nil},
		{"no candidates", nil, [][]int{{1}}, ErrNoCandidates},
		{"empty name", []string{"X", ""}, [][]int{{1, 2}}, ErrNoCandidates},
		{"duplicate candidate", []string{"X", "X"}, [][]int{{1, 2}}, ErrDuplicateCandidate},
		{"no rows", []string{"X", "Y"}, nil, ErrEmptyTable},
		{"ragged row", []string{"X", "Y"}, [][]int{{1, 2}, {1}}, ErrRaggedRow},
		{"zero rank", []string{"X", "Y"}, [][]int{{0, 2}}, ErrInvalidRank},
		{"rank above sentinel", []string{"X", "Y"}, [][]int{{1, Unranked + 1}}, ErrInvalidRank},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := New(tt.candidates, tt.rows)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if table.Len() != len(tt.rows) {
				t.Errorf("expected %d voters, got %d", len(tt.rows), table.Len())
			}
			if table.Width() != len(tt.candidates) {
				t.Errorf("expected %d candidates, got %d", len(tt.candidates), table.Width())
			}
		})
	}
}

func TestTableIsImmutable(t *testing.T) {
	candidates := []string{"X", "Y"}
	rows := [][]int{{1, 2}}

	table, err := New(candidates, rows)
	if err != nil {
		t.Fatal(err)
	}

	candidates[0] = "changed"
	rows[0][0] = 7

	if table.Candidate(0) != "X" {
		t.Errorf("candidate changed through caller slice: %q", table.Candidate(0))
	}
	if table.Rank(0, 0) != 1 {
		t.Errorf("rank changed through caller slice: %d", table.Rank(0, 0))
	}

	row := table.Row(0)
	row[1] = 5
	if table.Rank(0, 1) != 2 {
		t.Errorf("rank changed through Row copy: %d", table.Rank(0, 1))
	}

	got := table.Candidates()
	got[1] = "changed"
	if diff := deep.Equal(table.Candidates(), []string{"X", "Y"}); diff != nil {
		t.Error(diff)
	}
}

func TestRankOf(t *testing.T) {
	table, err := New([]string{"X", "Y", "Z"}, [][]int{{3, 1, 2}})
	if err != nil {
		t.Fatal(err)
	}

	if got := table.RankOf(0, "Y"); got != 1 {
		t.Errorf("RankOf(Y) = %d, want 1", got)
	}
	if got := table.RankOf(0, "W"); got != Unranked {
		t.Errorf("RankOf(unknown) = %d, want %d", got, Unranked)
	}
	if got := table.Index("Z"); got != 2 {
		t.Errorf("Index(Z) = %d, want 2", got)
	}
	if got := table.Index("W"); got != -1 {
		t.Errorf("Index(unknown) = %d, want -1", got)
	}
}

func TestDigest(t *testing.T) {
	a, _ := New([]string{"X", "Y"}, [][]int{{1, 2}, {2, 1}})
	b, _ := New([]string{"X", "Y"}, [][]int{{1, 2}, {2, 1}})
	c, _ := New([]string{"X", "Y"}, [][]int{{2, 1}, {1, 2}})

	if a.Digest() != b.Digest() {
		t.Error("identical tables should share a digest")
	}
	if a.Digest() == c.Digest() {
		t.Error("reordered rows should change the digest")
	}
	if len(a.Digest()) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a.Digest()))
	}
}
