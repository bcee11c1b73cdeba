package models

import (
	"time"

	"github.com/danielhkuo/ranked-choice/trace"
)

// Tabulation method constants
const (
	MethodIRV = "irv"
)

// Request types

// Each ballot maps candidate name -> rank (1 = most preferred).
// Candidates missing from a ballot are unranked.
type TabulateRequest struct {
	Question   string           `json:"question"`
	Candidates []string         `json:"candidates"`
	Ballots    []map[string]int `json:"ballots"`
}

// Response types

type TabulateResponse struct {
	Snapshot Snapshot   `json:"snapshot"`
	Flow     trace.Flow `json:"flow"`
	Message  string     `json:"message"`
}

type ListSnapshotsResponse struct {
	Snapshots []SnapshotSummary `json:"snapshots"`
}

// Domain types

type CandidateCount struct {
	Candidate string `json:"candidate"`
	Votes     int    `json:"votes"`
}

type RoundRecord struct {
	Round      int              `json:"round"`
	Eliminated string           `json:"eliminated,omitempty"`
	Counts     []CandidateCount `json:"counts"`
	Assignment []string         `json:"assignment"` // voter index -> credited candidate
}

type Snapshot struct {
	ID         string           `json:"id"`
	Question   string           `json:"question"`
	Source     string           `json:"source,omitempty"`
	Method     string           `json:"method"`
	ComputedAt time.Time        `json:"computed_at"`
	InputsHash string           `json:"inputs_hash"` // Digest of the ballot table
	Candidates []string         `json:"candidates"`
	Voters     int              `json:"voters"`
	Winner     string           `json:"winner,omitempty"`
	Tie        bool             `json:"tie"`
	Leaders    []string         `json:"leaders"`
	Counts     []CandidateCount `json:"counts"`
	Eliminated []string         `json:"eliminated"`
	Rounds     []RoundRecord    `json:"rounds"`
}

type SnapshotSummary struct {
	ID         string    `json:"id"`
	Question   string    `json:"question"`
	ComputedAt time.Time `json:"computed_at"`
	Voters     int       `json:"voters"`
	Winner     string    `json:"winner,omitempty"`
	Tie        bool      `json:"tie"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
