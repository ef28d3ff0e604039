// Package votes implements the vote domain for Tally: recorded divisions,
// per-member ballots, party tallies, and ideological vote classification.
package votes

import (
	"time"

	"github.com/google/uuid"
)

// Vote types.
const (
	TypeRecorded = "RECORDED"
	TypeVoice    = "VOICE"
	TypeStanding = "STANDING"
)

// Vote results.
const (
	ResultAgreed    = "AGREED"
	ResultNegatived = "NEGATIVED"
	ResultTie       = "TIE"
)

// VoteRecord represents one parliamentary vote with its aggregate counts
// and classification state.
type VoteRecord struct {
	ID               uuid.UUID  `json:"id"`
	VoteNumber       int        `json:"vote_number"`
	ParliamentID     uuid.UUID  `json:"parliament_id"`
	ParliamentNumber int        `json:"parliament_number"`
	Session          int        `json:"session"`
	Subject          string     `json:"subject"`
	VoteType         string     `json:"vote_type"`
	Result           string     `json:"result"`
	VoteDate         *time.Time `json:"vote_date"`
	BillID           *uuid.UUID `json:"bill_id"`
	YeaCount         int        `json:"yea_count"`
	NayCount         int        `json:"nay_count"`
	PairedCount      int        `json:"paired_count"`
	AbsentCount      int        `json:"absent_count"`
	Classification   string     `json:"classification"`
	ClassifiedAt     *time.Time `json:"classified_at"`
	PolicyTags       []string   `json:"policy_tags"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Ballot represents one member's recorded choice on a vote.
type Ballot struct {
	ID           uuid.UUID `json:"id"`
	VoteRecordID uuid.UUID `json:"vote_record_id"`
	MemberID     uuid.UUID `json:"member_id"`
	MemberName   string    `json:"member_name"`
	Party        string    `json:"party"`
	Choice       string    `json:"choice"`
	CreatedAt    time.Time `json:"created_at"`
}

// UpsertCommand carries the data for creating or refreshing a vote record.
// Records are keyed by (parliament, session, vote_number).
type UpsertCommand struct {
	VoteNumber       int        `json:"vote_number"`
	ParliamentNumber int        `json:"parliament_number"`
	Session          int        `json:"session"`
	Subject          string     `json:"subject"`
	VoteType         string     `json:"vote_type"`
	Result           string     `json:"result"`
	VoteDate         *time.Time `json:"vote_date"`
	YeaCount         int        `json:"yea_count"`
	NayCount         int        `json:"nay_count"`
	PairedCount      int        `json:"paired_count"`
	AbsentCount      int        `json:"absent_count"`
}

// BallotCommand records one member's choice on a vote.
type BallotCommand struct {
	MemberID uuid.UUID `json:"member_id"`
	Choice   string    `json:"choice"`
}

// LinkReport summarizes a bill-linking pass over vote subjects.
type LinkReport struct {
	Scanned int `json:"scanned"`
	Linked  int `json:"linked"`
}
