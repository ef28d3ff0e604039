// Package bills implements the bill domain for Tally: bill records, their
// lifecycle status, and heuristic policy classification of bill text.
package bills

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Bill types.
const (
	TypeGovernment          = "GOVERNMENT"
	TypePrivateMember       = "PRIVATE_MEMBER"
	TypePrivate             = "PRIVATE"
	TypeSenateGovernment    = "SENATE_GOVERNMENT"
	TypeSenatePrivateMember = "SENATE_PRIVATE_MEMBER"
)

// Bill statuses.
const (
	StatusIntroduced    = "INTRODUCED"
	StatusFirstReading  = "FIRST_READING"
	StatusSecondReading = "SECOND_READING"
	StatusCommittee     = "COMMITTEE"
	StatusReportStage   = "REPORT_STAGE"
	StatusThirdReading  = "THIRD_READING"
	StatusSenate        = "SENATE"
	StatusRoyalAssent   = "ROYAL_ASSENT"
	StatusDefeated      = "DEFEATED"
	StatusWithdrawn     = "WITHDRAWN"
)

// billCode matches a chamber-prefixed bill code like C-5 or S-8.
var billCode = regexp.MustCompile(`\b([CS]-\d+)\b`)

// Bill represents a parliamentary bill with its classification state.
type Bill struct {
	ID                       uuid.UUID  `json:"id"`
	Number                   string     `json:"number"`
	ParliamentID             uuid.UUID  `json:"parliament_id"`
	ParliamentNumber         int        `json:"parliament_number"`
	Session                  int        `json:"session"`
	Subject                  string     `json:"subject"`
	Summary                  string     `json:"summary"`
	BillType                 *string    `json:"bill_type"`
	SponsorID                *uuid.UUID `json:"sponsor_id"`
	Status                   string     `json:"status"`
	IntroducedDate           *time.Time `json:"introduced_date"`
	LastActivityDate         *time.Time `json:"last_activity_date"`
	URL                      string     `json:"url"`
	PolicyTags               []string   `json:"policy_tags"`
	PrimaryPolicyArea        string     `json:"primary_policy_area"`
	ClassificationConfidence *float64   `json:"classification_confidence"`
	AutoClassified           bool       `json:"auto_classified"`
	ClassifiedAt             *time.Time `json:"classified_at"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
}

// Active reports whether the bill is still moving through parliament.
func (b *Bill) Active() bool {
	switch b.Status {
	case StatusRoyalAssent, StatusDefeated, StatusWithdrawn:
		return false
	}
	return true
}

// UpsertCommand carries the data for creating or refreshing a bill record.
// Records are keyed by (parliament, session, number).
type UpsertCommand struct {
	Number           string     `json:"number"`
	ParliamentNumber int        `json:"parliament_number"`
	Session          int        `json:"session"`
	Subject          string     `json:"subject"`
	Summary          string     `json:"summary"`
	BillType         *string    `json:"bill_type"`
	SponsorID        *uuid.UUID `json:"sponsor_id"`
	Status           string     `json:"status"`
	IntroducedDate   *time.Time `json:"introduced_date"`
	LastActivityDate *time.Time `json:"last_activity_date"`
	URL              string     `json:"url"`
}

// BatchResult reports the outcome of classifying a single bill within a batch.
type BatchResult struct {
	BillID  uuid.UUID `json:"bill_id"`
	Number  string    `json:"number"`
	Primary string    `json:"primary_policy_area,omitempty"`
	Error   string    `json:"error,omitempty"`
}

// ExtractCode pulls the first chamber-prefixed bill code (C-5, S-8) out of
// free text, uppercased. Returns "" when no code is present.
func ExtractCode(s string) string {
	return billCode.FindString(strings.ToUpper(s))
}

// BillURL derives the LEGISinfo page address from the bill's code and
// parliamentary context. Numbers without a recognizable code yield "".
func BillURL(base, number string, parliament, session int) string {
	match := billCode.FindString(strings.ToUpper(number))
	if match == "" || parliament < 1 || session < 1 {
		return ""
	}
	return fmt.Sprintf("%s/legisinfo/en/bill/%d-%d/%s", strings.TrimSuffix(base, "/"), parliament, session, strings.ToLower(match))
}
