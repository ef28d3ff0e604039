// Package members implements the member-of-parliament domain for Tally.
// It provides types, data access, and business logic for MP records:
// identity, party affiliation, constituency, and service status.
package members

import (
	"time"

	"github.com/google/uuid"
)

// Party codes recognized for members. Affiliations outside the known
// federal parties map to PartyOther.
const (
	PartyCPC   = "CPC"
	PartyLPC   = "LPC"
	PartyNDP   = "NDP"
	PartyBQ    = "BQ"
	PartyGP    = "GP"
	PartyPPC   = "PPC"
	PartyInd   = "IND"
	PartyOther = "OTHER"
)

// Member statuses.
const (
	StatusActive   = "ACTIVE"
	StatusFormer   = "FORMER"
	StatusDeceased = "DECEASED"
)

// Member represents a member of parliament.
type Member struct {
	ID                   uuid.UUID  `json:"id"`
	Name                 string     `json:"name"`
	HonourificTitle      string     `json:"honourific_title"`
	PoliticalAffiliation string     `json:"political_affiliation"`
	PartyCode            string     `json:"party_code"`
	Constituency         string     `json:"constituency"`
	Province             string     `json:"province"`
	Status               string     `json:"status"`
	FirstElected         *time.Time `json:"first_elected"`
	LastActive           *time.Time `json:"last_active"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// UpsertCommand carries the data for creating or refreshing a member
// record. Records are keyed by (name, constituency); ingestion re-runs
// update affiliation and status in place.
type UpsertCommand struct {
	Name                 string     `json:"name"`
	HonourificTitle      string     `json:"honourific_title"`
	PoliticalAffiliation string     `json:"political_affiliation"`
	PartyCode            string     `json:"party_code"`
	Constituency         string     `json:"constituency"`
	Province             string     `json:"province"`
	Status               string     `json:"status"`
	FirstElected         *time.Time `json:"first_elected"`
	LastActive           *time.Time `json:"last_active"`
}

// PartyCodeFor maps a full political affiliation to its party code.
func PartyCodeFor(affiliation string) string {
	switch affiliation {
	case "Conservative Party of Canada", "Conservative":
		return PartyCPC
	case "Liberal Party of Canada", "Liberal":
		return PartyLPC
	case "New Democratic Party", "NDP":
		return PartyNDP
	case "Bloc Québécois":
		return PartyBQ
	case "Green Party of Canada", "Green Party":
		return PartyGP
	case "People's Party of Canada":
		return PartyPPC
	case "Independent":
		return PartyInd
	default:
		return PartyOther
	}
}
