package stances

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/openparl/tally/classify"
)

// Summary is a member's computed leanings across policy areas. Stances
// are keyed by area name and derived from the member's recorded ballots
// at request time; nothing is persisted.
type Summary struct {
	MemberID   uuid.UUID                        `json:"member_id"`
	MemberName string                           `json:"member_name,omitempty"`
	Party      string                           `json:"party,omitempty"`
	Stances    map[string]classify.StanceResult `json:"stances"`
}

// CompareCommand selects the members and policy areas for a comparison.
type CompareCommand struct {
	MemberIDs []uuid.UUID `json:"member_ids"`
	Areas     []string    `json:"areas"`
}

// Comparison holds per-member stance summaries over a shared area list.
type Comparison struct {
	Areas   []string  `json:"areas"`
	Members []Summary `json:"members"`
}

var (
	ErrNotFound = errors.New("member not found")
	ErrInvalid  = errors.New("invalid stance request")
)

// MapHTTPStatus translates stance errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalid) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
