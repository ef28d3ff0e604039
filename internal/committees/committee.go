// Package committees implements the committee domain for Tally:
// parliamentary committees and their member rosters.
package committees

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Committee types.
const (
	TypeStanding = "STANDING"
	TypeSpecial  = "SPECIAL"
	TypeJoint    = "JOINT"
	TypeOther    = "OTHER"
)

// Committee member roles.
const (
	RoleChair     = "CHAIR"
	RoleViceChair = "VICE_CHAIR"
	RoleMember    = "MEMBER"
	RoleAssociate = "ASSOCIATE"
)

// Committee represents a parliamentary committee.
type Committee struct {
	ID            uuid.UUID `json:"id"`
	Acronym       string    `json:"acronym"`
	Name          string    `json:"name"`
	CommitteeType string    `json:"committee_type"`
	URL           string    `json:"url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Membership represents one member's seat on a committee.
type Membership struct {
	ID          uuid.UUID  `json:"id"`
	CommitteeID uuid.UUID  `json:"committee_id"`
	MemberID    uuid.UUID  `json:"member_id"`
	MemberName  string     `json:"member_name"`
	Party       string     `json:"party"`
	Role        string     `json:"role"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// UpsertCommand carries the data for creating or refreshing a committee.
// Committees are keyed by acronym.
type UpsertCommand struct {
	Acronym       string `json:"acronym"`
	Name          string `json:"name"`
	CommitteeType string `json:"committee_type"`
	URL           string `json:"url"`
}

// SeatCommand assigns a member to a committee with a role.
type SeatCommand struct {
	MemberID  uuid.UUID  `json:"member_id"`
	Role      string     `json:"role"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// Domain errors for committee operations.
var (
	ErrNotFound  = errors.New("committee not found")
	ErrDuplicate = errors.New("committee already exists")
	ErrInvalid   = errors.New("invalid committee")
)

// MapHTTPStatus maps committee domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalid) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
