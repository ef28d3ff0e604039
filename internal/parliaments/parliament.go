// Package parliaments implements the parliament domain for Tally: the
// numbered assemblies that bills, votes, and sessions hang off of.
package parliaments

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Parliament represents a numbered parliamentary assembly.
type Parliament struct {
	ID        uuid.UUID  `json:"id"`
	Number    int        `json:"number"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	IsCurrent bool       `json:"is_current"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Domain errors for parliament operations.
var (
	ErrNotFound  = errors.New("parliament not found")
	ErrDuplicate = errors.New("parliament already exists")
	ErrInvalid   = errors.New("invalid parliament")
)

// MapHTTPStatus maps parliament domain errors to appropriate HTTP status codes.
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
