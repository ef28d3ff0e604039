package members

import (
	"errors"
	"net/http"
)

// Domain errors for member operations.
var (
	ErrNotFound  = errors.New("member not found")
	ErrDuplicate = errors.New("member already exists")
	ErrInvalid   = errors.New("invalid member")
)

// MapHTTPStatus maps member domain errors to appropriate HTTP status codes.
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
