package bills

import (
	"errors"
	"net/http"
)

// Domain errors for bill operations.
var (
	ErrNotFound  = errors.New("bill not found")
	ErrDuplicate = errors.New("bill already exists")
	ErrInvalid   = errors.New("invalid bill")
	ErrNoContent = errors.New("no bill content available")
)

// MapHTTPStatus maps bill domain errors to appropriate HTTP status codes.
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
	if errors.Is(err, ErrNoContent) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
