package votes

import (
	"errors"
	"net/http"
)

// Domain errors for vote operations.
var (
	ErrNotFound  = errors.New("vote record not found")
	ErrDuplicate = errors.New("vote record already exists")
	ErrInvalid   = errors.New("invalid vote record")
)

// MapHTTPStatus maps vote domain errors to appropriate HTTP status codes.
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
