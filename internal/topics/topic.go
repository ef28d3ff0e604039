package topics

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Topic is a stored policy area: a named keyword list with a scoring
// weight and a display color. Topics mirror the built-in keyword
// catalog but can be edited independently once seeded.
type Topic struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Keywords  []string  `json:"keywords"`
	Weight    float64   `json:"weight"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpsertCommand creates or replaces a topic keyed by name.
type UpsertCommand struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
	Weight   float64  `json:"weight"`
	Color    string   `json:"color"`
}

func (c *UpsertCommand) normalize() error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" || len(c.Keywords) == 0 {
		return ErrInvalid
	}
	if c.Weight <= 0 {
		c.Weight = 1.0
	}
	if c.Color == "" {
		c.Color = defaultColor
	}
	return nil
}

const defaultColor = "#6B7280"

var (
	ErrNotFound  = errors.New("topic not found")
	ErrDuplicate = errors.New("topic already exists")
	ErrInvalid   = errors.New("invalid topic")
)

// MapHTTPStatus translates topic errors to HTTP status codes.
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
