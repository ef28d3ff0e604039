package topics

import (
	"errors"
	"net/http"
	"testing"
)

func TestUpsertCommandNormalize(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		cmd := UpsertCommand{
			Name:     "  healthcare  ",
			Keywords: []string{"hospital", "medicare"},
		}

		if err := cmd.normalize(); err != nil {
			t.Fatalf("normalize failed: %v", err)
		}
		if cmd.Name != "healthcare" {
			t.Errorf("Name = %q, want healthcare", cmd.Name)
		}
		if cmd.Weight != 1.0 {
			t.Errorf("Weight = %v, want 1.0", cmd.Weight)
		}
		if cmd.Color != defaultColor {
			t.Errorf("Color = %q, want %q", cmd.Color, defaultColor)
		}
	})

	t.Run("explicit values preserved", func(t *testing.T) {
		cmd := UpsertCommand{
			Name:     "economy_taxation",
			Keywords: []string{"budget"},
			Weight:   1.5,
			Color:    "#10B981",
		}

		if err := cmd.normalize(); err != nil {
			t.Fatalf("normalize failed: %v", err)
		}
		if cmd.Weight != 1.5 {
			t.Errorf("Weight = %v, want 1.5", cmd.Weight)
		}
		if cmd.Color != "#10B981" {
			t.Errorf("Color = %q, want #10B981", cmd.Color)
		}
	})

	t.Run("blank name rejected", func(t *testing.T) {
		cmd := UpsertCommand{Name: "   ", Keywords: []string{"x"}}
		if err := cmd.normalize(); !errors.Is(err, ErrInvalid) {
			t.Errorf("normalize() = %v, want ErrInvalid", err)
		}
	})

	t.Run("empty keywords rejected", func(t *testing.T) {
		cmd := UpsertCommand{Name: "housing"}
		if err := cmd.normalize(); !errors.Is(err, ErrInvalid) {
			t.Errorf("normalize() = %v, want ErrInvalid", err)
		}
	})

	t.Run("negative weight replaced", func(t *testing.T) {
		cmd := UpsertCommand{Name: "housing", Keywords: []string{"rent"}, Weight: -2}
		if err := cmd.normalize(); err != nil {
			t.Fatalf("normalize failed: %v", err)
		}
		if cmd.Weight != 1.0 {
			t.Errorf("Weight = %v, want 1.0", cmd.Weight)
		}
	})
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", ErrNotFound, http.StatusNotFound},
		{"duplicate", ErrDuplicate, http.StatusConflict},
		{"invalid", ErrInvalid, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
