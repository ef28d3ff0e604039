package committees_test

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/openparl/tally/internal/committees"
	"github.com/openparl/tally/pkg/query"
)

func ptr[T any](v T) *T { return &v }

func testProjection() *query.ProjectionMap {
	return query.
		NewProjectionMap("public", "committees", "c").
		Project("acronym", "Acronym").
		Project("name", "Name").
		Project("committee_type", "CommitteeType")
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", committees.ErrNotFound, http.StatusNotFound},
		{"duplicate", committees.ErrDuplicate, http.StatusConflict},
		{"invalid", committees.ErrInvalid, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := committees.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	t.Run("all params present", func(t *testing.T) {
		values := url.Values{
			"acronym":        {"FINA"},
			"name":           {"finance"},
			"committee_type": {"STANDING"},
		}

		f := committees.FiltersFromQuery(values)

		if f.Acronym == nil || *f.Acronym != "FINA" {
			t.Errorf("Acronym = %v, want FINA", f.Acronym)
		}
		if f.Name == nil || *f.Name != "finance" {
			t.Errorf("Name = %v, want finance", f.Name)
		}
		if f.CommitteeType == nil || *f.CommitteeType != "STANDING" {
			t.Errorf("CommitteeType = %v, want STANDING", f.CommitteeType)
		}
	})

	t.Run("empty params yield nil fields", func(t *testing.T) {
		f := committees.FiltersFromQuery(url.Values{})

		if f.Acronym != nil || f.Name != nil || f.CommitteeType != nil {
			t.Errorf("FiltersFromQuery(empty) = %+v, want all nil", f)
		}
	})
}

func TestFiltersApply(t *testing.T) {
	t.Run("no filters produces no WHERE clause", func(t *testing.T) {
		b := query.NewBuilder(testProjection())
		committees.Filters{}.Apply(b)
		sql, args := b.Build()

		if strings.Contains(sql, "WHERE") {
			t.Errorf("sql = %q, want no WHERE clause", sql)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}
	})

	t.Run("acronym uses exact matching", func(t *testing.T) {
		b := query.NewBuilder(testProjection())
		committees.Filters{Acronym: ptr("ETHI")}.Apply(b)
		sql, args := b.Build()

		if !strings.Contains(sql, "c.acronym = $1") {
			t.Errorf("sql = %q, want clause c.acronym = $1", sql)
		}
		if len(args) != 1 {
			t.Errorf("args length = %d, want 1", len(args))
		}
	})

	t.Run("name uses contains matching", func(t *testing.T) {
		b := query.NewBuilder(testProjection())
		committees.Filters{Name: ptr("ethics")}.Apply(b)
		sql, args := b.Build()

		if !strings.Contains(sql, "c.name ILIKE $1") {
			t.Errorf("sql = %q, want clause c.name ILIKE $1", sql)
		}
		if len(args) != 1 || args[0] != "%ethics%" {
			t.Errorf("args = %v, want [%%ethics%%]", args)
		}
	})
}
