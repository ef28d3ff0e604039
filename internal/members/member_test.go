package members_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/openparl/tally/internal/members"
	"github.com/openparl/tally/pkg/query"
)

func ptr[T any](v T) *T { return &v }

func TestPartyCodeFor(t *testing.T) {
	tests := []struct {
		affiliation string
		want        string
	}{
		{"Conservative Party of Canada", members.PartyCPC},
		{"Conservative", members.PartyCPC},
		{"Liberal Party of Canada", members.PartyLPC},
		{"Liberal", members.PartyLPC},
		{"New Democratic Party", members.PartyNDP},
		{"NDP", members.PartyNDP},
		{"Bloc Québécois", members.PartyBQ},
		{"Green Party of Canada", members.PartyGP},
		{"Green Party", members.PartyGP},
		{"People's Party of Canada", members.PartyPPC},
		{"Independent", members.PartyInd},
		{"Forces et Démocratie", members.PartyOther},
		{"", members.PartyOther},
	}

	for _, tt := range tests {
		t.Run(tt.affiliation, func(t *testing.T) {
			if got := members.PartyCodeFor(tt.affiliation); got != tt.want {
				t.Errorf("PartyCodeFor(%q) = %q, want %q", tt.affiliation, got, tt.want)
			}
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", members.ErrNotFound, http.StatusNotFound},
		{"duplicate", members.ErrDuplicate, http.StatusConflict},
		{"invalid", members.ErrInvalid, http.StatusBadRequest},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("find failed: %w", members.ErrNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := members.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	t.Run("all params present", func(t *testing.T) {
		values := url.Values{
			"name":         {"Smith"},
			"party_code":   {"NDP"},
			"constituency": {"Burnaby"},
			"province":     {"British Columbia"},
			"status":       {"ACTIVE"},
		}

		f := members.FiltersFromQuery(values)

		if f.Name == nil || *f.Name != "Smith" {
			t.Errorf("Name = %v, want Smith", f.Name)
		}
		if f.PartyCode == nil || *f.PartyCode != "NDP" {
			t.Errorf("PartyCode = %v, want NDP", f.PartyCode)
		}
		if f.Constituency == nil || *f.Constituency != "Burnaby" {
			t.Errorf("Constituency = %v, want Burnaby", f.Constituency)
		}
		if f.Province == nil || *f.Province != "British Columbia" {
			t.Errorf("Province = %v, want British Columbia", f.Province)
		}
		if f.Status == nil || *f.Status != "ACTIVE" {
			t.Errorf("Status = %v, want ACTIVE", f.Status)
		}
	})

	t.Run("empty params yield nil fields", func(t *testing.T) {
		f := members.FiltersFromQuery(url.Values{})

		if f.Name != nil || f.PartyCode != nil || f.Constituency != nil || f.Province != nil || f.Status != nil {
			t.Errorf("FiltersFromQuery(empty) = %+v, want all nil", f)
		}
	})
}

func TestFiltersApply(t *testing.T) {
	proj := query.
		NewProjectionMap("public", "members", "m").
		Project("name", "Name").
		Project("party_code", "PartyCode").
		Project("constituency", "Constituency").
		Project("province", "Province").
		Project("status", "Status")

	t.Run("no filters produces no WHERE clause", func(t *testing.T) {
		b := query.NewBuilder(proj)
		members.Filters{}.Apply(b)
		sql, args := b.Build()

		wantSQL := "SELECT m.name, m.party_code, m.constituency, m.province, m.status FROM public.members m"
		if sql != wantSQL {
			t.Errorf("sql = %q, want %q", sql, wantSQL)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}
	})

	t.Run("name uses contains matching", func(t *testing.T) {
		b := query.NewBuilder(proj)
		members.Filters{Name: ptr("smith")}.Apply(b)
		_, args := b.Build()

		if len(args) != 1 {
			t.Fatalf("args length = %d, want 1", len(args))
		}
		if args[0] != "%smith%" {
			t.Errorf("args[0] = %v, want %%smith%%", args[0])
		}
	})

	t.Run("party and status use exact matching", func(t *testing.T) {
		b := query.NewBuilder(proj)
		members.Filters{PartyCode: ptr("BQ"), Status: ptr("FORMER")}.Apply(b)
		_, args := b.Build()

		if len(args) != 2 {
			t.Fatalf("args length = %d, want 2", len(args))
		}
		party, ok := args[0].(*string)
		if !ok || *party != "BQ" {
			t.Errorf("args[0] = %v, want BQ", args[0])
		}
		status, ok := args[1].(*string)
		if !ok || *status != "FORMER" {
			t.Errorf("args[1] = %v, want FORMER", args[1])
		}
	})
}
