package members

import (
	"net/url"

	"github.com/openparl/tally/pkg/query"
	"github.com/openparl/tally/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "members", "m").
	Project("id", "ID").
	Project("name", "Name").
	Project("honourific_title", "HonourificTitle").
	Project("political_affiliation", "PoliticalAffiliation").
	Project("party_code", "PartyCode").
	Project("constituency", "Constituency").
	Project("province", "Province").
	Project("status", "Status").
	Project("first_elected", "FirstElected").
	Project("last_active", "LastActive").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field: "Name",
}

// Filters contains optional filtering criteria for member queries.
// Nil fields are ignored. PartyCode, Status, and Province use exact
// matching. Name and Constituency use case-insensitive contains matching.
type Filters struct {
	Name         *string `json:"name,omitempty"`
	PartyCode    *string `json:"party_code,omitempty"`
	Constituency *string `json:"constituency,omitempty"`
	Province     *string `json:"province,omitempty"`
	Status       *string `json:"status,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Name", f.Name).
		WhereEquals("PartyCode", f.PartyCode).
		WhereContains("Constituency", f.Constituency).
		WhereEquals("Province", f.Province).
		WhereEquals("Status", f.Status)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if pc := values.Get("party_code"); pc != "" {
		f.PartyCode = &pc
	}

	if c := values.Get("constituency"); c != "" {
		f.Constituency = &c
	}

	if p := values.Get("province"); p != "" {
		f.Province = &p
	}

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	return f
}

func scanMember(s repository.Scanner) (Member, error) {
	var m Member
	err := s.Scan(
		&m.ID,
		&m.Name,
		&m.HonourificTitle,
		&m.PoliticalAffiliation,
		&m.PartyCode,
		&m.Constituency,
		&m.Province,
		&m.Status,
		&m.FirstElected,
		&m.LastActive,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}
