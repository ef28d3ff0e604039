package committees

import (
	"net/url"

	"github.com/openparl/tally/pkg/query"
	"github.com/openparl/tally/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "committees", "c").
	Project("id", "ID").
	Project("acronym", "Acronym").
	Project("name", "Name").
	Project("committee_type", "CommitteeType").
	Project("url", "URL").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field: "Acronym",
}

// Filters contains optional filtering criteria for committee queries.
type Filters struct {
	Acronym       *string `json:"acronym,omitempty"`
	Name          *string `json:"name,omitempty"`
	CommitteeType *string `json:"committee_type,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Acronym", f.Acronym).
		WhereContains("Name", f.Name).
		WhereEquals("CommitteeType", f.CommitteeType)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if a := values.Get("acronym"); a != "" {
		f.Acronym = &a
	}

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if ct := values.Get("committee_type"); ct != "" {
		f.CommitteeType = &ct
	}

	return f
}

func scanCommittee(s repository.Scanner) (Committee, error) {
	var c Committee
	err := s.Scan(
		&c.ID,
		&c.Acronym,
		&c.Name,
		&c.CommitteeType,
		&c.URL,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func scanMembership(s repository.Scanner) (Membership, error) {
	var m Membership
	err := s.Scan(
		&m.ID,
		&m.CommitteeID,
		&m.MemberID,
		&m.MemberName,
		&m.Party,
		&m.Role,
		&m.StartDate,
		&m.EndDate,
	)
	return m, err
}
