package votes

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/openparl/tally/pkg/query"
	"github.com/openparl/tally/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "vote_records", "v").
	Project("id", "ID").
	Project("vote_number", "VoteNumber").
	Project("parliament_id", "ParliamentID").
	Project("session", "Session").
	Project("subject", "Subject").
	Project("vote_type", "VoteType").
	Project("result", "Result").
	Project("vote_date", "VoteDate").
	Project("bill_id", "BillID").
	Project("yea_count", "YeaCount").
	Project("nay_count", "NayCount").
	Project("paired_count", "PairedCount").
	Project("absent_count", "AbsentCount").
	Project("classification", "Classification").
	Project("classified_at", "ClassifiedAt").
	Project("policy_tags", "PolicyTags").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt").
	Join("public", "parliaments", "p", "INNER JOIN", "v.parliament_id = p.id").
	Project("number", "ParliamentNumber")

var defaultSort = query.SortField{
	Field:      "VoteDate",
	Descending: true,
}

// Filters contains optional filtering criteria for vote record queries.
// Nil fields are ignored. PolicyTag matches votes whose JSONB tag list
// contains the given policy area. Unclassified narrows to records without
// a stored classification.
type Filters struct {
	ParliamentNumber *int    `json:"parliament_number,omitempty"`
	Session          *int    `json:"session,omitempty"`
	Result           *string `json:"result,omitempty"`
	Subject          *string `json:"subject,omitempty"`
	Classification   *string `json:"classification,omitempty"`
	PolicyTag        *string `json:"policy_tag,omitempty"`
	Unclassified     *bool   `json:"unclassified,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b = b.
		WhereEquals("ParliamentNumber", f.ParliamentNumber).
		WhereEquals("Session", f.Session).
		WhereEquals("Result", f.Result).
		WhereContains("Subject", f.Subject).
		WhereEquals("Classification", f.Classification).
		WhereJSONHas("PolicyTags", f.PolicyTag)

	if f.Unclassified != nil && *f.Unclassified {
		empty := ""
		b = b.WhereEquals("Classification", &empty)
	}
	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if pn := values.Get("parliament"); pn != "" {
		if v, err := strconv.Atoi(pn); err == nil {
			f.ParliamentNumber = &v
		}
	}

	if s := values.Get("session"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			f.Session = &v
		}
	}

	if res := values.Get("result"); res != "" {
		f.Result = &res
	}

	if sub := values.Get("subject"); sub != "" {
		f.Subject = &sub
	}

	if cl := values.Get("classification"); cl != "" {
		f.Classification = &cl
	}

	if tag := values.Get("policy_tag"); tag != "" {
		f.PolicyTag = &tag
	}

	if uc := values.Get("unclassified"); uc != "" {
		if v, err := strconv.ParseBool(uc); err == nil {
			f.Unclassified = &v
		}
	}

	return f
}

func scanVoteRecord(s repository.Scanner) (VoteRecord, error) {
	var v VoteRecord
	var tags []byte

	err := s.Scan(
		&v.ID,
		&v.VoteNumber,
		&v.ParliamentID,
		&v.Session,
		&v.Subject,
		&v.VoteType,
		&v.Result,
		&v.VoteDate,
		&v.BillID,
		&v.YeaCount,
		&v.NayCount,
		&v.PairedCount,
		&v.AbsentCount,
		&v.Classification,
		&v.ClassifiedAt,
		&tags,
		&v.CreatedAt,
		&v.UpdatedAt,
		&v.ParliamentNumber,
	)
	if err != nil {
		return v, err
	}

	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &v.PolicyTags); err != nil {
			return v, err
		}
	}
	if v.PolicyTags == nil {
		v.PolicyTags = []string{}
	}
	return v, nil
}

func scanBallot(s repository.Scanner) (Ballot, error) {
	var b Ballot
	err := s.Scan(
		&b.ID,
		&b.VoteRecordID,
		&b.MemberID,
		&b.MemberName,
		&b.Party,
		&b.Choice,
		&b.CreatedAt,
	)
	return b, err
}
