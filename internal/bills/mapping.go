package bills

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/openparl/tally/pkg/query"
	"github.com/openparl/tally/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "bills", "b").
	Project("id", "ID").
	Project("number", "Number").
	Project("parliament_id", "ParliamentID").
	Project("session", "Session").
	Project("subject", "Subject").
	Project("summary", "Summary").
	Project("bill_type", "BillType").
	Project("sponsor_id", "SponsorID").
	Project("status", "Status").
	Project("introduced_date", "IntroducedDate").
	Project("last_activity_date", "LastActivityDate").
	Project("url", "URL").
	Project("policy_tags", "PolicyTags").
	Project("primary_policy_area", "PrimaryPolicyArea").
	Project("classification_confidence", "ClassificationConfidence").
	Project("auto_classified", "AutoClassified").
	Project("classified_at", "ClassifiedAt").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt").
	Join("public", "parliaments", "p", "INNER JOIN", "b.parliament_id = p.id").
	Project("number", "ParliamentNumber")

var defaultSort = query.SortField{
	Field:      "IntroducedDate",
	Descending: true,
}

// Filters contains optional filtering criteria for bill queries.
// Nil fields are ignored. PolicyTag matches bills whose JSONB tag list
// contains the given policy area.
type Filters struct {
	Number            *string `json:"number,omitempty"`
	ParliamentNumber  *int    `json:"parliament_number,omitempty"`
	Session           *int    `json:"session,omitempty"`
	BillType          *string `json:"bill_type,omitempty"`
	Status            *string `json:"status,omitempty"`
	Subject           *string `json:"subject,omitempty"`
	PolicyTag         *string `json:"policy_tag,omitempty"`
	PrimaryPolicyArea *string `json:"primary_policy_area,omitempty"`
	AutoClassified    *bool   `json:"auto_classified,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Number", f.Number).
		WhereEquals("ParliamentNumber", f.ParliamentNumber).
		WhereEquals("Session", f.Session).
		WhereEquals("BillType", f.BillType).
		WhereEquals("Status", f.Status).
		WhereContains("Subject", f.Subject).
		WhereJSONHas("PolicyTags", f.PolicyTag).
		WhereEquals("PrimaryPolicyArea", f.PrimaryPolicyArea).
		WhereEquals("AutoClassified", f.AutoClassified)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("number"); n != "" {
		f.Number = &n
	}

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

	if bt := values.Get("bill_type"); bt != "" {
		f.BillType = &bt
	}

	if st := values.Get("status"); st != "" {
		f.Status = &st
	}

	if sub := values.Get("subject"); sub != "" {
		f.Subject = &sub
	}

	if tag := values.Get("policy_tag"); tag != "" {
		f.PolicyTag = &tag
	}

	if pa := values.Get("primary_policy_area"); pa != "" {
		f.PrimaryPolicyArea = &pa
	}

	if ac := values.Get("auto_classified"); ac != "" {
		if v, err := strconv.ParseBool(ac); err == nil {
			f.AutoClassified = &v
		}
	}

	return f
}

func scanBill(s repository.Scanner) (Bill, error) {
	var b Bill
	var tags []byte

	err := s.Scan(
		&b.ID,
		&b.Number,
		&b.ParliamentID,
		&b.Session,
		&b.Subject,
		&b.Summary,
		&b.BillType,
		&b.SponsorID,
		&b.Status,
		&b.IntroducedDate,
		&b.LastActivityDate,
		&b.URL,
		&tags,
		&b.PrimaryPolicyArea,
		&b.ClassificationConfidence,
		&b.AutoClassified,
		&b.ClassifiedAt,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.ParliamentNumber,
	)
	if err != nil {
		return b, err
	}

	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &b.PolicyTags); err != nil {
			return b, err
		}
	}
	if b.PolicyTags == nil {
		b.PolicyTags = []string{}
	}
	return b, nil
}
