package bills_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/openparl/tally/internal/bills"
	"github.com/openparl/tally/pkg/query"
)

func ptr[T any](v T) *T { return &v }

func TestExtractCode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare commons code", "C-5", "C-5"},
		{"bare senate code", "S-8", "S-8"},
		{"lowercase", "c-21", "C-21"},
		{"embedded in subject", "2nd reading of Bill C-278, An Act to amend the Criminal Code", "C-278"},
		{"first code wins", "Bill C-5 and Bill S-2", "C-5"},
		{"no code", "Opposition Motion (Cost of living)", ""},
		{"digits without prefix", "Motion No. 12", ""},
		{"prefix without hyphen", "C5", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bills.ExtractCode(tt.in); got != tt.want {
				t.Errorf("ExtractCode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBillURL(t *testing.T) {
	tests := []struct {
		name       string
		base       string
		number     string
		parliament int
		session    int
		want       string
	}{
		{
			name:       "commons bill",
			base:       "https://www.parl.ca",
			number:     "C-5",
			parliament: 45,
			session:    1,
			want:       "https://www.parl.ca/legisinfo/en/bill/45-1/c-5",
		},
		{
			name:       "senate bill with trailing slash base",
			base:       "https://www.parl.ca/",
			number:     "S-8",
			parliament: 44,
			session:    2,
			want:       "https://www.parl.ca/legisinfo/en/bill/44-2/s-8",
		},
		{
			name:       "unrecognizable number",
			base:       "https://www.parl.ca",
			number:     "Motion 12",
			parliament: 45,
			session:    1,
			want:       "",
		},
		{
			name:       "missing parliament",
			base:       "https://www.parl.ca",
			number:     "C-5",
			parliament: 0,
			session:    1,
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := bills.BillURL(tt.base, tt.number, tt.parliament, tt.session)
			if got != tt.want {
				t.Errorf("BillURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBillActive(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{bills.StatusIntroduced, true},
		{bills.StatusSecondReading, true},
		{bills.StatusCommittee, true},
		{bills.StatusSenate, true},
		{bills.StatusRoyalAssent, false},
		{bills.StatusDefeated, false},
		{bills.StatusWithdrawn, false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			b := bills.Bill{Status: tt.status}
			if got := b.Active(); got != tt.want {
				t.Errorf("Active() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	t.Run("all params present", func(t *testing.T) {
		values := url.Values{
			"number":              {"C-5"},
			"parliament":          {"45"},
			"session":             {"1"},
			"bill_type":           {"GOVERNMENT"},
			"status":              {"SECOND_READING"},
			"subject":             {"criminal"},
			"policy_tag":          {"justice_legal"},
			"primary_policy_area": {"justice_legal"},
			"auto_classified":     {"true"},
		}

		f := bills.FiltersFromQuery(values)

		if f.Number == nil || *f.Number != "C-5" {
			t.Errorf("Number = %v, want C-5", f.Number)
		}
		if f.ParliamentNumber == nil || *f.ParliamentNumber != 45 {
			t.Errorf("ParliamentNumber = %v, want 45", f.ParliamentNumber)
		}
		if f.Session == nil || *f.Session != 1 {
			t.Errorf("Session = %v, want 1", f.Session)
		}
		if f.BillType == nil || *f.BillType != "GOVERNMENT" {
			t.Errorf("BillType = %v, want GOVERNMENT", f.BillType)
		}
		if f.PolicyTag == nil || *f.PolicyTag != "justice_legal" {
			t.Errorf("PolicyTag = %v, want justice_legal", f.PolicyTag)
		}
		if f.AutoClassified == nil || !*f.AutoClassified {
			t.Errorf("AutoClassified = %v, want true", f.AutoClassified)
		}
	})

	t.Run("invalid numerics ignored", func(t *testing.T) {
		values := url.Values{
			"parliament":      {"forty-five"},
			"session":         {"one"},
			"auto_classified": {"maybe"},
		}

		f := bills.FiltersFromQuery(values)

		if f.ParliamentNumber != nil {
			t.Errorf("ParliamentNumber = %v, want nil", f.ParliamentNumber)
		}
		if f.Session != nil {
			t.Errorf("Session = %v, want nil", f.Session)
		}
		if f.AutoClassified != nil {
			t.Errorf("AutoClassified = %v, want nil", f.AutoClassified)
		}
	})
}

func TestFiltersApply(t *testing.T) {
	proj := query.
		NewProjectionMap("public", "bills", "b").
		Project("number", "Number").
		Project("session", "Session").
		Project("status", "Status").
		Project("policy_tags", "PolicyTags").
		Join("public", "parliaments", "p", "INNER JOIN", "b.parliament_id = p.id").
		Project("number", "ParliamentNumber")

	t.Run("no filters produces no WHERE clause", func(t *testing.T) {
		b := query.NewBuilder(proj)
		bills.Filters{}.Apply(b)
		sql, args := b.Build()

		if len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}
		want := "SELECT b.number, b.session, b.status, b.policy_tags, p.number FROM public.bills b INNER JOIN public.parliaments p ON b.parliament_id = p.id"
		if sql != want {
			t.Errorf("sql = %q, want %q", sql, want)
		}
	})

	t.Run("policy tag uses JSONB containment", func(t *testing.T) {
		b := query.NewBuilder(proj)
		bills.Filters{PolicyTag: ptr("healthcare")}.Apply(b)
		sql, args := b.Build()

		if len(args) != 1 {
			t.Fatalf("args length = %d, want 1", len(args))
		}
		if args[0] != `["healthcare"]` {
			t.Errorf("args[0] = %v, want [\"healthcare\"]", args[0])
		}
		wantClause := `b.policy_tags @> $1::jsonb`
		if !strings.Contains(sql, wantClause) {
			t.Errorf("sql = %q, want clause %q", sql, wantClause)
		}
	})

	t.Run("parliament filter resolves through join alias", func(t *testing.T) {
		b := query.NewBuilder(proj)
		bills.Filters{ParliamentNumber: ptr(45)}.Apply(b)
		sql, _ := b.Build()

		if !strings.Contains(sql, "p.number = $1") {
			t.Errorf("sql = %q, want clause p.number = $1", sql)
		}
	})
}
