package votes_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/openparl/tally/internal/votes"
	"github.com/openparl/tally/pkg/query"
)

func ptr[T any](v T) *T { return &v }

func testProjection() *query.ProjectionMap {
	return query.
		NewProjectionMap("public", "vote_records", "v").
		Project("vote_number", "VoteNumber").
		Project("session", "Session").
		Project("subject", "Subject").
		Project("result", "Result").
		Project("classification", "Classification").
		Project("policy_tags", "PolicyTags").
		Join("public", "parliaments", "p", "INNER JOIN", "v.parliament_id = p.id").
		Project("number", "ParliamentNumber")
}

func TestFiltersFromQuery(t *testing.T) {
	t.Run("all params present", func(t *testing.T) {
		values := url.Values{
			"parliament":     {"44"},
			"session":        {"1"},
			"result":         {"AGREED"},
			"subject":        {"budget"},
			"classification": {"PROCEDURAL"},
			"policy_tag":     {"economy_taxation"},
			"unclassified":   {"false"},
		}

		f := votes.FiltersFromQuery(values)

		if f.ParliamentNumber == nil || *f.ParliamentNumber != 44 {
			t.Errorf("ParliamentNumber = %v, want 44", f.ParliamentNumber)
		}
		if f.Session == nil || *f.Session != 1 {
			t.Errorf("Session = %v, want 1", f.Session)
		}
		if f.Result == nil || *f.Result != "AGREED" {
			t.Errorf("Result = %v, want AGREED", f.Result)
		}
		if f.Classification == nil || *f.Classification != "PROCEDURAL" {
			t.Errorf("Classification = %v, want PROCEDURAL", f.Classification)
		}
		if f.PolicyTag == nil || *f.PolicyTag != "economy_taxation" {
			t.Errorf("PolicyTag = %v, want economy_taxation", f.PolicyTag)
		}
		if f.Unclassified == nil || *f.Unclassified {
			t.Errorf("Unclassified = %v, want false", f.Unclassified)
		}
	})

	t.Run("empty params yield nil fields", func(t *testing.T) {
		f := votes.FiltersFromQuery(url.Values{})

		if f.ParliamentNumber != nil || f.Session != nil || f.Result != nil ||
			f.Subject != nil || f.Classification != nil || f.PolicyTag != nil ||
			f.Unclassified != nil {
			t.Errorf("FiltersFromQuery(empty) = %+v, want all nil", f)
		}
	})

	t.Run("invalid numerics ignored", func(t *testing.T) {
		values := url.Values{"parliament": {"x"}, "session": {"y"}, "unclassified": {"z"}}
		f := votes.FiltersFromQuery(values)

		if f.ParliamentNumber != nil || f.Session != nil || f.Unclassified != nil {
			t.Errorf("FiltersFromQuery(invalid) = %+v, want nil numerics", f)
		}
	})
}

func TestFiltersApply(t *testing.T) {
	t.Run("no filters produces no WHERE clause", func(t *testing.T) {
		b := query.NewBuilder(testProjection())
		votes.Filters{}.Apply(b)
		sql, args := b.Build()

		if strings.Contains(sql, "WHERE") {
			t.Errorf("sql = %q, want no WHERE clause", sql)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}
	})

	t.Run("unclassified matches empty classification", func(t *testing.T) {
		b := query.NewBuilder(testProjection())
		votes.Filters{Unclassified: ptr(true)}.Apply(b)
		sql, args := b.Build()

		if !strings.Contains(sql, "v.classification = $1") {
			t.Errorf("sql = %q, want clause v.classification = $1", sql)
		}
		if len(args) != 1 {
			t.Fatalf("args length = %d, want 1", len(args))
		}
		got, ok := args[0].(*string)
		if !ok || *got != "" {
			t.Errorf("args[0] = %v, want empty string", args[0])
		}
	})

	t.Run("unclassified false adds no condition", func(t *testing.T) {
		b := query.NewBuilder(testProjection())
		votes.Filters{Unclassified: ptr(false)}.Apply(b)
		_, args := b.Build()

		if len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}
	})

	t.Run("parliament filter resolves through join alias", func(t *testing.T) {
		b := query.NewBuilder(testProjection())
		votes.Filters{ParliamentNumber: ptr(45), Session: ptr(1)}.Apply(b)
		sql, args := b.Build()

		if !strings.Contains(sql, "p.number = $1") {
			t.Errorf("sql = %q, want clause p.number = $1", sql)
		}
		if !strings.Contains(sql, "v.session = $2") {
			t.Errorf("sql = %q, want clause v.session = $2", sql)
		}
		if len(args) != 2 {
			t.Errorf("args length = %d, want 2", len(args))
		}
	})

	t.Run("policy tag uses JSONB containment", func(t *testing.T) {
		b := query.NewBuilder(testProjection())
		votes.Filters{PolicyTag: ptr("environment_climate")}.Apply(b)
		sql, args := b.Build()

		if !strings.Contains(sql, "v.policy_tags @> $1::jsonb") {
			t.Errorf("sql = %q, want JSONB containment clause", sql)
		}
		if len(args) != 1 || args[0] != `["environment_climate"]` {
			t.Errorf("args = %v, want [\"environment_climate\"]", args)
		}
	})
}
